package model

import "time"

// TranscriptType records whether a transcript came from speech-to-text or a human edit
type TranscriptType string

const (
	TranscriptTypeAuto   TranscriptType = "auto"
	TranscriptTypeManual TranscriptType = "manual"
)

// Valid reports whether t is a known transcript type
func (t TranscriptType) Valid() bool {
	return t == TranscriptTypeAuto || t == TranscriptTypeManual
}

// Transcript is one immutable version of a video's transcript
type Transcript struct {
	ID        string         `json:"id" db:"id"`
	VideoID   string         `json:"videoId" db:"video_id"`
	Version   int            `json:"version" db:"version"`
	Language  string         `json:"language" db:"language"`
	Type      TranscriptType `json:"type" db:"type"`
	Name      *string        `json:"name,omitempty" db:"name"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`

	Blocks   []*TranscriptBlock `json:"blocks,omitempty" db:"-"`
	Sections []*Section         `json:"sections,omitempty" db:"-"`
}

// TranscriptBlock is a single ordered unit of transcript text
type TranscriptBlock struct {
	ID           string  `json:"id" db:"id"`
	TranscriptID string  `json:"transcriptId" db:"transcript_id"`
	OrderIndex   int     `json:"orderIndex" db:"order_index"`
	SpeakerLabel string  `json:"speakerLabel" db:"speaker_label"`
	StartTime    float64 `json:"startTime" db:"start_time"` // Start time in seconds
	EndTime      float64 `json:"endTime" db:"end_time"`     // End time in seconds
	Text         string  `json:"text" db:"text"`
}

// Section is a named range of blocks within a transcript.
// A nil EndBlockIndex means the range is still open.
type Section struct {
	ID              string    `json:"id" db:"id"`
	TranscriptID    string    `json:"transcriptId" db:"transcript_id"`
	Name            string    `json:"name" db:"name"`
	StartBlockIndex int       `json:"startBlockIndex" db:"start_block_index"`
	EndBlockIndex   *int      `json:"endBlockIndex" db:"end_block_index"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`

	Subsections []*Subsection `json:"subsections" db:"-"`
}

// Subsection is a named range nested under a Section
type Subsection struct {
	ID              string    `json:"id" db:"id"`
	SectionID       string    `json:"sectionId" db:"section_id"`
	Name            string    `json:"name" db:"name"`
	StartBlockIndex int       `json:"startBlockIndex" db:"start_block_index"`
	EndBlockIndex   *int      `json:"endBlockIndex" db:"end_block_index"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}
