package model

import "time"

// SelectionRange is a character span inside one transcript block
type SelectionRange struct {
	BlockID     string `json:"blockId"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
}

// TagImpression records that a tag was applied to part of a transcript
type TagImpression struct {
	ID              string           `json:"id" db:"id"`
	TranscriptID    string           `json:"transcriptId" db:"transcript_id"`
	MasterTagID     string           `json:"masterTagId" db:"master_tag_id"`
	PrimaryTagID    *string          `json:"primaryTagId,omitempty" db:"primary_tag_id"`
	SecondaryTagIDs []string         `json:"secondaryTagIds" db:"secondary_tag_ids"`
	BlockIDs        []string         `json:"blockIds" db:"block_ids"`
	SelectedText    *string          `json:"selectedText,omitempty" db:"selected_text"`
	SelectionRanges []SelectionRange `json:"selectionRanges" db:"selection_ranges"`
	SectionID       *string          `json:"sectionId,omitempty" db:"section_id"`
	SubsectionID    *string          `json:"subsectionId,omitempty" db:"subsection_id"`
	Comment         *string          `json:"comment,omitempty" db:"comment"`
	CreatedBy       *string          `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt       time.Time        `json:"createdAt" db:"created_at"`

	// Populated on the write path
	InstanceIndex int    `json:"instanceIndex,omitempty" db:"-"`
	DisplayName   string `json:"displayName,omitempty" db:"-"`
}

// TagGroup is the read-time regrouping of impressions that share a master tag
// and the same selection. It is never stored.
type TagGroup struct {
	Key             string            `json:"key"`
	MasterTag       *MasterTag        `json:"masterTag"`
	BlockIDs        []string          `json:"blockIds"`
	SelectionRanges []SelectionRange  `json:"selectionRanges"`
	SelectedText    *string           `json:"selectedText,omitempty"`
	SectionID       *string           `json:"sectionId,omitempty"`
	SubsectionID    *string           `json:"subsectionId,omitempty"`
	PrimaryTags     []GroupPrimaryTag `json:"primaryTags"`
	Comments        []string          `json:"comments,omitempty"`
	ImpressionIDs   []string          `json:"impressionIds"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// GroupPrimaryTag is one primary tag application inside a TagGroup
type GroupPrimaryTag struct {
	ImpressionID  string          `json:"impressionId"`
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	InstanceIndex int             `json:"instanceIndex"`
	DisplayName   string          `json:"displayName"`
	SecondaryTags []*SecondaryTag `json:"secondaryTags"`
	Comment       *string         `json:"comment,omitempty"`
}

// TranscriptTags is everything needed to render a transcript's annotations
type TranscriptTags struct {
	TranscriptID string           `json:"transcriptId"`
	Groups       []*TagGroup      `json:"groups"`
	Impressions  []*TagImpression `json:"impressions"`
	Sections     []*Section       `json:"sections"`
}
