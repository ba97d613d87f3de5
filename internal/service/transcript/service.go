package transcript

import (
	"context"

	"github.com/Taichi-iskw/tagscribe/internal/logger"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository"
)

// VideoInput registers a video that transcripts can be saved against
type VideoInput struct {
	ID       string
	Title    string
	MediaURL string
	Duration float64
}

// SaveInput is a new transcript version for a video
type SaveInput struct {
	VideoID  string
	Language string
	Type     model.TranscriptType
	Name     *string
	Source   Source
}

// SectionInput creates a section over a transcript's blocks. A nil End leaves the range open.
type SectionInput struct {
	TranscriptID string
	Name         string
	Start        int
	End          *int
}

// SubsectionInput creates a subsection under a section
type SubsectionInput struct {
	SectionID string
	Name      string
	Start     int
	End       *int
}

// RangePatch changes a section or subsection. ReopenEnd clears the end index.
type RangePatch struct {
	Name      *string
	Start     *int
	End       *int
	ReopenEnd bool
}

// Service owns videos, immutable transcript versions and their section annotations
type Service interface {
	RegisterVideo(ctx context.Context, in VideoInput) (*model.Video, error)
	GetVideo(ctx context.Context, id string) (*model.Video, error)
	ListVideos(ctx context.Context, limit, offset int) ([]*model.Video, error)

	SaveTranscript(ctx context.Context, in SaveInput) (*model.Transcript, error)
	LoadTranscript(ctx context.Context, videoID string, version *int) (*model.Transcript, error)
	GetTranscript(ctx context.Context, id string) (*model.Transcript, error)
	ListVersions(ctx context.Context, videoID string) ([]*model.Transcript, error)
	RenameTranscript(ctx context.Context, id string, name *string) (*model.Transcript, error)

	CreateSection(ctx context.Context, in SectionInput) (*model.Section, error)
	ListSections(ctx context.Context, transcriptID string) ([]*model.Section, error)
	UpdateSection(ctx context.Context, id string, patch RangePatch) (*model.Section, error)
	DeleteSection(ctx context.Context, id string) (bool, error)

	CreateSubsection(ctx context.Context, in SubsectionInput) (*model.Subsection, error)
	UpdateSubsection(ctx context.Context, id string, patch RangePatch) (*model.Subsection, error)
	DeleteSubsection(ctx context.Context, id string) (bool, error)
}

// service implements Service
type service struct {
	stores repository.Stores
	tx     repository.TxRunner
	log    *logger.Logger
}

// NewService creates a transcript service
func NewService(stores repository.Stores, tx repository.TxRunner, log *logger.Logger) Service {
	return &service{
		stores: stores,
		tx:     tx,
		log:    log.With("service", "TranscriptService"),
	}
}
