package transcript

import (
	"context"

	"github.com/Taichi-iskw/tagscribe/internal/model"
)

// Repository defines operations for versioned Transcript persistence.
// Transcripts and their blocks are write-once; only the name can change.
type Repository interface {
	Create(ctx context.Context, transcript *model.Transcript) error
	NextVersion(ctx context.Context, videoID string) (int, error)
	GetByID(ctx context.Context, id string) (*model.Transcript, error)
	GetByVersion(ctx context.Context, videoID string, version int) (*model.Transcript, error)
	GetLatest(ctx context.Context, videoID string) (*model.Transcript, error)
	ListByVideo(ctx context.Context, videoID string) ([]*model.Transcript, error)
	UpdateName(ctx context.Context, id string, name *string) error
}

// BlockRepository defines operations for TranscriptBlock persistence
type BlockRepository interface {
	CreateBatch(ctx context.Context, blocks []*model.TranscriptBlock) error
	GetByTranscriptID(ctx context.Context, transcriptID string) ([]*model.TranscriptBlock, error)
	Count(ctx context.Context, transcriptID string) (int, error)
}
