package impression

import (
	"context"

	"github.com/Taichi-iskw/tagscribe/internal/model"
)

// Repository defines operations for TagImpression persistence and aggregation
type Repository interface {
	Create(ctx context.Context, impression *model.TagImpression) error
	GetByID(ctx context.Context, id string) (*model.TagImpression, error)
	ListByTranscript(ctx context.Context, transcriptID string) ([]*model.TagImpression, error)
	Delete(ctx context.Context, id string) (bool, error)

	UpdateComment(ctx context.Context, id string, comment *string) error
	AppendSecondaryTag(ctx context.Context, id, secondaryTagID string) error
	SetSection(ctx context.Context, id string, sectionID, subsectionID *string) error
	// ReassignMaster points every impression of the primary tag at a new master
	ReassignMaster(ctx context.Context, primaryTagID, masterTagID string) (int64, error)

	CountByMaster(ctx context.Context, masterTagID *string) ([]model.TagCount, error)
	TranscriptBreakdown(ctx context.Context, transcriptID string, masterTagID *string) ([]model.TranscriptBreakdownRow, error)
}
