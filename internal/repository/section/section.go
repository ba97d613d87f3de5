package section

import (
	"context"

	"github.com/Taichi-iskw/tagscribe/internal/model"
)

// Repository defines operations for Section and Subsection persistence
type Repository interface {
	CreateSection(ctx context.Context, section *model.Section) error
	GetSection(ctx context.Context, id string) (*model.Section, error)
	FindSectionByName(ctx context.Context, transcriptID, name string) (*model.Section, error)
	ListSections(ctx context.Context, transcriptID string) ([]*model.Section, error)
	UpdateSection(ctx context.Context, section *model.Section) error
	DeleteSection(ctx context.Context, id string) (bool, error)

	CreateSubsection(ctx context.Context, subsection *model.Subsection) error
	GetSubsection(ctx context.Context, id string) (*model.Subsection, error)
	FindSubsectionByName(ctx context.Context, sectionID, name string) (*model.Subsection, error)
	ListSubsections(ctx context.Context, sectionID string) ([]*model.Subsection, error)
	ListSubsectionsByTranscript(ctx context.Context, transcriptID string) ([]*model.Subsection, error)
	UpdateSubsection(ctx context.Context, subsection *model.Subsection) error
	DeleteSubsection(ctx context.Context, id string) (bool, error)
}
