package taxonomy

import (
	"context"

	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository/common"
)

// Repository defines persistence for the four-level tag taxonomy
type Repository interface {
	// Master tags
	CreateMasterTag(ctx context.Context, tag *model.MasterTag) error
	GetMasterTag(ctx context.Context, id string) (*model.MasterTag, error)
	FindMasterTagByName(ctx context.Context, name string) (*model.MasterTag, error)
	ListMasterTags(ctx context.Context, includeClosed bool) ([]*model.MasterTag, error)
	ListMasterTagsByIDs(ctx context.Context, ids []string) ([]*model.MasterTag, error)
	UpdateMasterTag(ctx context.Context, tag *model.MasterTag) error
	DeleteMasterTag(ctx context.Context, id string) (bool, error)

	// Branch tags
	CreateBranchTag(ctx context.Context, tag *model.BranchTag) error
	GetBranchTag(ctx context.Context, id string) (*model.BranchTag, error)
	FindBranchTagByName(ctx context.Context, masterTagID, name string) (*model.BranchTag, error)
	ListBranchTags(ctx context.Context, masterTagIDs []string) ([]*model.BranchTag, error)
	UpdateBranchTag(ctx context.Context, tag *model.BranchTag) error
	DeleteBranchTag(ctx context.Context, id string) (bool, error)

	// Primary tags
	CreatePrimaryTag(ctx context.Context, tag *model.PrimaryTag) error
	GetPrimaryTag(ctx context.Context, id string) (*model.PrimaryTag, error)
	ListPrimaryTags(ctx context.Context, masterTagIDs []string) ([]*model.PrimaryTag, error)
	ListPrimaryTagsByIDs(ctx context.Context, ids []string) ([]*model.PrimaryTag, error)
	CountInstancesUpTo(ctx context.Context, tag *model.PrimaryTag) (int, error)
	RenamePrimaryTag(ctx context.Context, id, name string) error
	MovePrimaryTag(ctx context.Context, id, masterTagID string) error

	// Secondary tags
	CreateSecondaryTag(ctx context.Context, tag *model.SecondaryTag) error
	GetSecondaryTag(ctx context.Context, id string) (*model.SecondaryTag, error)
	ListSecondaryTags(ctx context.Context, primaryTagIDs []string) ([]*model.SecondaryTag, error)
	ListSecondaryTagsByIDs(ctx context.Context, ids []string) ([]*model.SecondaryTag, error)
	RenameSecondaryTag(ctx context.Context, id, name string) error
	DeleteSecondaryTag(ctx context.Context, id string) (bool, error)
}

// taxonomyRepository implements Repository using PostgreSQL
type taxonomyRepository struct {
	db common.DBTX
}

// NewRepository creates a new instance of Repository
func NewRepository(db common.DBTX) Repository {
	return &taxonomyRepository{
		db: db,
	}
}
