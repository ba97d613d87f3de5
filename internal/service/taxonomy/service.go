package taxonomy

import (
	"context"
	"time"

	"github.com/Taichi-iskw/tagscribe/internal/logger"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository"
)

const (
	defaultPrimaryTagLimit = 20
	maxPrimaryTagLimit     = 100
)

// MasterTagInput describes a master tag to resolve or create
type MasterTagInput struct {
	Name        string
	Description *string
	Color       *string
	Icon        *string
	// ForceNew turns an existing name match into a Conflict instead of reusing it
	ForceNew bool
}

// MasterTagPatch holds the master tag fields to change; nil fields are left alone
type MasterTagPatch struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
	IsClosed    *bool
}

// BranchTagPatch holds the branch tag fields to change
type BranchTagPatch struct {
	Name        *string
	Description *string
}

// ListPrimaryTagsInput filters the primary tag instances of one master tag
type ListPrimaryTagsInput struct {
	MasterTagID string
	Search      string
	Limit       int
}

// Service manages the master / branch / primary / secondary tag taxonomy
type Service interface {
	ResolveOrCreateMasterTag(ctx context.Context, in MasterTagInput) (*model.MasterTag, bool, error)
	GetMasterTag(ctx context.Context, id string) (*model.MasterTag, error)
	ListMasterTags(ctx context.Context, includeClosed bool) ([]*model.MasterTag, error)
	RenameMasterTag(ctx context.Context, id, newName string) (*model.MasterTag, error)
	UpdateMasterTag(ctx context.Context, id string, patch MasterTagPatch) (*model.MasterTag, error)
	CloseMasterTag(ctx context.Context, id string) (*model.MasterTag, error)
	ReopenMasterTag(ctx context.Context, id string) (*model.MasterTag, error)
	DeleteMasterTag(ctx context.Context, id string) (bool, error)

	CreateBranchTag(ctx context.Context, masterTagID, name string, description *string) (*model.BranchTag, error)
	ListBranchTags(ctx context.Context, masterTagID string) ([]*model.BranchTag, error)
	UpdateBranchTag(ctx context.Context, id string, patch BranchTagPatch) (*model.BranchTag, error)
	DeleteBranchTag(ctx context.Context, id string) (bool, error)

	ListPrimaryTags(ctx context.Context, in ListPrimaryTagsInput) ([]*model.PrimaryTag, error)
	CreatePrimaryTagInstance(ctx context.Context, masterTagID, name string) (*model.PrimaryTag, error)
	RenamePrimaryTag(ctx context.Context, id, name string) (*model.PrimaryTag, error)

	CreateSecondaryTag(ctx context.Context, primaryTagID, name string) (*model.SecondaryTag, error)
	ListSecondaryTags(ctx context.Context, primaryTagID string) ([]*model.SecondaryTag, error)
	RenameSecondaryTag(ctx context.Context, id, name string) (*model.SecondaryTag, error)
	DeleteSecondaryTag(ctx context.Context, id string) (bool, error)
}

// service implements Service
type service struct {
	stores repository.Stores
	tx     repository.TxRunner
	log    *logger.Logger
	now    func() time.Time
}

// NewService creates a taxonomy service. Reads go through stores, writes through tx.
func NewService(stores repository.Stores, tx repository.TxRunner, log *logger.Logger) Service {
	return &service{
		stores: stores,
		tx:     tx,
		log:    log.With("service", "TaxonomyService"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}
