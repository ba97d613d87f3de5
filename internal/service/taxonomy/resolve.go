package taxonomy

import (
	"context"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository/taxonomy"
	"github.com/Taichi-iskw/tagscribe/internal/textnorm"
)

// The helpers below take a transaction-bound repository so callers can compose
// them into a larger unit of work.

// ResolveMasterTag returns the master tag whose name matches case-insensitively,
// creating it when none exists. The bool reports whether it was created.
func ResolveMasterTag(ctx context.Context, repo taxonomy.Repository, in MasterTagInput) (*model.MasterTag, bool, error) {
	name := textnorm.Name(in.Name)
	if name == "" {
		return nil, false, apperrors.Validation("master tag name is required")
	}

	existing, err := repo.FindMasterTagByName(ctx, name)
	if err == nil {
		if in.ForceNew {
			return nil, false, masterConflict(existing)
		}
		return existing, false, nil
	}
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		return nil, false, err
	}

	tag := &model.MasterTag{
		ID:          uuid.NewString(),
		Name:        name,
		Description: trimmedPtr(in.Description),
		Color:       trimmedPtr(in.Color),
		Icon:        trimmedPtr(in.Icon),
	}
	if err := repo.CreateMasterTag(ctx, tag); err != nil {
		return nil, false, err
	}
	return tag, true, nil
}

// EnsureBranchTag returns the branch with the trimmed name under the master, creating it if absent
func EnsureBranchTag(ctx context.Context, repo taxonomy.Repository, masterTagID, name string, description *string) (*model.BranchTag, bool, error) {
	name = textnorm.Name(name)
	if name == "" {
		return nil, false, apperrors.Validation("branch tag name is required")
	}

	existing, err := repo.FindBranchTagByName(ctx, masterTagID, name)
	if err == nil {
		return existing, false, nil
	}
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		return nil, false, err
	}

	tag := &model.BranchTag{
		ID:          uuid.NewString(),
		MasterTagID: masterTagID,
		Name:        name,
		Description: trimmedPtr(description),
	}
	if err := repo.CreateBranchTag(ctx, tag); err != nil {
		return nil, false, err
	}
	return tag, true, nil
}

// NewPrimaryInstance always inserts a new primary tag row and derives its instance index
func NewPrimaryInstance(ctx context.Context, repo taxonomy.Repository, masterTagID, name string) (*model.PrimaryTag, error) {
	name = textnorm.Name(name)
	if name == "" {
		return nil, apperrors.Validation("primary tag name is required")
	}

	tag := &model.PrimaryTag{
		ID:          uuid.NewString(),
		MasterTagID: masterTagID,
		Name:        name,
	}
	if err := repo.CreatePrimaryTag(ctx, tag); err != nil {
		return nil, err
	}
	if err := FillInstanceIndex(ctx, repo, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// FillInstanceIndex sets InstanceIndex and DisplayName from the tag's position
// among same-named instances of its master
func FillInstanceIndex(ctx context.Context, repo taxonomy.Repository, tag *model.PrimaryTag) error {
	index, err := repo.CountInstancesUpTo(ctx, tag)
	if err != nil {
		return err
	}
	tag.InstanceIndex = index
	tag.DisplayName = model.DisplayName(tag.Name, index)
	return nil
}

// NewSecondaryTag inserts a secondary tag under the given primary tag
func NewSecondaryTag(ctx context.Context, repo taxonomy.Repository, primaryTagID, name string) (*model.SecondaryTag, error) {
	name = textnorm.Name(name)
	if name == "" {
		return nil, apperrors.Validation("secondary tag name is required")
	}

	tag := &model.SecondaryTag{
		ID:           uuid.NewString(),
		PrimaryTagID: primaryTagID,
		Name:         name,
	}
	if err := repo.CreateSecondaryTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func masterConflict(existing *model.MasterTag) *apperrors.AppError {
	return apperrors.New(apperrors.CodeConflict, "master tag with this name already exists").
		WithDetails(map[string]any{"id": existing.ID, "name": existing.Name})
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
