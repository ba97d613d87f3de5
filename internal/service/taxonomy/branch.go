package taxonomy

import (
	"context"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository"
	"github.com/Taichi-iskw/tagscribe/internal/textnorm"
)

// CreateBranchTag adds a branch under the master tag. A duplicate trimmed name is rejected.
func (s *service) CreateBranchTag(ctx context.Context, masterTagID, name string, description *string) (*model.BranchTag, error) {
	var tag *model.BranchTag
	err := s.tx.InTx(ctx, func(stores repository.Stores) error {
		if _, err := stores.Taxonomy.GetMasterTag(ctx, masterTagID); err != nil {
			return err
		}

		var created bool
		var err error
		tag, created, err = EnsureBranchTag(ctx, stores.Taxonomy, masterTagID, name, description)
		if err != nil {
			return err
		}
		if !created {
			return apperrors.Validation("branch tag with this name already exists under the master tag").
				WithDetails(map[string]any{"id": tag.ID, "name": tag.Name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("branch tag created", "id", tag.ID, "master_tag_id", masterTagID, "name", tag.Name)
	return tag, nil
}

// ListBranchTags returns the branch tags of one master tag
func (s *service) ListBranchTags(ctx context.Context, masterTagID string) ([]*model.BranchTag, error) {
	if _, err := s.stores.Taxonomy.GetMasterTag(ctx, masterTagID); err != nil {
		return nil, err
	}
	return s.stores.Taxonomy.ListBranchTags(ctx, []string{masterTagID})
}

// UpdateBranchTag renames a branch or changes its description
func (s *service) UpdateBranchTag(ctx context.Context, id string, patch BranchTagPatch) (*model.BranchTag, error) {
	var tag *model.BranchTag
	err := s.tx.InTx(ctx, func(stores repository.Stores) error {
		current, err := stores.Taxonomy.GetBranchTag(ctx, id)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			name := textnorm.Name(*patch.Name)
			if name == "" {
				return apperrors.Validation("branch tag name is required")
			}
			other, err := stores.Taxonomy.FindBranchTagByName(ctx, current.MasterTagID, name)
			switch {
			case err == nil && other.ID != current.ID:
				return apperrors.Validation("branch tag with this name already exists under the master tag").
					WithDetails(map[string]any{"id": other.ID, "name": other.Name})
			case err != nil && !apperrors.HasCode(err, apperrors.CodeNotFound):
				return err
			}
			current.Name = name
		}
		if patch.Description != nil {
			current.Description = trimmedPtr(patch.Description)
		}

		if err := stores.Taxonomy.UpdateBranchTag(ctx, current); err != nil {
			return err
		}
		tag = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteBranchTag removes a branch tag; it reports false when nothing was deleted
func (s *service) DeleteBranchTag(ctx context.Context, id string) (bool, error) {
	deleted, err := s.stores.Taxonomy.DeleteBranchTag(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info("branch tag deleted", "id", id)
	}
	return deleted, nil
}
