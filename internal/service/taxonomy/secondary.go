package taxonomy

import (
	"context"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository"
	"github.com/Taichi-iskw/tagscribe/internal/textnorm"
)

// CreateSecondaryTag adds a secondary tag under an existing primary tag
func (s *service) CreateSecondaryTag(ctx context.Context, primaryTagID, name string) (*model.SecondaryTag, error) {
	var tag *model.SecondaryTag
	err := s.tx.InTx(ctx, func(stores repository.Stores) error {
		if _, err := stores.Taxonomy.GetPrimaryTag(ctx, primaryTagID); err != nil {
			return err
		}
		var err error
		tag, err = NewSecondaryTag(ctx, stores.Taxonomy, primaryTagID, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// ListSecondaryTags returns the secondary tags of one primary tag
func (s *service) ListSecondaryTags(ctx context.Context, primaryTagID string) ([]*model.SecondaryTag, error) {
	if _, err := s.stores.Taxonomy.GetPrimaryTag(ctx, primaryTagID); err != nil {
		return nil, err
	}
	return s.stores.Taxonomy.ListSecondaryTags(ctx, []string{primaryTagID})
}

// RenameSecondaryTag renames a secondary tag
func (s *service) RenameSecondaryTag(ctx context.Context, id, name string) (*model.SecondaryTag, error) {
	name = textnorm.Name(name)
	if name == "" {
		return nil, apperrors.Validation("secondary tag name is required")
	}

	var tag *model.SecondaryTag
	err := s.tx.InTx(ctx, func(stores repository.Stores) error {
		if err := stores.Taxonomy.RenameSecondaryTag(ctx, id, name); err != nil {
			return err
		}
		var err error
		tag, err = stores.Taxonomy.GetSecondaryTag(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteSecondaryTag removes the tag and drops its id from every impression
func (s *service) DeleteSecondaryTag(ctx context.Context, id string) (bool, error) {
	deleted, err := s.stores.Taxonomy.DeleteSecondaryTag(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info("secondary tag deleted", "id", id)
	}
	return deleted, nil
}
