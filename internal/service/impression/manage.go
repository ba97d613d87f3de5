package impression

import (
	"context"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository"
	taxonomysvc "github.com/Taichi-iskw/tagscribe/internal/service/taxonomy"
	"github.com/Taichi-iskw/tagscribe/internal/textnorm"
)

// GetImpression returns one impression
func (r *recorder) GetImpression(ctx context.Context, id string) (*model.TagImpression, error) {
	return r.stores.Impressions.GetByID(ctx, id)
}

// DeleteImpression is idempotent: deleting a missing id succeeds with AlreadyDeleted set
func (r *recorder) DeleteImpression(ctx context.Context, id string) (*DeleteResult, error) {
	removed, err := r.stores.Impressions.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if removed {
		r.log.Info("impression deleted", "id", id)
	}
	return &DeleteResult{Deleted: true, AlreadyDeleted: !removed}, nil
}

// UpdateImpression changes the comment or attaches a new secondary tag
func (r *recorder) UpdateImpression(ctx context.Context, id string, in UpdateInput) (*model.TagImpression, error) {
	if (in.Comment == nil) == (in.NewSecondaryTagName == nil) {
		return nil, apperrors.Validation("exactly one of comment or newSecondaryTagName must be set")
	}
	if in.NewSecondaryTagName != nil && textnorm.Name(*in.NewSecondaryTagName) == "" {
		return nil, apperrors.Validation("secondary tag name is required")
	}

	var updated *model.TagImpression
	err := r.tx.InTx(ctx, func(stores repository.Stores) error {
		current, err := stores.Impressions.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if in.Comment != nil {
			if err := stores.Impressions.UpdateComment(ctx, id, trimmedPtr(in.Comment)); err != nil {
				return err
			}
		} else {
			if current.PrimaryTagID == nil {
				return apperrors.Validation("an impression without a primary tag cannot take secondary tags")
			}
			secondary, err := taxonomysvc.NewSecondaryTag(ctx, stores.Taxonomy, *current.PrimaryTagID, *in.NewSecondaryTagName)
			if err != nil {
				return err
			}
			if err := stores.Impressions.AppendSecondaryTag(ctx, id, secondary.ID); err != nil {
				return err
			}
		}

		updated, err = stores.Impressions.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
