package taxonomy

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository"
	"github.com/Taichi-iskw/tagscribe/internal/telemetry"
	"github.com/Taichi-iskw/tagscribe/internal/textnorm"
)

// ResolveOrCreateMasterTag finds a master tag by case-insensitive name or creates an open one
func (s *service) ResolveOrCreateMasterTag(ctx context.Context, in MasterTagInput) (tag *model.MasterTag, isNew bool, err error) {
	ctx, span := telemetry.Start(ctx, "taxonomy", "ResolveOrCreateMasterTag", attribute.String("name", in.Name))
	defer func() { telemetry.End(span, err) }()

	err = s.tx.InTx(ctx, func(stores repository.Stores) error {
		var txErr error
		tag, isNew, txErr = ResolveMasterTag(ctx, stores.Taxonomy, in)
		return txErr
	})
	if err != nil {
		return nil, false, err
	}

	if isNew {
		s.log.Info("master tag created", "id", tag.ID, "name", tag.Name)
	}
	return tag, isNew, nil
}

// GetMasterTag returns the master tag with its branch tags
func (s *service) GetMasterTag(ctx context.Context, id string) (*model.MasterTag, error) {
	tag, err := s.stores.Taxonomy.GetMasterTag(ctx, id)
	if err != nil {
		return nil, err
	}

	branches, err := s.stores.Taxonomy.ListBranchTags(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	tag.BranchTags = branches
	return tag, nil
}

// ListMasterTags returns master tags ordered by name, each with its branch tags
func (s *service) ListMasterTags(ctx context.Context, includeClosed bool) ([]*model.MasterTag, error) {
	tags, err := s.stores.Taxonomy.ListMasterTags(ctx, includeClosed)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return tags, nil
	}

	ids := make([]string, len(tags))
	byID := make(map[string]*model.MasterTag, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
		byID[tag.ID] = tag
	}

	branches, err := s.stores.Taxonomy.ListBranchTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, branch := range branches {
		if master, ok := byID[branch.MasterTagID]; ok {
			master.BranchTags = append(master.BranchTags, branch)
		}
	}
	return tags, nil
}

// RenameMasterTag renames in place unless another master owns the name
func (s *service) RenameMasterTag(ctx context.Context, id, newName string) (*model.MasterTag, error) {
	return s.UpdateMasterTag(ctx, id, MasterTagPatch{Name: &newName})
}

// UpdateMasterTag applies patch to the master tag. A name change goes through the
// same case-insensitive conflict check as rename.
func (s *service) UpdateMasterTag(ctx context.Context, id string, patch MasterTagPatch) (tag *model.MasterTag, err error) {
	ctx, span := telemetry.Start(ctx, "taxonomy", "UpdateMasterTag", attribute.String("master_tag_id", id))
	defer func() { telemetry.End(span, err) }()

	err = s.tx.InTx(ctx, func(stores repository.Stores) error {
		current, err := stores.Taxonomy.GetMasterTag(ctx, id)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			name := textnorm.Name(*patch.Name)
			if name == "" {
				return apperrors.Validation("master tag name is required")
			}
			other, err := stores.Taxonomy.FindMasterTagByName(ctx, name)
			switch {
			case err == nil && other.ID != current.ID:
				return masterConflict(other)
			case err != nil && !apperrors.HasCode(err, apperrors.CodeNotFound):
				return err
			}
			current.Name = name
		}
		if patch.Description != nil {
			current.Description = trimmedPtr(patch.Description)
		}
		if patch.Color != nil {
			current.Color = trimmedPtr(patch.Color)
		}
		if patch.Icon != nil {
			current.Icon = trimmedPtr(patch.Icon)
		}
		if patch.IsClosed != nil {
			s.setClosed(current, *patch.IsClosed)
		}

		if err := stores.Taxonomy.UpdateMasterTag(ctx, current); err != nil {
			return err
		}
		tag = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("master tag updated", "id", tag.ID, "name", tag.Name, "closed", tag.IsClosed)
	return tag, nil
}

// CloseMasterTag marks the master tag closed; it can still receive impressions
func (s *service) CloseMasterTag(ctx context.Context, id string) (*model.MasterTag, error) {
	closed := true
	return s.UpdateMasterTag(ctx, id, MasterTagPatch{IsClosed: &closed})
}

// ReopenMasterTag clears the closed flag
func (s *service) ReopenMasterTag(ctx context.Context, id string) (*model.MasterTag, error) {
	closed := false
	return s.UpdateMasterTag(ctx, id, MasterTagPatch{IsClosed: &closed})
}

// DeleteMasterTag removes the master tag together with its whole subtree and impressions
func (s *service) DeleteMasterTag(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := s.tx.InTx(ctx, func(stores repository.Stores) error {
		var err error
		deleted, err = stores.Taxonomy.DeleteMasterTag(ctx, id)
		return err
	})
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info("master tag deleted", "id", id)
	}
	return deleted, nil
}

// setClosed keeps closed_at consistent with is_closed
func (s *service) setClosed(tag *model.MasterTag, closed bool) {
	if tag.IsClosed == closed {
		return
	}
	tag.IsClosed = closed
	if closed {
		now := s.now()
		tag.ClosedAt = &now
	} else {
		tag.ClosedAt = nil
	}
}
