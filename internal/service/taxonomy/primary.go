package taxonomy

import (
	"context"
	"sort"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository"
	"github.com/Taichi-iskw/tagscribe/internal/textnorm"
)

// ListPrimaryTags returns the instances under a master tag with instance indexes and
// impression counts, most used first
func (s *service) ListPrimaryTags(ctx context.Context, in ListPrimaryTagsInput) ([]*model.PrimaryTag, error) {
	if _, err := s.stores.Taxonomy.GetMasterTag(ctx, in.MasterTagID); err != nil {
		return nil, err
	}

	tags, err := s.stores.Taxonomy.ListPrimaryTags(ctx, []string{in.MasterTagID})
	if err != nil {
		return nil, err
	}

	// Indexes are numbered over all instances before filtering
	model.AssignInstanceIndexes(tags)

	if in.Search != "" {
		filtered := tags[:0]
		for _, tag := range tags {
			if textnorm.ContainsFold(tag.Name, in.Search) {
				filtered = append(filtered, tag)
			}
		}
		tags = filtered
	}

	sort.SliceStable(tags, func(i, j int) bool {
		a, b := tags[i], tags[j]
		if a.ImpressionCount != b.ImpressionCount {
			return a.ImpressionCount > b.ImpressionCount
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	if limit := clampLimit(in.Limit); len(tags) > limit {
		tags = tags[:limit]
	}

	if err := s.attachSecondaryTags(ctx, tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// CreatePrimaryTagInstance always creates a new instance, even when the name is taken
func (s *service) CreatePrimaryTagInstance(ctx context.Context, masterTagID, name string) (*model.PrimaryTag, error) {
	var tag *model.PrimaryTag
	err := s.tx.InTx(ctx, func(stores repository.Stores) error {
		if _, err := stores.Taxonomy.GetMasterTag(ctx, masterTagID); err != nil {
			return err
		}
		var err error
		tag, err = NewPrimaryInstance(ctx, stores.Taxonomy, masterTagID, name)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("primary tag created", "id", tag.ID, "master_tag_id", masterTagID, "display_name", tag.DisplayName)
	return tag, nil
}

// RenamePrimaryTag renames one instance; its index is recomputed under the new name
func (s *service) RenamePrimaryTag(ctx context.Context, id, name string) (*model.PrimaryTag, error) {
	var tag *model.PrimaryTag
	err := s.tx.InTx(ctx, func(stores repository.Stores) error {
		current, err := stores.Taxonomy.GetPrimaryTag(ctx, id)
		if err != nil {
			return err
		}

		name = textnorm.Name(name)
		if name == "" {
			return apperrors.Validation("primary tag name is required")
		}
		if err := stores.Taxonomy.RenamePrimaryTag(ctx, id, name); err != nil {
			return err
		}
		current.Name = name

		if err := FillInstanceIndex(ctx, stores.Taxonomy, current); err != nil {
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

func (s *service) attachSecondaryTags(ctx context.Context, tags []*model.PrimaryTag) error {
	if len(tags) == 0 {
		return nil
	}

	ids := make([]string, len(tags))
	byID := make(map[string]*model.PrimaryTag, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
		byID[tag.ID] = tag
	}

	secondaries, err := s.stores.Taxonomy.ListSecondaryTags(ctx, ids)
	if err != nil {
		return err
	}
	for _, secondary := range secondaries {
		if primary, ok := byID[secondary.PrimaryTagID]; ok {
			primary.SecondaryTags = append(primary.SecondaryTags, secondary)
		}
	}
	return nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultPrimaryTagLimit
	case limit > maxPrimaryTagLimit:
		return maxPrimaryTagLimit
	default:
		return limit
	}
}
