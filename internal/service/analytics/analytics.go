package analytics

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/telemetry"
)

// GetAnalytics aggregates impression counts per master and primary tag. With a
// transcript filter it adds a (master, primary) breakdown for that transcript.
func (s *service) GetAnalytics(ctx context.Context, filter Filter) (result *model.Analytics, err error) {
	ctx, span := telemetry.Start(ctx, "analytics", "GetAnalytics")
	defer func() { telemetry.End(span, err) }()

	// Entries are keyed by the generation read before querying; a write committed
	// afterwards bumps the generation, so the result stored below is never served again
	gen, cacheable := s.generation(ctx)
	key := cacheKey(gen, filter)
	if cacheable {
		var cached model.Analytics
		if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
			s.log.Warn("analytics cache read failed", "key", key, "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	if filter.TranscriptID != nil {
		if _, err := s.stores.Transcripts.GetByID(ctx, *filter.TranscriptID); err != nil {
			return nil, err
		}
	}

	var (
		masters   []*model.MasterTag
		counts    []model.TagCount
		breakdown []model.TranscriptBreakdownRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if filter.MasterTagID != nil {
			masters, err = s.stores.Taxonomy.ListMasterTagsByIDs(gctx, []string{*filter.MasterTagID})
			if err == nil && len(masters) == 0 {
				return apperrors.NotFound("master tag").WithDetails(map[string]any{"id": *filter.MasterTagID})
			}
			return err
		}
		masters, err = s.stores.Taxonomy.ListMasterTags(gctx, true)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.stores.Impressions.CountByMaster(gctx, filter.MasterTagID)
		return err
	})
	if filter.TranscriptID != nil {
		g.Go(func() error {
			var err error
			breakdown, err = s.stores.Impressions.TranscriptBreakdown(gctx, *filter.TranscriptID, filter.MasterTagID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	masterIDs := make([]string, len(masters))
	for i, m := range masters {
		masterIDs[i] = m.ID
	}
	primaries, err := s.stores.Taxonomy.ListPrimaryTags(ctx, masterIDs)
	if err != nil {
		return nil, err
	}

	result = aggregate(masters, primaries, counts)
	if filter.TranscriptID != nil {
		result.TranscriptBreakdown = breakdown
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			s.log.Warn("analytics cache write failed", "key", key, "error", err)
		}
	}
	return result, nil
}

// aggregate builds per-master stats; totals are sums over the per-tag results
func aggregate(masters []*model.MasterTag, primaries []*model.PrimaryTag, counts []model.TagCount) *model.Analytics {
	model.AssignInstanceIndexes(primaries)

	byMaster := make(map[string][]model.PrimaryTagStats, len(masters))
	for _, p := range primaries {
		byMaster[p.MasterTagID] = append(byMaster[p.MasterTagID], model.PrimaryTagStats{
			ID:              p.ID,
			Name:            p.Name,
			InstanceIndex:   p.InstanceIndex,
			DisplayName:     p.DisplayName,
			ImpressionCount: p.ImpressionCount,
		})
	}
	countByMaster := make(map[string]int, len(counts))
	for _, c := range counts {
		countByMaster[c.ID] = c.Count
	}

	result := &model.Analytics{MasterTags: make([]model.MasterTagStats, 0, len(masters))}
	for _, m := range masters {
		stats := byMaster[m.ID]
		if stats == nil {
			stats = []model.PrimaryTagStats{}
		}
		sort.SliceStable(stats, func(i, j int) bool {
			return stats[i].ImpressionCount > stats[j].ImpressionCount
		})

		entry := model.MasterTagStats{
			ID:                    m.ID,
			Name:                  m.Name,
			IsClosed:              m.IsClosed,
			MasterImpressionCount: countByMaster[m.ID],
			PrimaryTags:           stats,
		}
		result.MasterTags = append(result.MasterTags, entry)
		result.TotalPrimaryTags += len(stats)
		result.TotalImpressions += entry.MasterImpressionCount
	}
	result.TotalMasterTags = len(result.MasterTags)
	return result
}

// generation reports the current cache generation; false disables caching for this call
func (s *service) generation(ctx context.Context) (int64, bool) {
	var gen int64
	if _, err := s.cache.Get(ctx, generationKey, &gen); err != nil {
		s.log.Warn("analytics cache generation read failed", "error", err)
		return 0, false
	}
	return gen, true
}

func cacheKey(gen int64, filter Filter) string {
	deref := func(s *string) string {
		if s == nil {
			return "*"
		}
		return *s
	}
	return fmt.Sprintf("analytics:%d:%s:%s", gen, deref(filter.TranscriptID), deref(filter.MasterTagID))
}
