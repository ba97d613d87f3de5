package analytics

import (
	"context"
	"encoding/json"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/service/transcript"
	"github.com/Taichi-iskw/tagscribe/internal/telemetry"
)

// LoadTagsForTranscript returns the transcript's impressions both flat and regrouped by
// master tag and selection, together with its sections
func (s *service) LoadTagsForTranscript(ctx context.Context, transcriptID string) (result *model.TranscriptTags, err error) {
	ctx, span := telemetry.Start(ctx, "analytics", "LoadTagsForTranscript", attribute.String("transcript_id", transcriptID))
	defer func() { telemetry.End(span, err) }()

	if _, err := s.stores.Transcripts.GetByID(ctx, transcriptID); err != nil {
		return nil, err
	}

	var (
		impressions []*model.TagImpression
		sections    []*model.Section
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		impressions, err = s.stores.Impressions.ListByTranscript(gctx, transcriptID)
		return err
	})
	g.Go(func() error {
		var err error
		sections, err = transcript.LoadSections(gctx, s.stores, transcriptID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortImpressions(impressions)
	refs, err := s.loadReferences(ctx, impressions)
	if err != nil {
		return nil, err
	}

	indexPrimaryTags(impressions, refs.primaries)

	return &model.TranscriptTags{
		TranscriptID: transcriptID,
		Groups:       groupImpressions(impressions, refs),
		Impressions:  impressions,
		Sections:     sections,
	}, nil
}

// references holds the taxonomy rows that a set of impressions points at
type references struct {
	masters     map[string]*model.MasterTag
	primaries   map[string]*model.PrimaryTag
	secondaries map[string]*model.SecondaryTag
}

func (s *service) loadReferences(ctx context.Context, impressions []*model.TagImpression) (*references, error) {
	var masterIDs, primaryIDs, secondaryIDs []string
	seen := make(map[string]bool)
	add := func(ids *[]string, id string) {
		if !seen[id] {
			seen[id] = true
			*ids = append(*ids, id)
		}
	}
	for _, imp := range impressions {
		add(&masterIDs, imp.MasterTagID)
		if imp.PrimaryTagID != nil {
			add(&primaryIDs, *imp.PrimaryTagID)
		}
		for _, id := range imp.SecondaryTagIDs {
			add(&secondaryIDs, id)
		}
	}

	var (
		masters     []*model.MasterTag
		branches    []*model.BranchTag
		primaries   []*model.PrimaryTag
		secondaries []*model.SecondaryTag
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		masters, err = s.stores.Taxonomy.ListMasterTagsByIDs(gctx, masterIDs)
		return err
	})
	g.Go(func() error {
		var err error
		branches, err = s.stores.Taxonomy.ListBranchTags(gctx, masterIDs)
		return err
	})
	g.Go(func() error {
		var err error
		primaries, err = s.stores.Taxonomy.ListPrimaryTagsByIDs(gctx, primaryIDs)
		return err
	})
	g.Go(func() error {
		var err error
		secondaries, err = s.stores.Taxonomy.ListSecondaryTagsByIDs(gctx, secondaryIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	refs := &references{
		masters:     make(map[string]*model.MasterTag, len(masters)),
		primaries:   make(map[string]*model.PrimaryTag, len(primaries)),
		secondaries: make(map[string]*model.SecondaryTag, len(secondaries)),
	}
	for _, m := range masters {
		m.BranchTags = []*model.BranchTag{}
		refs.masters[m.ID] = m
	}
	for _, b := range branches {
		if m, ok := refs.masters[b.MasterTagID]; ok {
			m.BranchTags = append(m.BranchTags, b)
		}
	}
	for _, p := range primaries {
		refs.primaries[p.ID] = p
	}
	for _, sec := range secondaries {
		refs.secondaries[sec.ID] = sec
	}
	return refs, nil
}

func sortImpressions(impressions []*model.TagImpression) {
	sort.SliceStable(impressions, func(i, j int) bool {
		a, b := impressions[i], impressions[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// indexPrimaryTags numbers the primary tags seen in impressions per (master, name), in
// the order they are first referenced. Impressions must be sorted by creation.
func indexPrimaryTags(impressions []*model.TagImpression, primaries map[string]*model.PrimaryTag) {
	type key struct{ master, name string }
	counters := make(map[key]int)
	numbered := make(map[string]bool)

	for _, imp := range impressions {
		if imp.PrimaryTagID == nil {
			continue
		}
		p, ok := primaries[*imp.PrimaryTagID]
		if !ok {
			continue
		}
		if !numbered[p.ID] {
			numbered[p.ID] = true
			k := key{p.MasterTagID, p.Name}
			counters[k]++
			p.InstanceIndex = counters[k]
			p.DisplayName = model.DisplayName(p.Name, p.InstanceIndex)
		}
		imp.InstanceIndex = p.InstanceIndex
		imp.DisplayName = p.DisplayName
	}
}

// groupKey identifies impressions made by one tagging action. Ranges and block ids are
// serialized in stored order.
func groupKey(imp *model.TagImpression) string {
	// strings and ints only, so Marshal cannot fail
	var raw []byte
	if len(imp.SelectionRanges) > 0 {
		raw, _ = json.Marshal(imp.SelectionRanges)
	} else {
		raw, _ = json.Marshal(imp.BlockIDs)
	}
	return imp.MasterTagID + ":" + string(raw)
}

func groupImpressions(impressions []*model.TagImpression, refs *references) []*model.TagGroup {
	groups := []*model.TagGroup{}
	byKey := make(map[string]*model.TagGroup)

	for _, imp := range impressions {
		key := groupKey(imp)
		group, ok := byKey[key]
		if !ok {
			group = &model.TagGroup{
				Key:             key,
				MasterTag:       refs.masters[imp.MasterTagID],
				BlockIDs:        imp.BlockIDs,
				SelectionRanges: imp.SelectionRanges,
				SelectedText:    imp.SelectedText,
				SectionID:       imp.SectionID,
				SubsectionID:    imp.SubsectionID,
				PrimaryTags:     []model.GroupPrimaryTag{},
				ImpressionIDs:   []string{},
				CreatedAt:       imp.CreatedAt,
			}
			byKey[key] = group
			groups = append(groups, group)
		}

		group.ImpressionIDs = append(group.ImpressionIDs, imp.ID)
		if imp.PrimaryTagID == nil {
			if imp.Comment != nil {
				group.Comments = append(group.Comments, *imp.Comment)
			}
			continue
		}

		entry := model.GroupPrimaryTag{
			ImpressionID:  imp.ID,
			ID:            *imp.PrimaryTagID,
			InstanceIndex: imp.InstanceIndex,
			DisplayName:   imp.DisplayName,
			SecondaryTags: []*model.SecondaryTag{},
			Comment:       imp.Comment,
		}
		if p, ok := refs.primaries[*imp.PrimaryTagID]; ok {
			entry.Name = p.Name
		}
		for _, id := range imp.SecondaryTagIDs {
			if sec, ok := refs.secondaries[id]; ok {
				entry.SecondaryTags = append(entry.SecondaryTags, sec)
			}
		}
		group.PrimaryTags = append(group.PrimaryTags, entry)
	}
	return groups
}
