//go:build integration

package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Taichi-iskw/tagscribe/internal/cache"
	"github.com/Taichi-iskw/tagscribe/internal/config"
	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/logger"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository"
	"github.com/Taichi-iskw/tagscribe/internal/repository/common"
	"github.com/Taichi-iskw/tagscribe/internal/service/analytics"
	"github.com/Taichi-iskw/tagscribe/internal/service/impression"
	"github.com/Taichi-iskw/tagscribe/internal/service/relocation"
	"github.com/Taichi-iskw/tagscribe/internal/service/taxonomy"
	"github.com/Taichi-iskw/tagscribe/internal/service/transcript"
)

func setupServices(t *testing.T) (Services, *pgxpool.Pool) {
	t.Helper()
	pool := common.SetupTestDB(t)
	return NewServices(repository.NewStores(pool), repository.NewTxRunner(pool), cache.Nop{}, config.Default(), logger.NewNop()), pool
}

// countImpressions reads the impression row count straight from the table
func countImpressions(t *testing.T, ctx context.Context, pool *pgxpool.Pool) int {
	t.Helper()
	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM tag_impressions`).Scan(&n))
	return n
}

func saveTranscript(t *testing.T, ctx context.Context, s Services, videoID string) *model.Transcript {
	t.Helper()
	_, err := s.Transcripts.RegisterVideo(ctx, transcript.VideoInput{ID: videoID, Title: "Call " + videoID})
	require.NoError(t, err)

	tr, err := s.Transcripts.SaveTranscript(ctx, transcript.SaveInput{
		VideoID:  videoID,
		Language: "en",
		Source:   transcript.Source{Text: "We think the price is too high.\n\nCan we revisit next quarter?"},
	})
	require.NoError(t, err)
	require.Len(t, tr.Blocks, 2)
	return tr
}

func TestServices_Integration(t *testing.T) {
	s, pool := setupServices(t)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	t.Run("concurrent saves get unique gap-free versions", func(t *testing.T) {
		_, err := s.Transcripts.RegisterVideo(ctx, transcript.VideoInput{ID: "vid-concurrent", Title: "Busy"})
		require.NoError(t, err)

		const saves = 8
		versions := make([]int, saves)
		var wg sync.WaitGroup
		errs := make(chan error, saves)
		for i := range saves {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				tr, err := s.Transcripts.SaveTranscript(ctx, transcript.SaveInput{
					VideoID:  "vid-concurrent",
					Language: "en",
					Source:   transcript.Source{Text: fmt.Sprintf("save %d", i)},
				})
				if err != nil {
					errs <- err
					return
				}
				versions[i] = tr.Version
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		sort.Ints(versions)
		for i, v := range versions {
			assert.Equal(t, i+1, v)
		}

		listed, err := s.Transcripts.ListVersions(ctx, "vid-concurrent")
		require.NoError(t, err)
		assert.Len(t, listed, saves)
	})

	t.Run("master names collide case-insensitively", func(t *testing.T) {
		created, isNew, err := s.Taxonomy.ResolveOrCreateMasterTag(ctx, taxonomy.MasterTagInput{Name: "Objections"})
		require.NoError(t, err)
		assert.True(t, isNew)

		reused, isNew, err := s.Taxonomy.ResolveOrCreateMasterTag(ctx, taxonomy.MasterTagInput{Name: "  objections "})
		require.NoError(t, err)
		assert.False(t, isNew)
		assert.Equal(t, created.ID, reused.ID)

		_, _, err = s.Taxonomy.ResolveOrCreateMasterTag(ctx, taxonomy.MasterTagInput{Name: "OBJECTIONS", ForceNew: true})
		require.Error(t, err)
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeConflict, appErr.Code)
		assert.Equal(t, created.ID, appErr.Details["id"])
	})

	t.Run("move_primary reassigns impressions and analytics stay consistent", func(t *testing.T) {
		tr := saveTranscript(t, ctx, s, "vid-move")

		recorded, err := s.Impressions.RecordImpression(ctx, impression.RecordInput{
			TranscriptID:  tr.ID,
			BlockIDs:      []string{tr.Blocks[0].ID},
			MasterTagName: "Pricing Objections",
			BranchNames:   []string{"Budget"},
			PrimaryTags: []impression.PrimaryTagInput{
				{Name: "Too expensive", SecondaryTags: []string{"Competitor cheaper"}},
				{Name: "Too expensive"},
			},
		})
		require.NoError(t, err)
		require.Len(t, recorded.Impressions, 2)
		assert.Equal(t, "Too expensive (1)", recorded.Impressions[0].DisplayName)
		assert.Equal(t, "Too expensive (2)", recorded.Impressions[1].DisplayName)

		target, _, err := s.Taxonomy.ResolveOrCreateMasterTag(ctx, taxonomy.MasterTagInput{Name: "Timing"})
		require.NoError(t, err)

		moved, err := s.Relocation.Relocate(ctx, relocation.Request{
			Action:            relocation.ActionMovePrimary,
			PrimaryTagID:      *recorded.Impressions[0].PrimaryTagID,
			TargetMasterTagID: target.ID,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, moved.ImpressionsMoved)

		after, err := s.Impressions.GetImpression(ctx, recorded.Impressions[0].ID)
		require.NoError(t, err)
		assert.Equal(t, target.ID, after.MasterTagID)

		result, err := s.Analytics.GetAnalytics(ctx, analytics.Filter{})
		require.NoError(t, err)

		assert.Equal(t, countImpressions(t, ctx, pool), result.TotalImpressions)
		for _, m := range result.MasterTags {
			primaries := 0
			for _, p := range m.PrimaryTags {
				primaries += p.ImpressionCount
			}
			assert.LessOrEqual(t, primaries, m.MasterImpressionCount, m.Name)
			if m.ID == target.ID {
				assert.Equal(t, 1, m.MasterImpressionCount)
			}
		}

		tags, err := s.Analytics.LoadTagsForTranscript(ctx, tr.ID)
		require.NoError(t, err)
		assert.Len(t, tags.Impressions, 2)
		assert.Len(t, tags.Groups, 2)
	})

	t.Run("deleting a master cascades to its tags and impressions", func(t *testing.T) {
		tr := saveTranscript(t, ctx, s, "vid-cascade")

		recorded, err := s.Impressions.RecordImpression(ctx, impression.RecordInput{
			TranscriptID:  tr.ID,
			BlockIDs:      []string{tr.Blocks[1].ID},
			MasterTagName: "Follow-ups",
			BranchNames:   []string{"Scheduling"},
			PrimaryTags:   []impression.PrimaryTagInput{{Name: "Next quarter"}},
		})
		require.NoError(t, err)
		before := countImpressions(t, ctx, pool)

		deleted, err := s.Taxonomy.DeleteMasterTag(ctx, recorded.MasterTag.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		result, err := s.Analytics.GetAnalytics(ctx, analytics.Filter{})
		require.NoError(t, err)
		assert.Equal(t, before-1, countImpressions(t, ctx, pool))
		assert.Equal(t, countImpressions(t, ctx, pool), result.TotalImpressions)

		_, err = s.Impressions.GetImpression(ctx, recorded.Impressions[0].ID)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

		again, err := s.Taxonomy.DeleteMasterTag(ctx, recorded.MasterTag.ID)
		require.NoError(t, err)
		assert.False(t, again)

		res, err := s.Impressions.DeleteImpression(ctx, recorded.Impressions[0].ID)
		require.NoError(t, err)
		assert.True(t, res.AlreadyDeleted)
	})
}
