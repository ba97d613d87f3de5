package section

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sectionRowColumns    = []string{"id", "transcript_id", "name", "start_block_index", "end_block_index", "created_at"}
	subsectionRowColumns = []string{"id", "section_id", "name", "start_block_index", "end_block_index", "created_at"}
)

func intPtr(i int) *int { return &i }

func TestSectionRepository_CreateSection(t *testing.T) {
	createdAt := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		section  *model.Section
		setup    func(mock pgxmock.PgxPoolIface)
		wantCode string
	}{
		{
			name:    "open section",
			section: &model.Section{ID: "s-1", TranscriptID: "tr-1", Name: "Intro", StartBlockIndex: 0},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO sections").
					WithArgs("s-1", "tr-1", "Intro", 0, (*int)(nil)).
					WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))
			},
		},
		{
			name:    "case-insensitive duplicate",
			section: &model.Section{ID: "s-2", TranscriptID: "tr-1", Name: "INTRO", StartBlockIndex: 3, EndBlockIndex: intPtr(5)},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO sections").
					WithArgs("s-2", "tr-1", "INTRO", 3, intPtr(5)).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "sections_transcript_name_key"})
			},
			wantCode: apperrors.CodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			err = NewRepository(mock).CreateSection(context.Background(), tt.section)

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, createdAt, tt.section.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSectionRepository_FindSectionByName(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(mock pgxmock.PgxPoolIface)
		wantID   string
		wantCode string
	}{
		{
			name: "found regardless of case",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT (.+) FROM sections WHERE transcript_id = \\$1 AND lower\\(name\\) = lower\\(\\$2\\)").
					WithArgs("tr-1", "intro").
					WillReturnRows(pgxmock.NewRows(sectionRowColumns).AddRow("s-1", "tr-1", "Intro", 0, nil, time.Now()))
			},
			wantID: "s-1",
		},
		{
			name: "missing",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT (.+) FROM sections").
					WithArgs("tr-1", "intro").
					WillReturnError(pgx.ErrNoRows)
			},
			wantCode: apperrors.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			got, err := NewRepository(mock).FindSectionByName(context.Background(), "tr-1", "intro")

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, got.ID)
				assert.Nil(t, got.EndBlockIndex)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSectionRepository_ListSections(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM sections WHERE transcript_id = \\$1 ORDER BY start_block_index").
		WithArgs("tr-1").
		WillReturnRows(pgxmock.NewRows(sectionRowColumns).
			AddRow("s-1", "tr-1", "Intro", 0, intPtr(4), now).
			AddRow("s-2", "tr-1", "Pricing", 5, nil, now))

	sections, err := NewRepository(mock).ListSections(context.Background(), "tr-1")

	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, 4, *sections[0].EndBlockIndex)
	assert.Nil(t, sections[1].EndBlockIndex)
	assert.NotNil(t, sections[1].Subsections)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionRepository_UpdateSection(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("UPDATE sections SET name = \\$2").
		WithArgs("s-1", "Intro", 0, intPtr(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = NewRepository(mock).UpdateSection(context.Background(), &model.Section{ID: "s-1", Name: "Intro", EndBlockIndex: intPtr(9)})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionRepository_DeleteSection(t *testing.T) {
	tests := []struct {
		name        string
		result      pgconn.CommandTag
		wantDeleted bool
	}{
		{name: "deleted", result: pgxmock.NewResult("DELETE", 1), wantDeleted: true},
		{name: "already gone", result: pgxmock.NewResult("DELETE", 0), wantDeleted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectExec("DELETE FROM sections WHERE id = \\$1").
				WithArgs("s-1").
				WillReturnResult(tt.result)

			deleted, err := NewRepository(mock).DeleteSection(context.Background(), "s-1")

			require.NoError(t, err)
			assert.Equal(t, tt.wantDeleted, deleted)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSectionRepository_Subsections(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO subsections").
			WithArgs("ss-1", "s-1", "Tiers", 2, (*int)(nil)).
			WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

		err = NewRepository(mock).CreateSubsection(context.Background(), &model.Subsection{
			ID: "ss-1", SectionID: "s-1", Name: "Tiers", StartBlockIndex: 2,
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get missing", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT (.+) FROM subsections WHERE id = \\$1").
			WithArgs("ss-404").
			WillReturnError(pgx.ErrNoRows)

		_, err = NewRepository(mock).GetSubsection(context.Background(), "ss-404")

		assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list by transcript", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT (.+) FROM subsections ss JOIN sections s").
			WithArgs("tr-1").
			WillReturnRows(pgxmock.NewRows(subsectionRowColumns).
				AddRow("ss-1", "s-1", "Tiers", 2, nil, time.Now()).
				AddRow("ss-2", "s-2", "Wrap", 8, intPtr(9), time.Now()))

		subsections, err := NewRepository(mock).ListSubsectionsByTranscript(context.Background(), "tr-1")

		require.NoError(t, err)
		require.Len(t, subsections, 2)
		assert.Equal(t, "s-2", subsections[1].SectionID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
