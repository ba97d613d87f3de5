package transcript

import (
	"context"
	"testing"

	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func TestBlockRepository_CreateBatch(t *testing.T) {
	tests := []struct {
		name    string
		blocks  []*model.TranscriptBlock
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr bool
	}{
		{
			name: "successful batch creation",
			blocks: []*model.TranscriptBlock{
				{ID: "b-0", TranscriptID: "tr-1", OrderIndex: 0, SpeakerLabel: "A", StartTime: 0, EndTime: 2.5, Text: "Hello there."},
				{ID: "b-1", TranscriptID: "tr-1", OrderIndex: 1, SpeakerLabel: "B", StartTime: 2.5, EndTime: 6, Text: "Hi."},
			},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectCopyFrom(pgx.Identifier{"transcript_blocks"}, blockColumns).
					WillReturnResult(2)
			},
		},
		{
			name:   "empty blocks",
			blocks: []*model.TranscriptBlock{},
			setup:  func(mock pgxmock.PgxPoolIface) {},
		},
		{
			name: "database error",
			blocks: []*model.TranscriptBlock{
				{ID: "b-0", TranscriptID: "tr-1", OrderIndex: 0, Text: "Hello there."},
			},
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectCopyFrom(pgx.Identifier{"transcript_blocks"}, blockColumns).
					WillReturnError(assert.AnError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setup(mock)

			err = NewBlockRepository(mock).CreateBatch(context.Background(), tt.blocks)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBlockRepository_GetByTranscriptID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows(blockColumns).
		AddRow("b-0", "tr-1", 0, "A", 0.0, 2.5, "Hello there.").
		AddRow("b-1", "tr-1", 1, "B", 2.5, 6.0, "Hi.")
	mock.ExpectQuery("SELECT (.+) FROM transcript_blocks WHERE transcript_id = \\$1 ORDER BY order_index").
		WithArgs("tr-1").
		WillReturnRows(rows)

	blocks, err := NewBlockRepository(mock).GetByTranscriptID(context.Background(), "tr-1")

	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, 0, blocks[0].OrderIndex)
	assert.Equal(t, "Hi.", blocks[1].Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockRepository_Count(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM transcript_blocks").
		WithArgs("tr-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(42))

	count, err := NewBlockRepository(mock).Count(context.Background(), "tr-1")

	require.NoError(t, err)
	assert.Equal(t, 42, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
