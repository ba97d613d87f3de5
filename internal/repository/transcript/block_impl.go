package transcript

import (
	"context"

	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository/common"
	"github.com/jackc/pgx/v5"
)

var blockColumns = []string{"id", "transcript_id", "order_index", "speaker_label", "start_time", "end_time", "text"}

// blockRepository implements BlockRepository using PostgreSQL
type blockRepository struct {
	db common.DBTX
}

// NewBlockRepository creates a new instance of BlockRepository
func NewBlockRepository(db common.DBTX) BlockRepository {
	return &blockRepository{
		db: db,
	}
}

// CreateBatch inserts blocks using COPY FROM
func (r *blockRepository) CreateBatch(ctx context.Context, blocks []*model.TranscriptBlock) error {
	if len(blocks) == 0 {
		return nil
	}

	rows := make([][]any, len(blocks))
	for i, block := range blocks {
		rows[i] = []any{
			block.ID,
			block.TranscriptID,
			block.OrderIndex,
			block.SpeakerLabel,
			block.StartTime,
			block.EndTime,
			block.Text,
		}
	}

	_, err := r.db.CopyFrom(ctx, pgx.Identifier{"transcript_blocks"}, blockColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create transcript blocks")
	}

	return nil
}

// GetByTranscriptID retrieves all blocks of a transcript ordered by order_index
func (r *blockRepository) GetByTranscriptID(ctx context.Context, transcriptID string) ([]*model.TranscriptBlock, error) {
	sql := `SELECT id, transcript_id, order_index, speaker_label, start_time, end_time, text
		FROM transcript_blocks
		WHERE transcript_id = $1
		ORDER BY order_index`

	rows, err := r.db.Query(ctx, sql, transcriptID)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to get transcript blocks")
	}
	defer rows.Close()

	blocks := []*model.TranscriptBlock{}
	for rows.Next() {
		var block model.TranscriptBlock
		err := rows.Scan(
			&block.ID,
			&block.TranscriptID,
			&block.OrderIndex,
			&block.SpeakerLabel,
			&block.StartTime,
			&block.EndTime,
			&block.Text,
		)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan transcript block")
		}
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate transcript blocks")
	}

	return blocks, nil
}

// Count returns the number of blocks in a transcript
func (r *blockRepository) Count(ctx context.Context, transcriptID string) (int, error) {
	sql := "SELECT count(*) FROM transcript_blocks WHERE transcript_id = $1"

	var count int
	if err := r.db.QueryRow(ctx, sql, transcriptID).Scan(&count); err != nil {
		return 0, common.HandlePostgreSQLError(err, "failed to count transcript blocks")
	}
	return count, nil
}
