package impression

import (
	"context"
	"encoding/json"
	"errors"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository/common"
	"github.com/jackc/pgx/v5"
)

const impressionColumns = `id, transcript_id, master_tag_id, primary_tag_id, secondary_tag_ids, block_ids,
	selected_text, selection_ranges, section_id, subsection_id, comment, created_by, created_at`

// impressionRepository implements Repository using PostgreSQL
type impressionRepository struct {
	db common.DBTX
}

// NewRepository creates a new instance of Repository
func NewRepository(db common.DBTX) Repository {
	return &impressionRepository{
		db: db,
	}
}

// Create inserts an impression row
func (r *impressionRepository) Create(ctx context.Context, impression *model.TagImpression) error {
	ranges, err := encodeRanges(impression.SelectionRanges)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeValidation, "invalid selection ranges")
	}

	sql := `INSERT INTO tag_impressions
		(id, transcript_id, master_tag_id, primary_tag_id, secondary_tag_ids, block_ids,
		 selected_text, selection_ranges, section_id, subsection_id, comment, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`

	err = r.db.QueryRow(ctx, sql,
		impression.ID,
		impression.TranscriptID,
		impression.MasterTagID,
		impression.PrimaryTagID,
		nonNil(impression.SecondaryTagIDs),
		nonNil(impression.BlockIDs),
		impression.SelectedText,
		ranges,
		impression.SectionID,
		impression.SubsectionID,
		impression.Comment,
		impression.CreatedBy,
	).Scan(&impression.CreatedAt)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create tag impression")
	}
	return nil
}

// GetByID retrieves an impression by its ID
func (r *impressionRepository) GetByID(ctx context.Context, id string) (*model.TagImpression, error) {
	sql := "SELECT " + impressionColumns + " FROM tag_impressions WHERE id = $1"
	impression, err := scanImpression(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "tag impression not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get tag impression")
	}
	return impression, nil
}

// ListByTranscript returns a transcript's impressions in (created_at, id) order
func (r *impressionRepository) ListByTranscript(ctx context.Context, transcriptID string) ([]*model.TagImpression, error) {
	sql := "SELECT " + impressionColumns + " FROM tag_impressions WHERE transcript_id = $1 ORDER BY created_at, id"
	rows, err := r.db.Query(ctx, sql, transcriptID)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list tag impressions")
	}
	defer rows.Close()

	impressions := []*model.TagImpression{}
	for rows.Next() {
		impression, err := scanImpression(rows)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan tag impression")
		}
		impressions = append(impressions, impression)
	}
	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate tag impressions")
	}
	return impressions, nil
}

// Delete removes an impression and reports whether a row was removed
func (r *impressionRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.Exec(ctx, "DELETE FROM tag_impressions WHERE id = $1", id)
	if err != nil {
		return false, common.HandlePostgreSQLError(err, "failed to delete tag impression")
	}
	return result.RowsAffected() > 0, nil
}

// UpdateComment replaces the impression's comment
func (r *impressionRepository) UpdateComment(ctx context.Context, id string, comment *string) error {
	return r.execOne(ctx, "UPDATE tag_impressions SET comment = $2 WHERE id = $1", "failed to update impression comment", id, comment)
}

// AppendSecondaryTag appends a secondary tag id, keeping the existing order
func (r *impressionRepository) AppendSecondaryTag(ctx context.Context, id, secondaryTagID string) error {
	sql := "UPDATE tag_impressions SET secondary_tag_ids = array_append(secondary_tag_ids, $2) WHERE id = $1"
	return r.execOne(ctx, sql, "failed to append secondary tag", id, secondaryTagID)
}

// SetSection overwrites both section fields; nil clears them
func (r *impressionRepository) SetSection(ctx context.Context, id string, sectionID, subsectionID *string) error {
	sql := "UPDATE tag_impressions SET section_id = $2, subsection_id = $3 WHERE id = $1"
	return r.execOne(ctx, sql, "failed to move tag impression", id, sectionID, subsectionID)
}

// ReassignMaster moves every impression of a primary tag under a new master tag
func (r *impressionRepository) ReassignMaster(ctx context.Context, primaryTagID, masterTagID string) (int64, error) {
	sql := "UPDATE tag_impressions SET master_tag_id = $2 WHERE primary_tag_id = $1"
	result, err := r.db.Exec(ctx, sql, primaryTagID, masterTagID)
	if err != nil {
		return 0, common.HandlePostgreSQLError(err, "failed to reassign tag impressions")
	}
	return result.RowsAffected(), nil
}

func (r *impressionRepository) execOne(ctx context.Context, sql, operation string, args ...any) error {
	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return common.HandlePostgreSQLError(err, operation)
	}
	if result.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "tag impression not found")
	}
	return nil
}

func scanImpression(row pgx.Row) (*model.TagImpression, error) {
	var impression model.TagImpression
	var ranges []byte
	err := row.Scan(
		&impression.ID,
		&impression.TranscriptID,
		&impression.MasterTagID,
		&impression.PrimaryTagID,
		&impression.SecondaryTagIDs,
		&impression.BlockIDs,
		&impression.SelectedText,
		&ranges,
		&impression.SectionID,
		&impression.SubsectionID,
		&impression.Comment,
		&impression.CreatedBy,
		&impression.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	impression.SelectionRanges, err = decodeRanges(ranges)
	if err != nil {
		return nil, err
	}
	impression.SecondaryTagIDs = nonNil(impression.SecondaryTagIDs)
	impression.BlockIDs = nonNil(impression.BlockIDs)
	return &impression, nil
}

func encodeRanges(ranges []model.SelectionRange) ([]byte, error) {
	if ranges == nil {
		ranges = []model.SelectionRange{}
	}
	return json.Marshal(ranges)
}

func decodeRanges(data []byte) ([]model.SelectionRange, error) {
	ranges := []model.SelectionRange{}
	if len(data) == 0 {
		return ranges, nil
	}
	if err := json.Unmarshal(data, &ranges); err != nil {
		return nil, err
	}
	return ranges, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
