package taxonomy

import (
	"context"
	"errors"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository/common"
	"github.com/jackc/pgx/v5"
)

const secondaryColumns = "id, primary_tag_id, name, created_at"

// CreateSecondaryTag inserts a secondary tag under its primary
func (r *taxonomyRepository) CreateSecondaryTag(ctx context.Context, tag *model.SecondaryTag) error {
	sql := `INSERT INTO secondary_tags (id, primary_tag_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at`
	err := r.db.QueryRow(ctx, sql, tag.ID, tag.PrimaryTagID, tag.Name).Scan(&tag.CreatedAt)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create secondary tag")
	}
	return nil
}

// GetSecondaryTag retrieves a secondary tag by its ID
func (r *taxonomyRepository) GetSecondaryTag(ctx context.Context, id string) (*model.SecondaryTag, error) {
	sql := "SELECT " + secondaryColumns + " FROM secondary_tags WHERE id = $1"

	var tag model.SecondaryTag
	err := r.db.QueryRow(ctx, sql, id).Scan(&tag.ID, &tag.PrimaryTagID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "secondary tag not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get secondary tag")
	}
	return &tag, nil
}

// ListSecondaryTags returns the secondary tags under the given primaries
func (r *taxonomyRepository) ListSecondaryTags(ctx context.Context, primaryTagIDs []string) ([]*model.SecondaryTag, error) {
	if len(primaryTagIDs) == 0 {
		return []*model.SecondaryTag{}, nil
	}
	sql := "SELECT " + secondaryColumns + " FROM secondary_tags WHERE primary_tag_id = ANY($1) ORDER BY created_at, id"
	return r.querySecondaryTags(ctx, sql, primaryTagIDs)
}

// ListSecondaryTagsByIDs returns the secondary tags with the given IDs
func (r *taxonomyRepository) ListSecondaryTagsByIDs(ctx context.Context, ids []string) ([]*model.SecondaryTag, error) {
	if len(ids) == 0 {
		return []*model.SecondaryTag{}, nil
	}
	sql := "SELECT " + secondaryColumns + " FROM secondary_tags WHERE id = ANY($1) ORDER BY created_at, id"
	return r.querySecondaryTags(ctx, sql, ids)
}

func (r *taxonomyRepository) querySecondaryTags(ctx context.Context, sql string, ids []string) ([]*model.SecondaryTag, error) {
	rows, err := r.db.Query(ctx, sql, ids)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list secondary tags")
	}
	defer rows.Close()

	tags := []*model.SecondaryTag{}
	for rows.Next() {
		var tag model.SecondaryTag
		if err := rows.Scan(&tag.ID, &tag.PrimaryTagID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan secondary tag")
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate secondary tags")
	}
	return tags, nil
}

// RenameSecondaryTag changes a secondary tag's name
func (r *taxonomyRepository) RenameSecondaryTag(ctx context.Context, id, name string) error {
	result, err := r.db.Exec(ctx, "UPDATE secondary_tags SET name = $2 WHERE id = $1", id, name)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to rename secondary tag")
	}
	if result.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "secondary tag not found")
	}
	return nil
}

// DeleteSecondaryTag removes a secondary tag and strips it from impressions that reference it
func (r *taxonomyRepository) DeleteSecondaryTag(ctx context.Context, id string) (bool, error) {
	sql := `WITH deleted AS (
			DELETE FROM secondary_tags WHERE id = $1 RETURNING id
		), stripped AS (
			UPDATE tag_impressions SET secondary_tag_ids = array_remove(secondary_tag_ids, $1)
			WHERE $1 = ANY(secondary_tag_ids) AND EXISTS (SELECT 1 FROM deleted)
		)
		SELECT count(*) FROM deleted`

	var deleted int
	if err := r.db.QueryRow(ctx, sql, id).Scan(&deleted); err != nil {
		return false, common.HandlePostgreSQLError(err, "failed to delete secondary tag")
	}
	return deleted > 0, nil
}
