package taxonomy

import (
	"context"
	"errors"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository/common"
	"github.com/jackc/pgx/v5"
)

// CreatePrimaryTag always inserts a new instance; names are not unique
func (r *taxonomyRepository) CreatePrimaryTag(ctx context.Context, tag *model.PrimaryTag) error {
	sql := `INSERT INTO primary_tags (id, master_tag_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at`
	err := r.db.QueryRow(ctx, sql, tag.ID, tag.MasterTagID, tag.Name).Scan(&tag.CreatedAt)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create primary tag")
	}
	return nil
}

// GetPrimaryTag retrieves a primary tag by its ID
func (r *taxonomyRepository) GetPrimaryTag(ctx context.Context, id string) (*model.PrimaryTag, error) {
	sql := "SELECT id, master_tag_id, name, created_at FROM primary_tags WHERE id = $1"

	var tag model.PrimaryTag
	err := r.db.QueryRow(ctx, sql, id).Scan(&tag.ID, &tag.MasterTagID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "primary tag not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get primary tag")
	}
	return &tag, nil
}

// ListPrimaryTags returns every instance under the given masters with its impression count,
// in (created_at, id) order
func (r *taxonomyRepository) ListPrimaryTags(ctx context.Context, masterTagIDs []string) ([]*model.PrimaryTag, error) {
	if len(masterTagIDs) == 0 {
		return []*model.PrimaryTag{}, nil
	}

	sql := `SELECT p.id, p.master_tag_id, p.name, p.created_at, count(i.id)
		FROM primary_tags p
		LEFT JOIN tag_impressions i ON i.primary_tag_id = p.id
		WHERE p.master_tag_id = ANY($1)
		GROUP BY p.id, p.master_tag_id, p.name, p.created_at
		ORDER BY p.created_at, p.id`
	rows, err := r.db.Query(ctx, sql, masterTagIDs)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list primary tags")
	}
	defer rows.Close()

	tags := []*model.PrimaryTag{}
	for rows.Next() {
		var tag model.PrimaryTag
		if err := rows.Scan(&tag.ID, &tag.MasterTagID, &tag.Name, &tag.CreatedAt, &tag.ImpressionCount); err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan primary tag")
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate primary tags")
	}
	return tags, nil
}

// ListPrimaryTagsByIDs returns the primary tags with the given IDs
func (r *taxonomyRepository) ListPrimaryTagsByIDs(ctx context.Context, ids []string) ([]*model.PrimaryTag, error) {
	if len(ids) == 0 {
		return []*model.PrimaryTag{}, nil
	}

	sql := "SELECT id, master_tag_id, name, created_at FROM primary_tags WHERE id = ANY($1) ORDER BY created_at, id"
	rows, err := r.db.Query(ctx, sql, ids)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list primary tags")
	}
	defer rows.Close()

	tags := []*model.PrimaryTag{}
	for rows.Next() {
		var tag model.PrimaryTag
		if err := rows.Scan(&tag.ID, &tag.MasterTagID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan primary tag")
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate primary tags")
	}
	return tags, nil
}

// CountInstancesUpTo counts same-named instances under the tag's master that were created
// no later than the tag itself, which is the tag's 1-based instance index
func (r *taxonomyRepository) CountInstancesUpTo(ctx context.Context, tag *model.PrimaryTag) (int, error) {
	sql := `SELECT count(*) FROM primary_tags
		WHERE master_tag_id = $1 AND name = $2
		AND (created_at < $3 OR (created_at = $3 AND id <= $4))`

	var count int
	if err := r.db.QueryRow(ctx, sql, tag.MasterTagID, tag.Name, tag.CreatedAt, tag.ID).Scan(&count); err != nil {
		return 0, common.HandlePostgreSQLError(err, "failed to count primary tag instances")
	}
	return count, nil
}

// RenamePrimaryTag changes the name of one instance
func (r *taxonomyRepository) RenamePrimaryTag(ctx context.Context, id, name string) error {
	result, err := r.db.Exec(ctx, "UPDATE primary_tags SET name = $2 WHERE id = $1", id, name)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to rename primary tag")
	}
	if result.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "primary tag not found")
	}
	return nil
}

// MovePrimaryTag reparents the instance; impressions are updated separately in the same transaction
func (r *taxonomyRepository) MovePrimaryTag(ctx context.Context, id, masterTagID string) error {
	result, err := r.db.Exec(ctx, "UPDATE primary_tags SET master_tag_id = $2 WHERE id = $1", id, masterTagID)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to move primary tag")
	}
	if result.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "primary tag not found")
	}
	return nil
}
