package taxonomy

import (
	"context"
	"errors"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository/common"
	"github.com/jackc/pgx/v5"
)

const masterColumns = "id, name, description, color, icon, is_closed, closed_at, created_at"

// CreateMasterTag inserts a master tag. master_tags_name_key rejects case-insensitive duplicates.
func (r *taxonomyRepository) CreateMasterTag(ctx context.Context, tag *model.MasterTag) error {
	sql := `INSERT INTO master_tags (id, name, description, color, icon, is_closed, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`
	err := r.db.QueryRow(ctx, sql,
		tag.ID,
		tag.Name,
		tag.Description,
		tag.Color,
		tag.Icon,
		tag.IsClosed,
		tag.ClosedAt,
	).Scan(&tag.CreatedAt)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create master tag")
	}
	return nil
}

// GetMasterTag retrieves a master tag by its ID
func (r *taxonomyRepository) GetMasterTag(ctx context.Context, id string) (*model.MasterTag, error) {
	sql := "SELECT " + masterColumns + " FROM master_tags WHERE id = $1"
	tag, err := scanMasterTag(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "master tag not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get master tag")
	}
	return tag, nil
}

// FindMasterTagByName looks a master tag up by exact, case-insensitive name
func (r *taxonomyRepository) FindMasterTagByName(ctx context.Context, name string) (*model.MasterTag, error) {
	sql := "SELECT " + masterColumns + " FROM master_tags WHERE lower(name) = lower($1)"
	tag, err := scanMasterTag(r.db.QueryRow(ctx, sql, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "master tag not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to find master tag")
	}
	return tag, nil
}

// ListMasterTags returns master tags ordered by name
func (r *taxonomyRepository) ListMasterTags(ctx context.Context, includeClosed bool) ([]*model.MasterTag, error) {
	sql := "SELECT " + masterColumns + " FROM master_tags WHERE ($1 OR NOT is_closed) ORDER BY lower(name), id"
	return r.queryMasterTags(ctx, sql, includeClosed)
}

// ListMasterTagsByIDs returns the master tags with the given IDs
func (r *taxonomyRepository) ListMasterTagsByIDs(ctx context.Context, ids []string) ([]*model.MasterTag, error) {
	if len(ids) == 0 {
		return []*model.MasterTag{}, nil
	}
	sql := "SELECT " + masterColumns + " FROM master_tags WHERE id = ANY($1) ORDER BY lower(name), id"
	return r.queryMasterTags(ctx, sql, ids)
}

func (r *taxonomyRepository) queryMasterTags(ctx context.Context, sql string, args ...any) ([]*model.MasterTag, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list master tags")
	}
	defer rows.Close()

	tags := []*model.MasterTag{}
	for rows.Next() {
		tag, err := scanMasterTag(rows)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan master tag")
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate master tags")
	}
	return tags, nil
}

// UpdateMasterTag overwrites the mutable master tag fields
func (r *taxonomyRepository) UpdateMasterTag(ctx context.Context, tag *model.MasterTag) error {
	sql := `UPDATE master_tags
		SET name = $2, description = $3, color = $4, icon = $5, is_closed = $6, closed_at = $7
		WHERE id = $1`
	result, err := r.db.Exec(ctx, sql,
		tag.ID,
		tag.Name,
		tag.Description,
		tag.Color,
		tag.Icon,
		tag.IsClosed,
		tag.ClosedAt,
	)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to update master tag")
	}
	if result.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "master tag not found")
	}
	return nil
}

// DeleteMasterTag removes the master tag; the schema cascades to its whole subtree and impressions
func (r *taxonomyRepository) DeleteMasterTag(ctx context.Context, id string) (bool, error) {
	result, err := r.db.Exec(ctx, "DELETE FROM master_tags WHERE id = $1", id)
	if err != nil {
		return false, common.HandlePostgreSQLError(err, "failed to delete master tag")
	}
	return result.RowsAffected() > 0, nil
}

func scanMasterTag(row pgx.Row) (*model.MasterTag, error) {
	var tag model.MasterTag
	err := row.Scan(
		&tag.ID,
		&tag.Name,
		&tag.Description,
		&tag.Color,
		&tag.Icon,
		&tag.IsClosed,
		&tag.ClosedAt,
		&tag.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}
