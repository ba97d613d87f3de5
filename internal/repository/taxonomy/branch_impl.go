package taxonomy

import (
	"context"
	"errors"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository/common"
	"github.com/jackc/pgx/v5"
)

const branchColumns = "id, master_tag_id, name, description, created_at"

// CreateBranchTag inserts a branch tag under its master
func (r *taxonomyRepository) CreateBranchTag(ctx context.Context, tag *model.BranchTag) error {
	sql := `INSERT INTO branch_tags (id, master_tag_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	err := r.db.QueryRow(ctx, sql, tag.ID, tag.MasterTagID, tag.Name, tag.Description).Scan(&tag.CreatedAt)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create branch tag")
	}
	return nil
}

// GetBranchTag retrieves a branch tag by its ID
func (r *taxonomyRepository) GetBranchTag(ctx context.Context, id string) (*model.BranchTag, error) {
	sql := "SELECT " + branchColumns + " FROM branch_tags WHERE id = $1"
	tag, err := scanBranchTag(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "branch tag not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get branch tag")
	}
	return tag, nil
}

// FindBranchTagByName matches the exact (case-sensitive) name under a master
func (r *taxonomyRepository) FindBranchTagByName(ctx context.Context, masterTagID, name string) (*model.BranchTag, error) {
	sql := "SELECT " + branchColumns + " FROM branch_tags WHERE master_tag_id = $1 AND name = $2"
	tag, err := scanBranchTag(r.db.QueryRow(ctx, sql, masterTagID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "branch tag not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to find branch tag")
	}
	return tag, nil
}

// ListBranchTags returns the branch tags of the given masters in creation order
func (r *taxonomyRepository) ListBranchTags(ctx context.Context, masterTagIDs []string) ([]*model.BranchTag, error) {
	if len(masterTagIDs) == 0 {
		return []*model.BranchTag{}, nil
	}

	sql := "SELECT " + branchColumns + " FROM branch_tags WHERE master_tag_id = ANY($1) ORDER BY created_at, id"
	rows, err := r.db.Query(ctx, sql, masterTagIDs)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list branch tags")
	}
	defer rows.Close()

	tags := []*model.BranchTag{}
	for rows.Next() {
		tag, err := scanBranchTag(rows)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan branch tag")
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate branch tags")
	}
	return tags, nil
}

// UpdateBranchTag overwrites the branch tag's name and description
func (r *taxonomyRepository) UpdateBranchTag(ctx context.Context, tag *model.BranchTag) error {
	sql := "UPDATE branch_tags SET name = $2, description = $3 WHERE id = $1"
	result, err := r.db.Exec(ctx, sql, tag.ID, tag.Name, tag.Description)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to update branch tag")
	}
	if result.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "branch tag not found")
	}
	return nil
}

// DeleteBranchTag removes a branch tag
func (r *taxonomyRepository) DeleteBranchTag(ctx context.Context, id string) (bool, error) {
	result, err := r.db.Exec(ctx, "DELETE FROM branch_tags WHERE id = $1", id)
	if err != nil {
		return false, common.HandlePostgreSQLError(err, "failed to delete branch tag")
	}
	return result.RowsAffected() > 0, nil
}

func scanBranchTag(row pgx.Row) (*model.BranchTag, error) {
	var tag model.BranchTag
	if err := row.Scan(&tag.ID, &tag.MasterTagID, &tag.Name, &tag.Description, &tag.CreatedAt); err != nil {
		return nil, err
	}
	return &tag, nil
}
