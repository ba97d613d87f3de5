package video

import (
	"context"
	"errors"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository/common"
	"github.com/jackc/pgx/v5"
)

// videoRepository implements Repository using PostgreSQL
type videoRepository struct {
	db common.DBTX
}

// NewRepository creates a new instance of Repository
func NewRepository(db common.DBTX) Repository {
	return &videoRepository{
		db: db,
	}
}

// Create creates a new video record
func (r *videoRepository) Create(ctx context.Context, video *model.Video) error {
	sql := `INSERT INTO videos (id, title, media_url, duration)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	err := r.db.QueryRow(ctx, sql, video.ID, video.Title, video.MediaURL, video.Duration).Scan(&video.CreatedAt)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create video")
	}
	return nil
}

// GetByID retrieves a video by its ID
func (r *videoRepository) GetByID(ctx context.Context, id string) (*model.Video, error) {
	sql := "SELECT id, title, media_url, duration, created_at FROM videos WHERE id = $1"
	row := r.db.QueryRow(ctx, sql, id)

	var video model.Video
	err := row.Scan(&video.ID, &video.Title, &video.MediaURL, &video.Duration, &video.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "video not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get video")
	}

	return &video, nil
}

// List retrieves videos with pagination, newest first
func (r *videoRepository) List(ctx context.Context, limit, offset int) ([]*model.Video, error) {
	sql := "SELECT id, title, media_url, duration, created_at FROM videos ORDER BY created_at DESC, id LIMIT $1 OFFSET $2"
	rows, err := r.db.Query(ctx, sql, limit, offset)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list videos")
	}
	defer rows.Close()

	videos := []*model.Video{}
	for rows.Next() {
		var video model.Video
		if err := rows.Scan(&video.ID, &video.Title, &video.MediaURL, &video.Duration, &video.CreatedAt); err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan video row")
		}
		videos = append(videos, &video)
	}

	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate video rows")
	}

	return videos, nil
}

// Update updates an existing video record
func (r *videoRepository) Update(ctx context.Context, video *model.Video) error {
	sql := "UPDATE videos SET title = $2, media_url = $3, duration = $4 WHERE id = $1"
	tag, err := r.db.Exec(ctx, sql, video.ID, video.Title, video.MediaURL, video.Duration)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to update video")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "video not found")
	}
	return nil
}

// Delete deletes a video and, through cascades, its transcripts
func (r *videoRepository) Delete(ctx context.Context, id string) error {
	sql := "DELETE FROM videos WHERE id = $1"
	_, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to delete video")
	}
	return nil
}

// LockForUpdate serializes writers that version the video's transcripts
func (r *videoRepository) LockForUpdate(ctx context.Context, id string) error {
	sql := "SELECT id FROM videos WHERE id = $1 FOR UPDATE"

	var lockedID string
	if err := r.db.QueryRow(ctx, sql, id).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.Wrap(err, apperrors.CodeNotFound, "video not found")
		}
		return common.HandlePostgreSQLError(err, "failed to lock video")
	}
	return nil
}
