package transcript

import (
	"context"
	"errors"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository/common"
	"github.com/jackc/pgx/v5"
)

const transcriptColumns = "id, video_id, version, language, type, name, created_at"

// transcriptRepository implements Repository using PostgreSQL
type transcriptRepository struct {
	db common.DBTX
}

// NewRepository creates a new instance of Repository
func NewRepository(db common.DBTX) Repository {
	return &transcriptRepository{
		db: db,
	}
}

// Create inserts a transcript row; the caller assigns ID and Version
func (r *transcriptRepository) Create(ctx context.Context, transcript *model.Transcript) error {
	sql := `INSERT INTO transcripts (id, video_id, version, language, type, name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, sql,
		transcript.ID,
		transcript.VideoID,
		transcript.Version,
		transcript.Language,
		string(transcript.Type),
		transcript.Name,
	).Scan(&transcript.CreatedAt)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create transcript")
	}
	return nil
}

// NextVersion returns max(version)+1 for the video, or 1 when it has none.
// Callers must hold the video row lock for the result to be safe to use.
func (r *transcriptRepository) NextVersion(ctx context.Context, videoID string) (int, error) {
	sql := "SELECT COALESCE(MAX(version), 0) + 1 FROM transcripts WHERE video_id = $1"

	var next int
	if err := r.db.QueryRow(ctx, sql, videoID).Scan(&next); err != nil {
		return 0, common.HandlePostgreSQLError(err, "failed to compute next transcript version")
	}
	return next, nil
}

// GetByID retrieves a transcript by its ID
func (r *transcriptRepository) GetByID(ctx context.Context, id string) (*model.Transcript, error) {
	sql := "SELECT " + transcriptColumns + " FROM transcripts WHERE id = $1"
	return r.getOne(ctx, sql, id)
}

// GetByVersion retrieves a specific version of a video's transcript
func (r *transcriptRepository) GetByVersion(ctx context.Context, videoID string, version int) (*model.Transcript, error) {
	sql := "SELECT " + transcriptColumns + " FROM transcripts WHERE video_id = $1 AND version = $2"
	return r.getOne(ctx, sql, videoID, version)
}

// GetLatest retrieves the highest version of a video's transcript
func (r *transcriptRepository) GetLatest(ctx context.Context, videoID string) (*model.Transcript, error) {
	sql := "SELECT " + transcriptColumns + " FROM transcripts WHERE video_id = $1 ORDER BY version DESC LIMIT 1"
	return r.getOne(ctx, sql, videoID)
}

func (r *transcriptRepository) getOne(ctx context.Context, sql string, args ...any) (*model.Transcript, error) {
	transcript, err := scanTranscript(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "transcript not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get transcript")
	}
	return transcript, nil
}

// ListByVideo returns every version of a video's transcript, oldest first
func (r *transcriptRepository) ListByVideo(ctx context.Context, videoID string) ([]*model.Transcript, error) {
	sql := "SELECT " + transcriptColumns + " FROM transcripts WHERE video_id = $1 ORDER BY version"
	rows, err := r.db.Query(ctx, sql, videoID)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list transcripts")
	}
	defer rows.Close()

	transcripts := []*model.Transcript{}
	for rows.Next() {
		transcript, err := scanTranscript(rows)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan transcript")
		}
		transcripts = append(transcripts, transcript)
	}

	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate transcripts")
	}

	return transcripts, nil
}

// UpdateName patches the transcript's display name without creating a version
func (r *transcriptRepository) UpdateName(ctx context.Context, id string, name *string) error {
	sql := "UPDATE transcripts SET name = $2 WHERE id = $1"
	tag, err := r.db.Exec(ctx, sql, id, name)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to rename transcript")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "transcript not found")
	}
	return nil
}

func scanTranscript(row pgx.Row) (*model.Transcript, error) {
	var transcript model.Transcript
	var transcriptType string
	err := row.Scan(
		&transcript.ID,
		&transcript.VideoID,
		&transcript.Version,
		&transcript.Language,
		&transcriptType,
		&transcript.Name,
		&transcript.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	transcript.Type = model.TranscriptType(transcriptType)
	return &transcript, nil
}
