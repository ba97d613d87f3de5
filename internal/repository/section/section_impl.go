package section

import (
	"context"
	"errors"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository/common"
	"github.com/jackc/pgx/v5"
)

const (
	sectionColumns    = "id, transcript_id, name, start_block_index, end_block_index, created_at"
	subsectionColumns = "id, section_id, name, start_block_index, end_block_index, created_at"
)

// sectionRepository implements Repository using PostgreSQL
type sectionRepository struct {
	db common.DBTX
}

// NewRepository creates a new instance of Repository
func NewRepository(db common.DBTX) Repository {
	return &sectionRepository{
		db: db,
	}
}

// CreateSection inserts a section; name uniqueness is enforced by sections_transcript_name_key
func (r *sectionRepository) CreateSection(ctx context.Context, section *model.Section) error {
	sql := `INSERT INTO sections (id, transcript_id, name, start_block_index, end_block_index)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`
	err := r.db.QueryRow(ctx, sql,
		section.ID,
		section.TranscriptID,
		section.Name,
		section.StartBlockIndex,
		section.EndBlockIndex,
	).Scan(&section.CreatedAt)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create section")
	}
	return nil
}

// GetSection retrieves a section by its ID
func (r *sectionRepository) GetSection(ctx context.Context, id string) (*model.Section, error) {
	sql := "SELECT " + sectionColumns + " FROM sections WHERE id = $1"
	section, err := scanSection(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "section not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get section")
	}
	return section, nil
}

// FindSectionByName looks a section up by case-insensitive name within a transcript
func (r *sectionRepository) FindSectionByName(ctx context.Context, transcriptID, name string) (*model.Section, error) {
	sql := "SELECT " + sectionColumns + " FROM sections WHERE transcript_id = $1 AND lower(name) = lower($2)"
	section, err := scanSection(r.db.QueryRow(ctx, sql, transcriptID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "section not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to find section")
	}
	return section, nil
}

// ListSections returns a transcript's sections in reading order
func (r *sectionRepository) ListSections(ctx context.Context, transcriptID string) ([]*model.Section, error) {
	sql := "SELECT " + sectionColumns + " FROM sections WHERE transcript_id = $1 ORDER BY start_block_index, created_at, id"
	rows, err := r.db.Query(ctx, sql, transcriptID)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list sections")
	}
	defer rows.Close()

	sections := []*model.Section{}
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan section")
		}
		sections = append(sections, section)
	}
	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate sections")
	}
	return sections, nil
}

// UpdateSection overwrites the section's name and block range
func (r *sectionRepository) UpdateSection(ctx context.Context, section *model.Section) error {
	sql := "UPDATE sections SET name = $2, start_block_index = $3, end_block_index = $4 WHERE id = $1"
	tag, err := r.db.Exec(ctx, sql, section.ID, section.Name, section.StartBlockIndex, section.EndBlockIndex)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to update section")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "section not found")
	}
	return nil
}

// DeleteSection removes a section and its subsections; impressions keep their rows
func (r *sectionRepository) DeleteSection(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM sections WHERE id = $1", id)
	if err != nil {
		return false, common.HandlePostgreSQLError(err, "failed to delete section")
	}
	return tag.RowsAffected() > 0, nil
}

// CreateSubsection inserts a subsection
func (r *sectionRepository) CreateSubsection(ctx context.Context, subsection *model.Subsection) error {
	sql := `INSERT INTO subsections (id, section_id, name, start_block_index, end_block_index)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`
	err := r.db.QueryRow(ctx, sql,
		subsection.ID,
		subsection.SectionID,
		subsection.Name,
		subsection.StartBlockIndex,
		subsection.EndBlockIndex,
	).Scan(&subsection.CreatedAt)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create subsection")
	}
	return nil
}

// GetSubsection retrieves a subsection by its ID
func (r *sectionRepository) GetSubsection(ctx context.Context, id string) (*model.Subsection, error) {
	sql := "SELECT " + subsectionColumns + " FROM subsections WHERE id = $1"
	subsection, err := scanSubsection(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "subsection not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get subsection")
	}
	return subsection, nil
}

// FindSubsectionByName looks a subsection up by case-insensitive name within a section
func (r *sectionRepository) FindSubsectionByName(ctx context.Context, sectionID, name string) (*model.Subsection, error) {
	sql := "SELECT " + subsectionColumns + " FROM subsections WHERE section_id = $1 AND lower(name) = lower($2)"
	subsection, err := scanSubsection(r.db.QueryRow(ctx, sql, sectionID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "subsection not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to find subsection")
	}
	return subsection, nil
}

// ListSubsections returns a section's subsections in reading order
func (r *sectionRepository) ListSubsections(ctx context.Context, sectionID string) ([]*model.Subsection, error) {
	sql := "SELECT " + subsectionColumns + " FROM subsections WHERE section_id = $1 ORDER BY start_block_index, created_at, id"
	return r.listSubsections(ctx, sql, sectionID)
}

// ListSubsectionsByTranscript returns every subsection under any section of the transcript
func (r *sectionRepository) ListSubsectionsByTranscript(ctx context.Context, transcriptID string) ([]*model.Subsection, error) {
	sql := `SELECT ss.id, ss.section_id, ss.name, ss.start_block_index, ss.end_block_index, ss.created_at
		FROM subsections ss
		JOIN sections s ON s.id = ss.section_id
		WHERE s.transcript_id = $1
		ORDER BY ss.start_block_index, ss.created_at, ss.id`
	return r.listSubsections(ctx, sql, transcriptID)
}

func (r *sectionRepository) listSubsections(ctx context.Context, sql string, arg string) ([]*model.Subsection, error) {
	rows, err := r.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list subsections")
	}
	defer rows.Close()

	subsections := []*model.Subsection{}
	for rows.Next() {
		subsection, err := scanSubsection(rows)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan subsection")
		}
		subsections = append(subsections, subsection)
	}
	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate subsections")
	}
	return subsections, nil
}

// UpdateSubsection overwrites the subsection's name and block range
func (r *sectionRepository) UpdateSubsection(ctx context.Context, subsection *model.Subsection) error {
	sql := "UPDATE subsections SET name = $2, start_block_index = $3, end_block_index = $4 WHERE id = $1"
	tag, err := r.db.Exec(ctx, sql, subsection.ID, subsection.Name, subsection.StartBlockIndex, subsection.EndBlockIndex)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to update subsection")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "subsection not found")
	}
	return nil
}

// DeleteSubsection removes a subsection
func (r *sectionRepository) DeleteSubsection(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM subsections WHERE id = $1", id)
	if err != nil {
		return false, common.HandlePostgreSQLError(err, "failed to delete subsection")
	}
	return tag.RowsAffected() > 0, nil
}

func scanSection(row pgx.Row) (*model.Section, error) {
	var section model.Section
	err := row.Scan(
		&section.ID,
		&section.TranscriptID,
		&section.Name,
		&section.StartBlockIndex,
		&section.EndBlockIndex,
		&section.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	section.Subsections = []*model.Subsection{}
	return &section, nil
}

func scanSubsection(row pgx.Row) (*model.Subsection, error) {
	var subsection model.Subsection
	err := row.Scan(
		&subsection.ID,
		&subsection.SectionID,
		&subsection.Name,
		&subsection.StartBlockIndex,
		&subsection.EndBlockIndex,
		&subsection.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &subsection, nil
}
