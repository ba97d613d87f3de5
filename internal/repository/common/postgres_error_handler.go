package common

import (
	"errors"
	"strings"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/jackc/pgx/v5/pgconn"
)

// HandlePostgreSQLError converts PostgreSQL-specific errors to appropriate AppError codes
func HandlePostgreSQLError(err error, operation string) *apperrors.AppError {
	if err == nil {
		return nil
	}

	// Already classified further down the stack
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apperrors.Wrap(err, apperrors.CodeInternal, operation)
	}

	switch pgErr.Code {
	case "23505": // UNIQUE_VIOLATION
		return handleUniqueViolation(pgErr)

	case "23503": // FOREIGN_KEY_VIOLATION
		return handleForeignKeyViolation(pgErr)

	case "23502": // NOT_NULL_VIOLATION
		return apperrors.Wrap(err, apperrors.CodeValidation, "required field is missing")

	case "23514": // CHECK_VIOLATION
		return apperrors.Wrap(err, apperrors.CodeValidation, "data violates check constraint")

	case "22P02": // INVALID_TEXT_REPRESENTATION
		return apperrors.Wrap(err, apperrors.CodeValidation, "malformed value")

	case "40001", "40P01": // SERIALIZATION_FAILURE, DEADLOCK_DETECTED
		return apperrors.Wrap(err, apperrors.CodeConflict, "concurrent update, retry the request")

	case "42P01":
		return apperrors.Wrap(err, apperrors.CodeInternal, "database schema error: table not found")

	case "42703":
		return apperrors.Wrap(err, apperrors.CodeInternal, "database schema error: column not found")

	case "08000", "08003", "08006":
		return apperrors.Wrap(err, apperrors.CodeInternal, "database connection error")

	case "53300":
		return apperrors.Wrap(err, apperrors.CodeInternal, "database connection limit reached")

	default:
		message := operation + " (PostgreSQL code: " + pgErr.Code + ")"
		return apperrors.Wrap(err, apperrors.CodeInternal, message)
	}
}

var uniqueMessages = map[string]string{
	"master_tags_name_key":               "master tag with this name already exists",
	"branch_tags_master_tag_id_name_key": "branch tag with this name already exists under the master tag",
	"sections_transcript_name_key":       "section with this name already exists in the transcript",
	"subsections_section_name_key":       "subsection with this name already exists in the section",
	"transcripts_video_id_version_key":   "transcript version already exists for this video",
	"transcript_blocks_order_key":        "duplicate block order index",
	"videos_pkey":                        "video with this ID already exists",
}

// validationUniques are name collisions reported as invalid input rather than conflicts
var validationUniques = map[string]bool{
	"branch_tags_master_tag_id_name_key": true,
}

// handleUniqueViolation provides specific error messages for different unique constraints
func handleUniqueViolation(pgErr *pgconn.PgError) *apperrors.AppError {
	if message, ok := uniqueMessages[pgErr.ConstraintName]; ok {
		if validationUniques[pgErr.ConstraintName] {
			return apperrors.Wrap(pgErr, apperrors.CodeValidation, message)
		}
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, message)
	}
	if strings.HasSuffix(pgErr.ConstraintName, "pkey") {
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "resource with this ID already exists")
	}
	return apperrors.Wrap(pgErr, apperrors.CodeConflict, "resource already exists")
}

// handleForeignKeyViolation provides specific error messages for foreign key constraints
func handleForeignKeyViolation(pgErr *pgconn.PgError) *apperrors.AppError {
	constraintName := pgErr.ConstraintName

	switch {
	case strings.Contains(constraintName, "video_id"):
		return apperrors.Wrap(pgErr, apperrors.CodeDependency, "referenced video does not exist")
	case strings.Contains(constraintName, "transcript_id"):
		return apperrors.Wrap(pgErr, apperrors.CodeDependency, "referenced transcript does not exist")
	case strings.Contains(constraintName, "master_tag_id"):
		return apperrors.Wrap(pgErr, apperrors.CodeDependency, "referenced master tag does not exist")
	case strings.Contains(constraintName, "primary_tag_id"):
		return apperrors.Wrap(pgErr, apperrors.CodeDependency, "referenced primary tag does not exist")
	case strings.Contains(constraintName, "subsection_id"):
		return apperrors.Wrap(pgErr, apperrors.CodeDependency, "referenced subsection does not exist")
	case strings.Contains(constraintName, "section_id"):
		return apperrors.Wrap(pgErr, apperrors.CodeDependency, "referenced section does not exist")
	default:
		return apperrors.Wrap(pgErr, apperrors.CodeDependency, "referenced resource does not exist")
	}
}
