package transcript

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository"
	"github.com/Taichi-iskw/tagscribe/internal/telemetry"
)

// SaveTranscript stores a new version of the video's transcript.
// The video row lock serializes concurrent saves so versions stay gap-free and unique.
func (s *service) SaveTranscript(ctx context.Context, in SaveInput) (transcript *model.Transcript, err error) {
	ctx, span := telemetry.Start(ctx, "transcript", "SaveTranscript", attribute.String("video_id", in.VideoID))
	defer func() { telemetry.End(span, err) }()

	if strings.TrimSpace(in.VideoID) == "" {
		return nil, apperrors.Validation("video id is required")
	}
	language := strings.TrimSpace(in.Language)
	if language == "" {
		return nil, apperrors.Validation("language is required")
	}
	kind := in.Type
	if kind == "" {
		kind = model.TranscriptTypeAuto
	}
	if !kind.Valid() {
		return nil, apperrors.Newf(apperrors.CodeValidation, "unknown transcript type %q", kind)
	}

	// Normalization is pure and runs before any lock is taken
	inputs, err := NormalizeBlocks(in.Source)
	if err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(stores repository.Stores) error {
		if err := stores.Videos.LockForUpdate(ctx, in.VideoID); err != nil {
			return err
		}

		version, err := stores.Transcripts.NextVersion(ctx, in.VideoID)
		if err != nil {
			return err
		}

		t := &model.Transcript{
			ID:       uuid.NewString(),
			VideoID:  in.VideoID,
			Version:  version,
			Language: language,
			Type:     kind,
			Name:     trimmedPtr(in.Name),
		}
		if err := stores.Transcripts.Create(ctx, t); err != nil {
			return err
		}

		blocks := make([]*model.TranscriptBlock, len(inputs))
		for i, b := range inputs {
			blocks[i] = &model.TranscriptBlock{
				ID:           uuid.NewString(),
				TranscriptID: t.ID,
				OrderIndex:   i,
				SpeakerLabel: b.SpeakerLabel,
				StartTime:    b.StartTime,
				EndTime:      b.EndTime,
				Text:         b.Text,
			}
		}
		if err := stores.Blocks.CreateBatch(ctx, blocks); err != nil {
			return err
		}

		t.Blocks = blocks
		transcript = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("version", transcript.Version), attribute.Int("blocks", len(transcript.Blocks)))
	s.log.Info("transcript saved",
		"video_id", transcript.VideoID,
		"transcript_id", transcript.ID,
		"version", transcript.Version,
		"blocks", len(transcript.Blocks),
	)
	return transcript, nil
}

// LoadTranscript returns the requested version, or the latest when version is nil,
// with ordered blocks and nested sections
func (s *service) LoadTranscript(ctx context.Context, videoID string, version *int) (*model.Transcript, error) {
	var (
		t   *model.Transcript
		err error
	)
	if version != nil {
		if *version < 1 {
			return nil, apperrors.Validation("version must be at least 1")
		}
		t, err = s.stores.Transcripts.GetByVersion(ctx, videoID, *version)
	} else {
		t, err = s.stores.Transcripts.GetLatest(ctx, videoID)
	}
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, t)
}

// GetTranscript loads one transcript version by id
func (s *service) GetTranscript(ctx context.Context, id string) (*model.Transcript, error) {
	t, err := s.stores.Transcripts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, t)
}

// ListVersions returns every transcript version of a video without blocks
func (s *service) ListVersions(ctx context.Context, videoID string) ([]*model.Transcript, error) {
	if _, err := s.stores.Videos.GetByID(ctx, videoID); err != nil {
		return nil, err
	}
	return s.stores.Transcripts.ListByVideo(ctx, videoID)
}

// RenameTranscript patches the display name; it does not create a new version
func (s *service) RenameTranscript(ctx context.Context, id string, name *string) (*model.Transcript, error) {
	name = trimmedPtr(name)
	if err := s.stores.Transcripts.UpdateName(ctx, id, name); err != nil {
		return nil, err
	}
	return s.stores.Transcripts.GetByID(ctx, id)
}

func (s *service) hydrate(ctx context.Context, t *model.Transcript) (*model.Transcript, error) {
	blocks, err := s.stores.Blocks.GetByTranscriptID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	sections, err := LoadSections(ctx, s.stores, t.ID)
	if err != nil {
		return nil, err
	}
	t.Blocks = blocks
	t.Sections = sections
	return t, nil
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
