package transcript

import (
	"context"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
)

const (
	defaultVideoLimit = 20
	maxVideoLimit     = 100
)

// RegisterVideo stores a video row. The media URL is kept as an opaque reference.
func (s *service) RegisterVideo(ctx context.Context, in VideoInput) (*model.Video, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.Validation("video title is required")
	}
	if in.Duration < 0 {
		return nil, apperrors.Validation("video duration must not be negative")
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}

	video := &model.Video{
		ID:       id,
		Title:    title,
		MediaURL: strings.TrimSpace(in.MediaURL),
		Duration: in.Duration,
	}
	if err := s.stores.Videos.Create(ctx, video); err != nil {
		return nil, err
	}

	s.log.Info("video registered", "id", video.ID)
	return video, nil
}

// GetVideo returns one video
func (s *service) GetVideo(ctx context.Context, id string) (*model.Video, error) {
	return s.stores.Videos.GetByID(ctx, id)
}

// ListVideos returns videos newest first
func (s *service) ListVideos(ctx context.Context, limit, offset int) ([]*model.Video, error) {
	if limit <= 0 {
		limit = defaultVideoLimit
	}
	if limit > maxVideoLimit {
		limit = maxVideoLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.stores.Videos.List(ctx, limit, offset)
}
