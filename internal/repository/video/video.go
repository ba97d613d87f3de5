package video

import (
	"context"

	"github.com/Taichi-iskw/tagscribe/internal/model"
)

// Repository defines operations for Video persistence
type Repository interface {
	Create(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id string) (*model.Video, error)
	List(ctx context.Context, limit, offset int) ([]*model.Video, error)
	Update(ctx context.Context, video *model.Video) error
	Delete(ctx context.Context, id string) error
	// LockForUpdate takes a row lock on the video for the rest of the transaction
	LockForUpdate(ctx context.Context, id string) error
}
