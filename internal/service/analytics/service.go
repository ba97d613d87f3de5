package analytics

import (
	"context"
	"time"

	"github.com/Taichi-iskw/tagscribe/internal/cache"
	"github.com/Taichi-iskw/tagscribe/internal/logger"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository"
)

// Filter narrows GetAnalytics; nil fields mean no filter
type Filter struct {
	TranscriptID *string
	MasterTagID  *string
}

// Service answers read-only questions about tag impressions
type Service interface {
	LoadTagsForTranscript(ctx context.Context, transcriptID string) (*model.TranscriptTags, error)
	GetAnalytics(ctx context.Context, filter Filter) (*model.Analytics, error)
}

// service implements Service
type service struct {
	stores   repository.Stores
	cache    cache.Cache
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewService creates an analytics service. A nil cache or zero TTL disables caching.
func NewService(stores repository.Stores, c cache.Cache, cacheTTL time.Duration, log *logger.Logger) Service {
	if c == nil || cacheTTL <= 0 {
		c = cache.Nop{}
	}
	return &service{
		stores:   stores,
		cache:    c,
		cacheTTL: cacheTTL,
		log:      log.With("service", "AnalyticsService"),
	}
}
