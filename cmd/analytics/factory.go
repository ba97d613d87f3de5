package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/Taichi-iskw/tagscribe/internal/app"
	"github.com/Taichi-iskw/tagscribe/internal/service/analytics"
)

// ServiceFactory creates analytics service instances
type ServiceFactory struct{}

// NewServiceFactory creates a new service factory
func NewServiceFactory() *ServiceFactory {
	return &ServiceFactory{}
}

// CreateService creates an analytics service backed by the configured database and cache
func (f *ServiceFactory) CreateService(ctx context.Context) (analytics.Service, func(), error) {
	a, cleanup, err := app.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	return a.Analytics, cleanup, nil
}

func resolveService(service analytics.Service) (analytics.Service, func(), error) {
	if service != nil {
		return service, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc, cleanup, err := NewServiceFactory().CreateService(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create analytics service: %w", err)
	}
	return svc, cleanup, nil
}
