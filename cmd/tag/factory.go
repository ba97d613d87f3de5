package tag

import (
	"context"
	"fmt"
	"time"

	"github.com/Taichi-iskw/tagscribe/internal/app"
	"github.com/Taichi-iskw/tagscribe/internal/service/taxonomy"
)

// ServiceFactory creates taxonomy service instances
type ServiceFactory struct{}

// NewServiceFactory creates a new service factory
func NewServiceFactory() *ServiceFactory {
	return &ServiceFactory{}
}

// CreateService creates a taxonomy service backed by the configured database
func (f *ServiceFactory) CreateService(ctx context.Context) (taxonomy.Service, func(), error) {
	a, cleanup, err := app.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	return a.Taxonomy, cleanup, nil
}

func resolveService(service taxonomy.Service) (taxonomy.Service, func(), error) {
	if service != nil {
		return service, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc, cleanup, err := NewServiceFactory().CreateService(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create taxonomy service: %w", err)
	}
	return svc, cleanup, nil
}
