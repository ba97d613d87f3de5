package transcript

import (
	"context"
	"fmt"
	"time"

	"github.com/Taichi-iskw/tagscribe/internal/app"
	"github.com/Taichi-iskw/tagscribe/internal/service/transcript"
)

// ServiceFactory creates transcript service instances
type ServiceFactory struct{}

// NewServiceFactory creates a new service factory
func NewServiceFactory() *ServiceFactory {
	return &ServiceFactory{}
}

// CreateService creates a transcript service backed by the configured database
func (f *ServiceFactory) CreateService(ctx context.Context) (transcript.Service, func(), error) {
	a, cleanup, err := app.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	return a.Transcripts, cleanup, nil
}

// resolveService returns the injected service (tests) or builds a real one
func resolveService(service transcript.Service) (transcript.Service, func(), error) {
	if service != nil {
		return service, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc, cleanup, err := NewServiceFactory().CreateService(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create transcript service: %w", err)
	}
	return svc, cleanup, nil
}
