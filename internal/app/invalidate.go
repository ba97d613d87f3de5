package app

import (
	"context"

	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/service/impression"
	"github.com/Taichi-iskw/tagscribe/internal/service/relocation"
	"github.com/Taichi-iskw/tagscribe/internal/service/taxonomy"
)

// invalidator is satisfied by *analytics.Invalidator
type invalidator interface {
	Invalidate(ctx context.Context)
}

// The wrappers below retire cached analytics after every committed write that changes
// a count, a master's name or state, or the set of primary tag instances.

type invalidatingRecorder struct {
	impression.Recorder
	inv invalidator
}

func (r invalidatingRecorder) RecordImpression(ctx context.Context, in impression.RecordInput) (*impression.RecordResult, error) {
	result, err := r.Recorder.RecordImpression(ctx, in)
	if err == nil {
		r.inv.Invalidate(ctx)
	}
	return result, err
}

func (r invalidatingRecorder) DeleteImpression(ctx context.Context, id string) (*impression.DeleteResult, error) {
	result, err := r.Recorder.DeleteImpression(ctx, id)
	if err == nil && !result.AlreadyDeleted {
		r.inv.Invalidate(ctx)
	}
	return result, err
}

type invalidatingRelocation struct {
	relocation.Service
	inv invalidator
}

func (s invalidatingRelocation) Relocate(ctx context.Context, req relocation.Request) (*relocation.Result, error) {
	result, err := s.Service.Relocate(ctx, req)
	// section moves leave every count untouched
	if err == nil && req.Action == relocation.ActionMovePrimary {
		s.inv.Invalidate(ctx)
	}
	return result, err
}

type invalidatingTaxonomy struct {
	taxonomy.Service
	inv invalidator
}

func (s invalidatingTaxonomy) ResolveOrCreateMasterTag(ctx context.Context, in taxonomy.MasterTagInput) (*model.MasterTag, bool, error) {
	tag, isNew, err := s.Service.ResolveOrCreateMasterTag(ctx, in)
	if err == nil && isNew {
		s.inv.Invalidate(ctx)
	}
	return tag, isNew, err
}

func (s invalidatingTaxonomy) RenameMasterTag(ctx context.Context, id, newName string) (*model.MasterTag, error) {
	return s.masterChanged(ctx)(s.Service.RenameMasterTag(ctx, id, newName))
}

func (s invalidatingTaxonomy) UpdateMasterTag(ctx context.Context, id string, patch taxonomy.MasterTagPatch) (*model.MasterTag, error) {
	return s.masterChanged(ctx)(s.Service.UpdateMasterTag(ctx, id, patch))
}

func (s invalidatingTaxonomy) CloseMasterTag(ctx context.Context, id string) (*model.MasterTag, error) {
	return s.masterChanged(ctx)(s.Service.CloseMasterTag(ctx, id))
}

func (s invalidatingTaxonomy) ReopenMasterTag(ctx context.Context, id string) (*model.MasterTag, error) {
	return s.masterChanged(ctx)(s.Service.ReopenMasterTag(ctx, id))
}

func (s invalidatingTaxonomy) DeleteMasterTag(ctx context.Context, id string) (bool, error) {
	deleted, err := s.Service.DeleteMasterTag(ctx, id)
	if err == nil && deleted {
		s.inv.Invalidate(ctx)
	}
	return deleted, err
}

func (s invalidatingTaxonomy) CreatePrimaryTagInstance(ctx context.Context, masterTagID, name string) (*model.PrimaryTag, error) {
	tag, err := s.Service.CreatePrimaryTagInstance(ctx, masterTagID, name)
	if err == nil {
		s.inv.Invalidate(ctx)
	}
	return tag, err
}

func (s invalidatingTaxonomy) RenamePrimaryTag(ctx context.Context, id, name string) (*model.PrimaryTag, error) {
	tag, err := s.Service.RenamePrimaryTag(ctx, id, name)
	if err == nil {
		s.inv.Invalidate(ctx)
	}
	return tag, err
}

func (s invalidatingTaxonomy) masterChanged(ctx context.Context) func(*model.MasterTag, error) (*model.MasterTag, error) {
	return func(tag *model.MasterTag, err error) (*model.MasterTag, error) {
		if err == nil {
			s.inv.Invalidate(ctx)
		}
		return tag, err
	}
}
