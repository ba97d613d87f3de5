package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/service/analytics"
	"github.com/Taichi-iskw/tagscribe/internal/service/impression"
	"github.com/Taichi-iskw/tagscribe/internal/service/relocation"
	"github.com/Taichi-iskw/tagscribe/internal/service/taxonomy"
	"github.com/Taichi-iskw/tagscribe/internal/service/transcript"
)

// The service mocks embed their interface; calling a method a test did not
// override panics, which the Recoverer middleware turns into a 500.

type taxonomyMock struct {
	taxonomy.Service
	mock.Mock
}

func (m *taxonomyMock) ResolveOrCreateMasterTag(ctx context.Context, in taxonomy.MasterTagInput) (*model.MasterTag, bool, error) {
	args := m.Called(ctx, in)
	tag, _ := args.Get(0).(*model.MasterTag)
	return tag, args.Bool(1), args.Error(2)
}

func (m *taxonomyMock) ListMasterTags(ctx context.Context, includeClosed bool) ([]*model.MasterTag, error) {
	args := m.Called(ctx, includeClosed)
	tags, _ := args.Get(0).([]*model.MasterTag)
	return tags, args.Error(1)
}

func (m *taxonomyMock) ListPrimaryTags(ctx context.Context, in taxonomy.ListPrimaryTagsInput) ([]*model.PrimaryTag, error) {
	args := m.Called(ctx, in)
	tags, _ := args.Get(0).([]*model.PrimaryTag)
	return tags, args.Error(1)
}

func (m *taxonomyMock) CreateBranchTag(ctx context.Context, masterTagID, name string, description *string) (*model.BranchTag, error) {
	args := m.Called(ctx, masterTagID, name, description)
	tag, _ := args.Get(0).(*model.BranchTag)
	return tag, args.Error(1)
}

type transcriptMock struct {
	transcript.Service
	mock.Mock
}

func (m *transcriptMock) SaveTranscript(ctx context.Context, in transcript.SaveInput) (*model.Transcript, error) {
	args := m.Called(ctx, in)
	t, _ := args.Get(0).(*model.Transcript)
	return t, args.Error(1)
}

func (m *transcriptMock) LoadTranscript(ctx context.Context, videoID string, version *int) (*model.Transcript, error) {
	args := m.Called(ctx, videoID, version)
	t, _ := args.Get(0).(*model.Transcript)
	return t, args.Error(1)
}

type recorderMock struct {
	impression.Recorder
	mock.Mock
}

func (m *recorderMock) RecordImpression(ctx context.Context, in impression.RecordInput) (*impression.RecordResult, error) {
	args := m.Called(ctx, in)
	res, _ := args.Get(0).(*impression.RecordResult)
	return res, args.Error(1)
}

func (m *recorderMock) DeleteImpression(ctx context.Context, id string) (*impression.DeleteResult, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*impression.DeleteResult)
	return res, args.Error(1)
}

type relocationMock struct {
	mock.Mock
}

func (m *relocationMock) Relocate(ctx context.Context, req relocation.Request) (*relocation.Result, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*relocation.Result)
	return res, args.Error(1)
}

type analyticsMock struct {
	mock.Mock
}

func (m *analyticsMock) LoadTagsForTranscript(ctx context.Context, transcriptID string) (*model.TranscriptTags, error) {
	args := m.Called(ctx, transcriptID)
	res, _ := args.Get(0).(*model.TranscriptTags)
	return res, args.Error(1)
}

func (m *analyticsMock) GetAnalytics(ctx context.Context, filter analytics.Filter) (*model.Analytics, error) {
	args := m.Called(ctx, filter)
	res, _ := args.Get(0).(*model.Analytics)
	return res, args.Error(1)
}

type pingerMock struct {
	err error
}

func (p pingerMock) Ping(context.Context) error { return p.err }
