package tag

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/service/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTaxonomyService struct {
	taxonomy.Service

	ListMasterTagsFunc  func(ctx context.Context, includeClosed bool) ([]*model.MasterTag, error)
	ListBranchTagsFunc  func(ctx context.Context, masterTagID string) ([]*model.BranchTag, error)
	ListPrimaryTagsFunc func(ctx context.Context, in taxonomy.ListPrimaryTagsInput) ([]*model.PrimaryTag, error)
}

func (m *mockTaxonomyService) ListMasterTags(ctx context.Context, includeClosed bool) ([]*model.MasterTag, error) {
	return m.ListMasterTagsFunc(ctx, includeClosed)
}

func (m *mockTaxonomyService) ListBranchTags(ctx context.Context, masterTagID string) ([]*model.BranchTag, error) {
	return m.ListBranchTagsFunc(ctx, masterTagID)
}

func (m *mockTaxonomyService) ListPrimaryTags(ctx context.Context, in taxonomy.ListPrimaryTagsInput) ([]*model.PrimaryTag, error) {
	return m.ListPrimaryTagsFunc(ctx, in)
}

func TestMastersCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantClosed     bool
		result         []*model.MasterTag
		err            error
		expectedOutput []string
		wantErr        bool
	}{
		{
			name: "open masters with branches",
			args: []string{},
			result: []*model.MasterTag{
				{ID: "m1", Name: "Objections", BranchTags: []*model.BranchTag{{Name: "Budget"}}},
			},
			expectedOutput: []string{"m1  Objections\n", "    branch: Budget"},
		},
		{
			name:           "include closed",
			args:           []string{"--include-closed"},
			wantClosed:     true,
			result:         []*model.MasterTag{{ID: "m2", Name: "Legacy", IsClosed: true}},
			expectedOutput: []string{"m2  Legacy  (closed)"},
		},
		{
			name:           "json output",
			args:           []string{"--format", "json"},
			result:         []*model.MasterTag{{ID: "m1", Name: "Objections"}},
			expectedOutput: []string{`"name": "Objections"`, `"isClosed": false`},
		},
		{
			name:           "empty",
			args:           []string{},
			result:         []*model.MasterTag{},
			expectedOutput: []string{"No master tags found"},
		},
		{
			name:    "service error",
			args:    []string{},
			err:     errors.New("db down"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &mockTaxonomyService{
				ListMasterTagsFunc: func(ctx context.Context, includeClosed bool) ([]*model.MasterTag, error) {
					assert.Equal(t, tt.wantClosed, includeClosed)
					return tt.result, tt.err
				},
			}

			cmd := NewMastersCommand(mockService)
			var buf bytes.Buffer
			cmd.SetOut(&buf)
			cmd.SetErr(&buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.expectedOutput {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestBranchesCommand(t *testing.T) {
	mockService := &mockTaxonomyService{
		ListBranchTagsFunc: func(ctx context.Context, masterTagID string) ([]*model.BranchTag, error) {
			assert.Equal(t, "m1", masterTagID)
			return []*model.BranchTag{{ID: "b1", Name: "Budget"}, {ID: "b2", Name: "Timing"}}, nil
		},
	}

	cmd := NewBranchesCommand(mockService)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"m1"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "b1  Budget\nb2  Timing\n", buf.String())
}

func TestPrimariesCommand(t *testing.T) {
	var got taxonomy.ListPrimaryTagsInput
	mockService := &mockTaxonomyService{
		ListPrimaryTagsFunc: func(ctx context.Context, in taxonomy.ListPrimaryTagsInput) ([]*model.PrimaryTag, error) {
			got = in
			return []*model.PrimaryTag{
				{ID: "p1", Name: "Pricing", DisplayName: "Pricing (1)", ImpressionCount: 3,
					SecondaryTags: []*model.SecondaryTag{{Name: "Too expensive"}}},
				{ID: "p2", Name: "Pricing", DisplayName: "Pricing (2)"},
			}, nil
		},
	}

	cmd := NewPrimariesCommand(mockService)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"m1", "--search", "pri", "--limit", "5"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, taxonomy.ListPrimaryTagsInput{MasterTagID: "m1", Search: "pri", Limit: 5}, got)
	assert.Contains(t, buf.String(), "p1  Pricing (1)  impressions=3")
	assert.Contains(t, buf.String(), "    secondary: Too expensive")
	assert.Contains(t, buf.String(), "p2  Pricing (2)  impressions=0")
}

func TestPrimariesCommand_RequiresMaster(t *testing.T) {
	cmd := NewPrimariesCommand(&mockTaxonomyService{})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{})

	assert.Error(t, cmd.Execute())
}
