package taxonomy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/logger"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository/repotest"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(m *repotest.Mocks) (*service, *repotest.FakeTxRunner) {
	tx := m.TxRunner()
	svc := NewService(m.Stores(), tx, logger.NewNop()).(*service)
	svc.now = func() time.Time { return fixedNow }
	return svc, tx
}

func notFound(resource string) error {
	return apperrors.NotFound(resource)
}

func TestResolveOrCreateMasterTag(t *testing.T) {
	existing := &model.MasterTag{ID: "m1", Name: "Pricing"}

	tests := []struct {
		name      string
		input     MasterTagInput
		setup     func(m *repotest.Mocks)
		wantNew   bool
		wantID    string
		wantCode  string
		wantError bool
	}{
		{
			name:  "existing name reuses the tag case-insensitively",
			input: MasterTagInput{Name: "  pricing "},
			setup: func(m *repotest.Mocks) {
				m.Taxonomy.On("FindMasterTagByName", mock.Anything, "pricing").Return(existing, nil)
			},
			wantID: "m1",
		},
		{
			name:  "missing name creates an open tag",
			input: MasterTagInput{Name: "Onboarding", Color: stringPtr("#00ff00")},
			setup: func(m *repotest.Mocks) {
				m.Taxonomy.On("FindMasterTagByName", mock.Anything, "Onboarding").Return(nil, notFound("master tag"))
				m.Taxonomy.On("CreateMasterTag", mock.Anything, mock.MatchedBy(func(tag *model.MasterTag) bool {
					return tag.Name == "Onboarding" && !tag.IsClosed && tag.ID != "" && *tag.Color == "#00ff00"
				})).Return(nil)
			},
			wantNew: true,
		},
		{
			name:  "forceNew with an existing name is a conflict",
			input: MasterTagInput{Name: "PRICING", ForceNew: true},
			setup: func(m *repotest.Mocks) {
				m.Taxonomy.On("FindMasterTagByName", mock.Anything, "PRICING").Return(existing, nil)
			},
			wantError: true,
			wantCode:  apperrors.CodeConflict,
		},
		{
			name:      "blank name is rejected",
			input:     MasterTagInput{Name: "   "},
			setup:     func(m *repotest.Mocks) {},
			wantError: true,
			wantCode:  apperrors.CodeValidation,
		},
		{
			name:  "unique index race surfaces as conflict",
			input: MasterTagInput{Name: "Pricing"},
			setup: func(m *repotest.Mocks) {
				m.Taxonomy.On("FindMasterTagByName", mock.Anything, "Pricing").Return(nil, notFound("master tag"))
				m.Taxonomy.On("CreateMasterTag", mock.Anything, mock.Anything).
					Return(apperrors.New(apperrors.CodeConflict, "master tag with this name already exists"))
			},
			wantError: true,
			wantCode:  apperrors.CodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := repotest.NewMocks()
			tt.setup(m)
			svc, tx := newTestService(m)

			tag, isNew, err := svc.ResolveOrCreateMasterTag(context.Background(), tt.input)

			if tt.wantError {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
				assert.Nil(t, tag)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantNew, isNew)
				if tt.wantID != "" {
					assert.Equal(t, tt.wantID, tag.ID)
				}
			}
			assert.Equal(t, 1, tx.Calls)
			m.AssertExpectations(t)
		})
	}
}

func TestResolveOrCreateMasterTag_ConflictDetails(t *testing.T) {
	m := repotest.NewMocks()
	m.Taxonomy.On("FindMasterTagByName", mock.Anything, "Pricing").
		Return(&model.MasterTag{ID: "m1", Name: "Pricing"}, nil)
	svc, _ := newTestService(m)

	_, _, err := svc.ResolveOrCreateMasterTag(context.Background(), MasterTagInput{Name: "Pricing", ForceNew: true})

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"id": "m1", "name": "Pricing"}, appErr.Details)
}

func TestRenameMasterTag(t *testing.T) {
	t.Run("conflicts with another tag ignoring case", func(t *testing.T) {
		m := repotest.NewMocks()
		m.Taxonomy.On("GetMasterTag", mock.Anything, "m1").Return(&model.MasterTag{ID: "m1", Name: "Pricing"}, nil)
		m.Taxonomy.On("FindMasterTagByName", mock.Anything, "features").
			Return(&model.MasterTag{ID: "m2", Name: "Features"}, nil)
		svc, _ := newTestService(m)

		_, err := svc.RenameMasterTag(context.Background(), "m1", "features")

		require.Error(t, err)
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeConflict, appErr.Code)
		assert.Equal(t, "m2", appErr.Details["id"])
		m.Taxonomy.AssertNotCalled(t, "UpdateMasterTag", mock.Anything, mock.Anything)
	})

	t.Run("changing only the case of its own name is allowed", func(t *testing.T) {
		m := repotest.NewMocks()
		m.Taxonomy.On("GetMasterTag", mock.Anything, "m1").Return(&model.MasterTag{ID: "m1", Name: "pricing"}, nil)
		m.Taxonomy.On("FindMasterTagByName", mock.Anything, "Pricing").
			Return(&model.MasterTag{ID: "m1", Name: "pricing"}, nil)
		m.Taxonomy.On("UpdateMasterTag", mock.Anything, mock.MatchedBy(func(tag *model.MasterTag) bool {
			return tag.ID == "m1" && tag.Name == "Pricing"
		})).Return(nil)
		svc, _ := newTestService(m)

		tag, err := svc.RenameMasterTag(context.Background(), "m1", "Pricing")

		require.NoError(t, err)
		assert.Equal(t, "Pricing", tag.Name)
		m.AssertExpectations(t)
	})

	t.Run("missing tag", func(t *testing.T) {
		m := repotest.NewMocks()
		m.Taxonomy.On("GetMasterTag", mock.Anything, "nope").Return(nil, notFound("master tag"))
		svc, _ := newTestService(m)

		_, err := svc.RenameMasterTag(context.Background(), "nope", "Anything")
		assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	})
}

func TestCloseAndReopenMasterTag(t *testing.T) {
	m := repotest.NewMocks()
	open := &model.MasterTag{ID: "m1", Name: "Pricing"}
	m.Taxonomy.On("GetMasterTag", mock.Anything, "m1").Return(open, nil).Once()
	m.Taxonomy.On("UpdateMasterTag", mock.Anything, mock.MatchedBy(func(tag *model.MasterTag) bool {
		return tag.IsClosed && tag.ClosedAt != nil && tag.ClosedAt.Equal(fixedNow)
	})).Return(nil).Once()
	svc, _ := newTestService(m)

	closed, err := svc.CloseMasterTag(context.Background(), "m1")
	require.NoError(t, err)
	assert.True(t, closed.IsClosed)

	m.Taxonomy.On("GetMasterTag", mock.Anything, "m1").
		Return(&model.MasterTag{ID: "m1", Name: "Pricing", IsClosed: true, ClosedAt: &fixedNow}, nil).Once()
	m.Taxonomy.On("UpdateMasterTag", mock.Anything, mock.MatchedBy(func(tag *model.MasterTag) bool {
		return !tag.IsClosed && tag.ClosedAt == nil
	})).Return(nil).Once()

	reopened, err := svc.ReopenMasterTag(context.Background(), "m1")
	require.NoError(t, err)
	assert.False(t, reopened.IsClosed)
	assert.Nil(t, reopened.ClosedAt)
	m.AssertExpectations(t)
}

func TestUpdateMasterTag_ClearsBlankFields(t *testing.T) {
	m := repotest.NewMocks()
	m.Taxonomy.On("GetMasterTag", mock.Anything, "m1").
		Return(&model.MasterTag{ID: "m1", Name: "Pricing", Color: stringPtr("#fff")}, nil)
	m.Taxonomy.On("UpdateMasterTag", mock.Anything, mock.MatchedBy(func(tag *model.MasterTag) bool {
		return tag.Color == nil && *tag.Description == "Price talk"
	})).Return(nil)
	svc, _ := newTestService(m)

	tag, err := svc.UpdateMasterTag(context.Background(), "m1", MasterTagPatch{
		Color:       stringPtr("  "),
		Description: stringPtr(" Price talk "),
	})

	require.NoError(t, err)
	assert.Equal(t, "Pricing", tag.Name)
	m.AssertExpectations(t)
}

func TestListMasterTags_AttachesBranches(t *testing.T) {
	m := repotest.NewMocks()
	m.Taxonomy.On("ListMasterTags", mock.Anything, false).Return([]*model.MasterTag{
		{ID: "m1", Name: "Features"},
		{ID: "m2", Name: "Pricing"},
	}, nil)
	m.Taxonomy.On("ListBranchTags", mock.Anything, []string{"m1", "m2"}).Return([]*model.BranchTag{
		{ID: "b1", MasterTagID: "m2", Name: "Enterprise"},
		{ID: "b2", MasterTagID: "m2", Name: "SMB"},
	}, nil)
	svc, _ := newTestService(m)

	tags, err := svc.ListMasterTags(context.Background(), false)

	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Empty(t, tags[0].BranchTags)
	assert.Len(t, tags[1].BranchTags, 2)
	m.AssertExpectations(t)
}

func TestDeleteMasterTag(t *testing.T) {
	m := repotest.NewMocks()
	m.Taxonomy.On("DeleteMasterTag", mock.Anything, "m1").Return(true, nil)
	m.Taxonomy.On("DeleteMasterTag", mock.Anything, "gone").Return(false, nil)
	svc, _ := newTestService(m)

	deleted, err := svc.DeleteMasterTag(context.Background(), "m1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteMasterTag(context.Background(), "gone")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func stringPtr(s string) *string {
	return &s
}
