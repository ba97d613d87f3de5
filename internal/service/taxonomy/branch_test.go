package taxonomy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository/repotest"
)

func TestCreateBranchTag(t *testing.T) {
	tests := []struct {
		name     string
		branch   string
		setup    func(m *repotest.Mocks)
		wantCode string
	}{
		{
			name:   "creates a trimmed branch",
			branch: "  Enterprise ",
			setup: func(m *repotest.Mocks) {
				m.Taxonomy.On("GetMasterTag", mock.Anything, "m1").Return(&model.MasterTag{ID: "m1"}, nil)
				m.Taxonomy.On("FindBranchTagByName", mock.Anything, "m1", "Enterprise").Return(nil, notFound("branch tag"))
				m.Taxonomy.On("CreateBranchTag", mock.Anything, mock.MatchedBy(func(tag *model.BranchTag) bool {
					return tag.MasterTagID == "m1" && tag.Name == "Enterprise"
				})).Return(nil)
			},
		},
		{
			name:   "missing master",
			branch: "Enterprise",
			setup: func(m *repotest.Mocks) {
				m.Taxonomy.On("GetMasterTag", mock.Anything, "m1").Return(nil, notFound("master tag"))
			},
			wantCode: apperrors.CodeNotFound,
		},
		{
			name:   "duplicate name under the same master",
			branch: "Enterprise",
			setup: func(m *repotest.Mocks) {
				m.Taxonomy.On("GetMasterTag", mock.Anything, "m1").Return(&model.MasterTag{ID: "m1"}, nil)
				m.Taxonomy.On("FindBranchTagByName", mock.Anything, "m1", "Enterprise").
					Return(&model.BranchTag{ID: "b1", MasterTagID: "m1", Name: "Enterprise"}, nil)
			},
			wantCode: apperrors.CodeValidation,
		},
		{
			name:   "blank name",
			branch: " ",
			setup: func(m *repotest.Mocks) {
				m.Taxonomy.On("GetMasterTag", mock.Anything, "m1").Return(&model.MasterTag{ID: "m1"}, nil)
			},
			wantCode: apperrors.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := repotest.NewMocks()
			tt.setup(m)
			svc, _ := newTestService(m)

			tag, err := svc.CreateBranchTag(context.Background(), "m1", tt.branch, nil)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Enterprise", tag.Name)
			m.AssertExpectations(t)
		})
	}
}

func TestUpdateBranchTag(t *testing.T) {
	t.Run("rename collides with sibling", func(t *testing.T) {
		m := repotest.NewMocks()
		m.Taxonomy.On("GetBranchTag", mock.Anything, "b1").
			Return(&model.BranchTag{ID: "b1", MasterTagID: "m1", Name: "SMB"}, nil)
		m.Taxonomy.On("FindBranchTagByName", mock.Anything, "m1", "Enterprise").
			Return(&model.BranchTag{ID: "b2", MasterTagID: "m1", Name: "Enterprise"}, nil)
		svc, _ := newTestService(m)

		_, err := svc.UpdateBranchTag(context.Background(), "b1", BranchTagPatch{Name: stringPtr("Enterprise")})

		assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
		m.Taxonomy.AssertNotCalled(t, "UpdateBranchTag", mock.Anything, mock.Anything)
	})

	t.Run("description only", func(t *testing.T) {
		m := repotest.NewMocks()
		m.Taxonomy.On("GetBranchTag", mock.Anything, "b1").
			Return(&model.BranchTag{ID: "b1", MasterTagID: "m1", Name: "SMB"}, nil)
		m.Taxonomy.On("UpdateBranchTag", mock.Anything, mock.MatchedBy(func(tag *model.BranchTag) bool {
			return tag.Name == "SMB" && *tag.Description == "Small business"
		})).Return(nil)
		svc, _ := newTestService(m)

		tag, err := svc.UpdateBranchTag(context.Background(), "b1", BranchTagPatch{Description: stringPtr("Small business")})

		require.NoError(t, err)
		assert.Equal(t, "Small business", *tag.Description)
		m.AssertExpectations(t)
	})
}

func TestListBranchTags(t *testing.T) {
	m := repotest.NewMocks()
	m.Taxonomy.On("GetMasterTag", mock.Anything, "m1").Return(&model.MasterTag{ID: "m1"}, nil)
	m.Taxonomy.On("ListBranchTags", mock.Anything, []string{"m1"}).
		Return([]*model.BranchTag{{ID: "b1", MasterTagID: "m1", Name: "SMB"}}, nil)
	svc, _ := newTestService(m)

	tags, err := svc.ListBranchTags(context.Background(), "m1")

	require.NoError(t, err)
	assert.Len(t, tags, 1)
}
