package relocation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/logger"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository/repotest"
)

func stringPtr(s string) *string {
	return &s
}

func TestRelocate_MovePrimary(t *testing.T) {
	tests := []struct {
		name      string
		req       Request
		setup     func(m *repotest.Mocks)
		wantMoved int64
		wantCode  string
	}{
		{
			name: "moves tag and its impressions",
			req:  Request{Action: ActionMovePrimary, PrimaryTagID: "p1", TargetMasterTagID: "m2"},
			setup: func(m *repotest.Mocks) {
				m.Taxonomy.On("GetMasterTag", mock.Anything, "m2").Return(&model.MasterTag{ID: "m2"}, nil)
				m.Taxonomy.On("GetPrimaryTag", mock.Anything, "p1").Return(&model.PrimaryTag{ID: "p1", MasterTagID: "m1"}, nil)
				m.Taxonomy.On("MovePrimaryTag", mock.Anything, "p1", "m2").Return(nil)
				m.Impressions.On("ReassignMaster", mock.Anything, "p1", "m2").Return(int64(3), nil)
			},
			wantMoved: 3,
		},
		{
			name: "target master missing",
			req:  Request{Action: ActionMovePrimary, PrimaryTagID: "p1", TargetMasterTagID: "m404"},
			setup: func(m *repotest.Mocks) {
				m.Taxonomy.On("GetMasterTag", mock.Anything, "m404").Return(nil, apperrors.NotFound("master tag"))
			},
			wantCode: apperrors.CodeNotFound,
		},
		{
			name: "primary tag missing",
			req:  Request{Action: ActionMovePrimary, PrimaryTagID: "p404", TargetMasterTagID: "m2"},
			setup: func(m *repotest.Mocks) {
				m.Taxonomy.On("GetMasterTag", mock.Anything, "m2").Return(&model.MasterTag{ID: "m2"}, nil)
				m.Taxonomy.On("GetPrimaryTag", mock.Anything, "p404").Return(nil, apperrors.NotFound("primary tag"))
			},
			wantCode: apperrors.CodeNotFound,
		},
		{
			name: "impression update fails",
			req:  Request{Action: ActionMovePrimary, PrimaryTagID: "p1", TargetMasterTagID: "m2"},
			setup: func(m *repotest.Mocks) {
				m.Taxonomy.On("GetMasterTag", mock.Anything, "m2").Return(&model.MasterTag{ID: "m2"}, nil)
				m.Taxonomy.On("GetPrimaryTag", mock.Anything, "p1").Return(&model.PrimaryTag{ID: "p1"}, nil)
				m.Taxonomy.On("MovePrimaryTag", mock.Anything, "p1", "m2").Return(nil)
				m.Impressions.On("ReassignMaster", mock.Anything, "p1", "m2").
					Return(int64(0), apperrors.Wrap(errors.New("conn reset"), apperrors.CodeInternal, "failed to reassign impressions"))
			},
			wantCode: apperrors.CodeInternal,
		},
		{
			name:     "missing ids",
			req:      Request{Action: ActionMovePrimary, PrimaryTagID: "p1"},
			setup:    func(m *repotest.Mocks) {},
			wantCode: apperrors.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := repotest.NewMocks()
			tt.setup(m)
			tx := m.TxRunner()
			svc := NewService(tx, logger.NewNop())

			result, err := svc.Relocate(context.Background(), tt.req)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, tx.Calls)
			assert.Equal(t, tt.wantMoved, result.ImpressionsMoved)
			assert.Equal(t, "m2", result.MasterTagID)
			m.AssertExpectations(t)
		})
	}
}

func TestRelocate_MoveToSection(t *testing.T) {
	impression := &model.TagImpression{ID: "i1", TranscriptID: "t1"}

	t.Run("subsection implies section", func(t *testing.T) {
		m := repotest.NewMocks()
		m.Impressions.On("GetByID", mock.Anything, "i1").Return(impression, nil)
		m.Sections.On("GetSubsection", mock.Anything, "ss1").Return(&model.Subsection{ID: "ss1", SectionID: "s1"}, nil)
		m.Sections.On("GetSection", mock.Anything, "s1").Return(&model.Section{ID: "s1", TranscriptID: "t1"}, nil)
		m.Impressions.On("SetSection", mock.Anything, "i1", stringPtr("s1"), stringPtr("ss1")).Return(nil)
		svc := NewService(m.TxRunner(), logger.NewNop())

		result, err := svc.Relocate(context.Background(), Request{
			Action:             ActionMoveToSection,
			ImpressionID:       "i1",
			TargetSubsectionID: stringPtr("ss1"),
		})

		require.NoError(t, err)
		assert.Equal(t, "s1", *result.SectionID)
		assert.Equal(t, "ss1", *result.SubsectionID)
		m.AssertExpectations(t)
	})

	t.Run("section only clears the subsection", func(t *testing.T) {
		m := repotest.NewMocks()
		m.Impressions.On("GetByID", mock.Anything, "i1").Return(impression, nil)
		m.Sections.On("GetSection", mock.Anything, "s2").Return(&model.Section{ID: "s2", TranscriptID: "t1"}, nil)
		m.Impressions.On("SetSection", mock.Anything, "i1", stringPtr("s2"), (*string)(nil)).Return(nil)
		svc := NewService(m.TxRunner(), logger.NewNop())

		result, err := svc.Relocate(context.Background(), Request{
			Action:          ActionMoveToSection,
			ImpressionID:    "i1",
			TargetSectionID: stringPtr("s2"),
		})

		require.NoError(t, err)
		assert.Nil(t, result.SubsectionID)
		m.AssertExpectations(t)
	})

	t.Run("section on another transcript", func(t *testing.T) {
		m := repotest.NewMocks()
		m.Impressions.On("GetByID", mock.Anything, "i1").Return(impression, nil)
		m.Sections.On("GetSection", mock.Anything, "s9").Return(&model.Section{ID: "s9", TranscriptID: "t2"}, nil)
		svc := NewService(m.TxRunner(), logger.NewNop())

		_, err := svc.Relocate(context.Background(), Request{
			Action:          ActionMoveToSection,
			ImpressionID:    "i1",
			TargetSectionID: stringPtr("s9"),
		})

		assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
		m.Impressions.AssertNotCalled(t, "SetSection", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing impression", func(t *testing.T) {
		m := repotest.NewMocks()
		m.Impressions.On("GetByID", mock.Anything, "i404").Return(nil, apperrors.NotFound("tag impression"))
		svc := NewService(m.TxRunner(), logger.NewNop())

		_, err := svc.Relocate(context.Background(), Request{
			Action:          ActionMoveToSection,
			ImpressionID:    "i404",
			TargetSectionID: stringPtr("s1"),
		})
		assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	})

	t.Run("no target", func(t *testing.T) {
		m := repotest.NewMocks()
		tx := m.TxRunner()
		svc := NewService(tx, logger.NewNop())

		_, err := svc.Relocate(context.Background(), Request{Action: ActionMoveToSection, ImpressionID: "i1"})

		assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
		assert.Equal(t, 0, tx.Calls)
	})
}

func TestRelocate_Detach(t *testing.T) {
	m := repotest.NewMocks()
	m.Impressions.On("GetByID", mock.Anything, "i1").Return(&model.TagImpression{ID: "i1"}, nil)
	m.Impressions.On("SetSection", mock.Anything, "i1", (*string)(nil), (*string)(nil)).Return(nil)
	svc := NewService(m.TxRunner(), logger.NewNop())

	result, err := svc.Relocate(context.Background(), Request{Action: ActionDetachFromSection, ImpressionID: "i1"})

	require.NoError(t, err)
	assert.Equal(t, ActionDetachFromSection, result.Action)
	assert.Nil(t, result.SectionID)
	m.AssertExpectations(t)
}

func TestRelocate_UnknownAction(t *testing.T) {
	m := repotest.NewMocks()
	tx := m.TxRunner()
	svc := NewService(tx, logger.NewNop())

	_, err := svc.Relocate(context.Background(), Request{Action: "merge_everything"})

	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Equal(t, "merge_everything", appErr.Details["action"])
	assert.Equal(t, 0, tx.Calls)
}
