package validation_test

import (
	"testing"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rangeRequest struct {
	BlockID     string `json:"blockId" validate:"required"`
	StartOffset int    `json:"startOffset" validate:"gte=0"`
	EndOffset   int    `json:"endOffset" validate:"gtefield=StartOffset"`
}

type tagRequest struct {
	TranscriptID string         `json:"transcriptId" validate:"required"`
	Type         string         `json:"type,omitempty" validate:"omitempty,oneof=auto manual"`
	Ranges       []rangeRequest `json:"selectionRanges" validate:"dive"`
}

func TestValidator_Validate(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name       string
		req        tagRequest
		wantFields []string
	}{
		{
			name: "valid",
			req: tagRequest{
				TranscriptID: "tr-1",
				Type:         "manual",
				Ranges:       []rangeRequest{{BlockID: "b-1", StartOffset: 0, EndOffset: 3}},
			},
		},
		{
			name:       "missing transcript",
			req:        tagRequest{},
			wantFields: []string{"transcriptId"},
		},
		{
			name:       "bad enum",
			req:        tagRequest{TranscriptID: "tr-1", Type: "robot"},
			wantFields: []string{"type"},
		},
		{
			name: "malformed nested range",
			req: tagRequest{
				TranscriptID: "tr-1",
				Ranges:       []rangeRequest{{BlockID: "", StartOffset: 5, EndOffset: 2}},
			},
			wantFields: []string{"selectionRanges[0].blockId", "selectionRanges[0].endOffset"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)

			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.CodeValidation, appErr.Code)

			fields, ok := appErr.Details["fields"].(map[string]any)
			require.True(t, ok)
			for _, f := range tt.wantFields {
				assert.Contains(t, fields, f)
			}
		})
	}
}
