package transcript

import (
	"testing"

	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFormatter_Sections(t *testing.T) {
	end := 1
	tr := sampleTranscript()
	tr.Sections = []*model.Section{
		{Name: "Intro", StartBlockIndex: 0, EndBlockIndex: &end, Subsections: []*model.Subsection{
			{Name: "Greeting", StartBlockIndex: 0},
		}},
	}

	output, err := (&TextFormatter{}).Format(tr)
	require.NoError(t, err)

	assert.Contains(t, output, "Sections:")
	assert.Contains(t, output, "  Intro [0..1]")
	assert.Contains(t, output, "    Greeting [0..]")
}

func TestSRTFormatter_NoBlocks(t *testing.T) {
	_, err := (&SRTFormatter{}).Format(&model.Transcript{ID: "t-1"})
	assert.Error(t, err)
}

func TestFormatSRTTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{2.5, "00:00:02,500"},
		{3661.001, "01:01:01,001"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSRTTime(tt.seconds))
	}
}

func TestGetFormatter(t *testing.T) {
	for _, format := range []string{"text", "TXT", "json", "srt"} {
		f, err := GetFormatter(format)
		require.NoError(t, err)
		assert.NotNil(t, f)
	}

	_, err := GetFormatter("yaml")
	assert.Error(t, err)
}
