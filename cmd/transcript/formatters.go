package transcript

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Taichi-iskw/tagscribe/internal/model"
)

// Formatter defines interface for output formatting
type Formatter interface {
	Format(t *model.Transcript) (string, error)
}

// TextFormatter formats output as plain text
type TextFormatter struct{}

// Format formats a transcript as plain text
func (f *TextFormatter) Format(t *model.Transcript) (string, error) {
	var output strings.Builder

	fmt.Fprintf(&output, "Transcript ID: %s\n", t.ID)
	fmt.Fprintf(&output, "Video ID: %s\n", t.VideoID)
	fmt.Fprintf(&output, "Version: %d\n", t.Version)
	fmt.Fprintf(&output, "Language: %s\n", t.Language)
	fmt.Fprintf(&output, "Type: %s\n", t.Type)
	if t.Name != nil {
		fmt.Fprintf(&output, "Name: %s\n", *t.Name)
	}
	fmt.Fprintf(&output, "Created At: %s\n", t.CreatedAt.Format(time.RFC3339))
	output.WriteString("\n")

	for _, b := range t.Blocks {
		fmt.Fprintf(&output, "[%d] %s", b.OrderIndex, formatClock(b.StartTime))
		if b.SpeakerLabel != "" {
			fmt.Fprintf(&output, " %s:", b.SpeakerLabel)
		}
		fmt.Fprintf(&output, " %s\n", b.Text)
	}

	if len(t.Sections) > 0 {
		output.WriteString("\nSections:\n")
		for _, s := range t.Sections {
			fmt.Fprintf(&output, "  %s [%s]\n", s.Name, formatRange(s.StartBlockIndex, s.EndBlockIndex))
			for _, sub := range s.Subsections {
				fmt.Fprintf(&output, "    %s [%s]\n", sub.Name, formatRange(sub.StartBlockIndex, sub.EndBlockIndex))
			}
		}
	}

	return output.String(), nil
}

// JSONFormatter formats output as JSON
type JSONFormatter struct{}

// Format formats a transcript as JSON
func (f *JSONFormatter) Format(t *model.Transcript) (string, error) {
	jsonBytes, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(jsonBytes) + "\n", nil
}

// SRTFormatter formats output as SRT subtitle format using the block timings
type SRTFormatter struct{}

// Format formats a transcript as SRT
func (f *SRTFormatter) Format(t *model.Transcript) (string, error) {
	if len(t.Blocks) == 0 {
		return "", fmt.Errorf("SRT format requires transcript blocks")
	}

	var output strings.Builder
	for i, b := range t.Blocks {
		fmt.Fprintf(&output, "%d\n", i+1)
		fmt.Fprintf(&output, "%s --> %s\n", formatSRTTime(b.StartTime), formatSRTTime(b.EndTime))
		if b.SpeakerLabel != "" {
			fmt.Fprintf(&output, "%s: ", b.SpeakerLabel)
		}
		output.WriteString(b.Text)
		output.WriteString("\n\n")
	}
	return output.String(), nil
}

// formatSRTTime formats seconds into SRT time format (00:00:00,000)
func formatSRTTime(seconds float64) string {
	ms := int64(math.Round(seconds * 1000))
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000
	secs := (ms % 60_000) / 1000
	millis := ms % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// formatClock formats seconds as mm:ss
func formatClock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func formatRange(start int, end *int) string {
	if end == nil {
		return fmt.Sprintf("%d..", start)
	}
	return fmt.Sprintf("%d..%d", start, *end)
}

// GetFormatter returns the appropriate formatter based on format string
func GetFormatter(format string) (Formatter, error) {
	switch strings.ToLower(format) {
	case "text", "txt":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "srt":
		return &SRTFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
