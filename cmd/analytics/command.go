package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/service/analytics"
	"github.com/spf13/cobra"
)

// NewAnalyticsCommand creates the analytics command
func NewAnalyticsCommand(service analytics.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show impression counts per tag",
		Long: `Aggregate tag impressions per master tag and primary tag instance,
optionally narrowed to one transcript or one master tag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")

			var filter analytics.Filter
			if v, _ := cmd.Flags().GetString("transcript"); v != "" {
				filter.TranscriptID = &v
			}
			if v, _ := cmd.Flags().GetString("master"); v != "" {
				filter.MasterTagID = &v
			}

			analyticsService, cleanup, err := resolveService(service)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := analyticsService.GetAnalytics(context.Background(), filter)
			if err != nil {
				return fmt.Errorf("failed to get analytics: %w", err)
			}

			switch format {
			case "json":
				output, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to format as JSON: %w", err)
				}
				cmd.Println(string(output))
			default:
				cmd.Print(formatText(result))
			}
			return nil
		},
	}

	cmd.Flags().String("transcript", "", "Only count impressions on this transcript")
	cmd.Flags().String("master", "", "Only report this master tag")
	cmd.Flags().String("format", "text", "Output format (text, json)")

	return cmd
}

func formatText(a *model.Analytics) string {
	var output strings.Builder

	fmt.Fprintf(&output, "Master tags: %d\n", a.TotalMasterTags)
	fmt.Fprintf(&output, "Primary tags: %d\n", a.TotalPrimaryTags)
	fmt.Fprintf(&output, "Impressions: %d\n", a.TotalImpressions)

	for _, m := range a.MasterTags {
		fmt.Fprintf(&output, "\n%s (%d)", m.Name, m.MasterImpressionCount)
		if m.IsClosed {
			output.WriteString(" [closed]")
		}
		output.WriteString("\n")
		for _, p := range m.PrimaryTags {
			fmt.Fprintf(&output, "  %-30s %d\n", p.DisplayName, p.ImpressionCount)
		}
	}

	if len(a.TranscriptBreakdown) > 0 {
		output.WriteString("\nTranscript breakdown:\n")
		for _, row := range a.TranscriptBreakdown {
			primary := "-"
			if row.PrimaryTagName != nil {
				primary = *row.PrimaryTagName
			}
			fmt.Fprintf(&output, "  %s / %s: %d\n", row.MasterTagName, primary, row.ImpressionCount)
		}
	}

	return output.String()
}
