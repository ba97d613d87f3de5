package transcript

import (
	"context"
	"fmt"

	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/service/transcript"
	"github.com/spf13/cobra"
)

// NewGetCommand creates the get transcript command
func NewGetCommand(service transcript.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [TRANSCRIPT_ID]",
		Short: "Get a transcript version",
		Long: `Get a transcript by ID, or by --video with an optional --version
(latest when omitted).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID, _ := cmd.Flags().GetString("video")
			format, _ := cmd.Flags().GetString("format")

			if (len(args) == 1) == (videoID != "") {
				return fmt.Errorf("provide either a transcript ID or --video")
			}

			formatter, err := GetFormatter(format)
			if err != nil {
				return err
			}

			transcriptService, cleanup, err := resolveService(service)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := context.Background()
			var t *model.Transcript
			if len(args) == 1 {
				t, err = transcriptService.GetTranscript(ctx, args[0])
			} else {
				var version *int
				if cmd.Flags().Changed("version") {
					v, _ := cmd.Flags().GetInt("version")
					version = &v
				}
				t, err = transcriptService.LoadTranscript(ctx, videoID, version)
			}
			if err != nil {
				return fmt.Errorf("failed to get transcript: %w", err)
			}

			output, err := formatter.Format(t)
			if err != nil {
				return err
			}
			cmd.Print(output)

			return nil
		},
	}

	cmd.Flags().String("video", "", "Load by video ID instead of transcript ID")
	cmd.Flags().Int("version", 0, "Version to load with --video (default latest)")
	cmd.Flags().String("format", "text", "Output format (text, json, srt)")

	return cmd
}
