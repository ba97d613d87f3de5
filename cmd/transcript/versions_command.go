package transcript

import (
	"context"
	"fmt"
	"time"

	"github.com/Taichi-iskw/tagscribe/internal/service/transcript"
	"github.com/spf13/cobra"
)

// NewVersionsCommand creates the list versions command
func NewVersionsCommand(service transcript.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions [VIDEO_ID]",
		Short: "List all transcript versions of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID := args[0]

			transcriptService, cleanup, err := resolveService(service)
			if err != nil {
				return err
			}
			defer cleanup()

			versions, err := transcriptService.ListVersions(context.Background(), videoID)
			if err != nil {
				return fmt.Errorf("failed to list versions: %w", err)
			}

			if len(versions) == 0 {
				cmd.Println("No transcripts found for video", videoID)
				return nil
			}

			cmd.Printf("Transcript versions for video %s:\n\n", videoID)
			for _, t := range versions {
				cmd.Printf("v%d  %s  %s/%s  %s", t.Version, t.ID, t.Language, t.Type, t.CreatedAt.Format(time.DateTime))
				if t.Name != nil {
					cmd.Printf("  %q", *t.Name)
				}
				cmd.Println()
			}

			return nil
		},
	}

	return cmd
}
