package transcript

import (
	"github.com/Taichi-iskw/tagscribe/internal/service/transcript"
	"github.com/spf13/cobra"
)

// NewTranscriptCommand creates the main transcript command
func NewTranscriptCommand(service transcript.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcript",
		Short: "Manage transcript versions",
		Long:  `Save, get, and list the immutable transcript versions of a video`,
	}

	cmd.AddCommand(NewSaveCommand(service))
	cmd.AddCommand(NewGetCommand(service))
	cmd.AddCommand(NewVersionsCommand(service))

	return cmd
}
