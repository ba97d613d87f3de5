package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/service/transcript"
	"github.com/spf13/cobra"
)

// NewSaveCommand creates the save transcript command
func NewSaveCommand(service transcript.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save [VIDEO_ID]",
		Short: "Save a new transcript version for a video",
		Long: `Save a new transcript version. The file holds either a JSON object with one of
blocks, utterances, words or text, a JSON array of blocks, or plain text.
Use "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoID := args[0]

			file, _ := cmd.Flags().GetString("file")
			language, _ := cmd.Flags().GetString("language")
			kind, _ := cmd.Flags().GetString("type")
			title, _ := cmd.Flags().GetString("title")

			if file == "" {
				return fmt.Errorf("--file is required")
			}

			data, err := readInput(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			source, err := ParseSource(data)
			if err != nil {
				return err
			}

			transcriptService, cleanup, err := resolveService(service)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := context.Background()

			// register the video on first save
			if title != "" {
				_, err := transcriptService.RegisterVideo(ctx, transcript.VideoInput{ID: videoID, Title: title})
				if err != nil && !apperrors.HasCode(err, apperrors.CodeConflict) {
					return fmt.Errorf("failed to register video: %w", err)
				}
			}

			in := transcript.SaveInput{
				VideoID:  videoID,
				Language: language,
				Type:     model.TranscriptType(kind),
				Source:   source,
			}
			if cmd.Flags().Changed("name") {
				name, _ := cmd.Flags().GetString("name")
				in.Name = &name
			}

			saved, err := transcriptService.SaveTranscript(ctx, in)
			if err != nil {
				return fmt.Errorf("failed to save transcript: %w", err)
			}

			cmd.Println("Transcript saved successfully")
			cmd.Printf("ID: %s\n", saved.ID)
			cmd.Printf("Version: %d\n", saved.Version)
			cmd.Printf("Blocks: %d\n", len(saved.Blocks))

			return nil
		},
	}

	cmd.Flags().StringP("file", "f", "", "Transcript file (JSON or plain text, - for stdin)")
	cmd.Flags().String("language", "en", "Transcript language")
	cmd.Flags().String("type", string(model.TranscriptTypeAuto), "Transcript type (auto, manual)")
	cmd.Flags().String("name", "", "Optional version name")
	cmd.Flags().String("title", "", "Register the video with this title if it does not exist yet")

	return cmd
}

func readInput(stdin io.Reader, file string) ([]byte, error) {
	if file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript file: %w", err)
	}
	return data, nil
}

// ParseSource detects the transcript shape of raw file content
func ParseSource(data []byte) (transcript.Source, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return transcript.Source{}, fmt.Errorf("transcript file is empty")
	}

	switch trimmed[0] {
	case '{':
		var src transcript.Source
		if err := json.Unmarshal(trimmed, &src); err != nil {
			return transcript.Source{}, fmt.Errorf("invalid transcript JSON: %w", err)
		}
		return src, nil
	case '[':
		var blocks []transcript.BlockInput
		if err := json.Unmarshal(trimmed, &blocks); err != nil {
			return transcript.Source{}, fmt.Errorf("invalid block list JSON: %w", err)
		}
		return transcript.Source{Blocks: blocks}, nil
	default:
		return transcript.Source{Text: string(trimmed)}, nil
	}
}
