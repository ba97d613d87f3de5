package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/tagscribe/internal/app"
	"github.com/Taichi-iskw/tagscribe/internal/service/transcript"
)

// videoCmd represents the video command
var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Video operations",
	Long:  `Register and list the videos that transcripts are saved against.`,
}

// videoRegisterCmd stores a video row
var videoRegisterCmd = &cobra.Command{
	Use:   "register [VIDEO_ID]",
	Short: "Register a video",
	Long:  `Register a video so transcript versions can be saved for it. The ID is generated when omitted.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		a, cleanup, err := app.Load(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		in := transcript.VideoInput{}
		if len(args) > 0 {
			in.ID = args[0]
		}
		in.Title, _ = cmd.Flags().GetString("title")
		in.MediaURL, _ = cmd.Flags().GetString("media-url")
		in.Duration, _ = cmd.Flags().GetFloat64("duration")

		video, err := a.Transcripts.RegisterVideo(ctx, in)
		if err != nil {
			return fmt.Errorf("failed to register video: %w", err)
		}

		cmd.Printf("Video registered: %s\n", video.ID)
		return nil
	},
}

// videoListCmd lists registered videos
var videoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered videos",
	Long:  `List registered videos, newest first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		a, cleanup, err := app.Load(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		videos, err := a.Transcripts.ListVideos(ctx, limit, offset)
		if err != nil {
			return fmt.Errorf("failed to list videos: %w", err)
		}

		if len(videos) == 0 {
			cmd.Println("No videos found.")
			return nil
		}

		result, err := json.MarshalIndent(videos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format result: %w", err)
		}

		cmd.Printf("Found %d video(s):\n%s\n", len(videos), string(result))
		return nil
	},
}

func init() {
	videoRegisterCmd.Flags().String("title", "", "Video title (required)")
	videoRegisterCmd.Flags().String("media-url", "", "Opaque media reference, e.g. an object storage key")
	videoRegisterCmd.Flags().Float64("duration", 0, "Duration in seconds")
	_ = videoRegisterCmd.MarkFlagRequired("title")

	videoListCmd.Flags().Int("limit", 10, "Maximum number of videos to retrieve")
	videoListCmd.Flags().Int("offset", 0, "Number of videos to skip")

	videoCmd.AddCommand(videoRegisterCmd)
	videoCmd.AddCommand(videoListCmd)
	rootCmd.AddCommand(videoCmd)
}
