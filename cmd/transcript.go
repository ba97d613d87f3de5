package cmd

import (
	"github.com/Taichi-iskw/tagscribe/cmd/transcript"
)

func init() {
	// a nil service makes each subcommand connect through its factory
	rootCmd.AddCommand(transcript.NewTranscriptCommand(nil))
}
