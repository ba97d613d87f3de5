package cmd

import (
	"github.com/Taichi-iskw/tagscribe/cmd/tag"
)

func init() {
	rootCmd.AddCommand(tag.NewTagCommand(nil))
}
