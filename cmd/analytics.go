package cmd

import (
	"github.com/Taichi-iskw/tagscribe/cmd/analytics"
)

func init() {
	rootCmd.AddCommand(analytics.NewAnalyticsCommand(nil))
}
