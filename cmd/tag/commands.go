package tag

import (
	"github.com/Taichi-iskw/tagscribe/internal/service/taxonomy"
	"github.com/spf13/cobra"
)

// NewTagCommand creates the main tag command
func NewTagCommand(service taxonomy.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Inspect the tag taxonomy",
		Long:  `List master tags, their branch tags, and primary tag instances`,
	}

	cmd.AddCommand(NewMastersCommand(service))
	cmd.AddCommand(NewBranchesCommand(service))
	cmd.AddCommand(NewPrimariesCommand(service))

	return cmd
}
