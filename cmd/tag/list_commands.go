package tag

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Taichi-iskw/tagscribe/internal/service/taxonomy"
	"github.com/spf13/cobra"
)

// NewMastersCommand creates the list master tags command
func NewMastersCommand(service taxonomy.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "masters",
		Short: "List master tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			includeClosed, _ := cmd.Flags().GetBool("include-closed")
			format, _ := cmd.Flags().GetString("format")

			taxonomyService, cleanup, err := resolveService(service)
			if err != nil {
				return err
			}
			defer cleanup()

			masters, err := taxonomyService.ListMasterTags(context.Background(), includeClosed)
			if err != nil {
				return fmt.Errorf("failed to list master tags: %w", err)
			}

			if format == "json" {
				return printJSON(cmd, masters)
			}

			if len(masters) == 0 {
				cmd.Println("No master tags found")
				return nil
			}
			for _, m := range masters {
				cmd.Printf("%s  %s", m.ID, m.Name)
				if m.IsClosed {
					cmd.Print("  (closed)")
				}
				cmd.Println()
				for _, b := range m.BranchTags {
					cmd.Printf("    branch: %s\n", b.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().Bool("include-closed", false, "Include closed master tags")
	cmd.Flags().String("format", "text", "Output format (text, json)")

	return cmd
}

// NewBranchesCommand creates the list branch tags command
func NewBranchesCommand(service taxonomy.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branches [MASTER_TAG_ID]",
		Short: "List the branch tags of a master tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")

			taxonomyService, cleanup, err := resolveService(service)
			if err != nil {
				return err
			}
			defer cleanup()

			branches, err := taxonomyService.ListBranchTags(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to list branch tags: %w", err)
			}

			if format == "json" {
				return printJSON(cmd, branches)
			}

			if len(branches) == 0 {
				cmd.Println("No branch tags found for master tag", args[0])
				return nil
			}
			for _, b := range branches {
				cmd.Printf("%s  %s\n", b.ID, b.Name)
			}
			return nil
		},
	}

	cmd.Flags().String("format", "text", "Output format (text, json)")

	return cmd
}

// NewPrimariesCommand creates the list primary tag instances command
func NewPrimariesCommand(service taxonomy.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "primaries [MASTER_TAG_ID]",
		Short: "List primary tag instances under a master tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			search, _ := cmd.Flags().GetString("search")
			limit, _ := cmd.Flags().GetInt("limit")
			format, _ := cmd.Flags().GetString("format")

			taxonomyService, cleanup, err := resolveService(service)
			if err != nil {
				return err
			}
			defer cleanup()

			tags, err := taxonomyService.ListPrimaryTags(context.Background(), taxonomy.ListPrimaryTagsInput{
				MasterTagID: args[0],
				Search:      search,
				Limit:       limit,
			})
			if err != nil {
				return fmt.Errorf("failed to list primary tags: %w", err)
			}

			if format == "json" {
				return printJSON(cmd, tags)
			}

			if len(tags) == 0 {
				cmd.Println("No primary tags found for master tag", args[0])
				return nil
			}
			for _, p := range tags {
				cmd.Printf("%s  %s  impressions=%d\n", p.ID, p.DisplayName, p.ImpressionCount)
				for _, s := range p.SecondaryTags {
					cmd.Printf("    secondary: %s\n", s.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("search", "", "Case-insensitive name filter")
	cmd.Flags().Int("limit", 20, "Maximum number of instances to list")
	cmd.Flags().String("format", "text", "Output format (text, json)")

	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format as JSON: %w", err)
	}
	cmd.Println(string(output))
	return nil
}
