package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/tagscribe/internal/config"
	"github.com/Taichi-iskw/tagscribe/migrations"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
	Long:  `Apply or roll back the embedded SQL migrations against DATABASE_URL.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		databaseURL, err := loadDatabaseURL()
		if err != nil {
			return err
		}
		if err := migrations.Up(databaseURL); err != nil {
			return err
		}
		cmd.Println("Migrations applied successfully")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		if steps < 1 {
			return fmt.Errorf("steps must be at least 1")
		}

		databaseURL, err := loadDatabaseURL()
		if err != nil {
			return err
		}
		if err := migrations.Down(databaseURL, steps); err != nil {
			return err
		}
		cmd.Printf("Rolled back %d migration(s)\n", steps)
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		databaseURL, err := loadDatabaseURL()
		if err != nil {
			return err
		}
		v, dirty, err := migrations.Version(databaseURL)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		if v == 0 {
			cmd.Println("No migrations applied")
			return nil
		}
		cmd.Printf("Schema version: %d", v)
		if dirty {
			cmd.Print(" (dirty)")
		}
		cmd.Println()
		return nil
	},
}

func loadDatabaseURL() (string, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return "", fmt.Errorf("failed to load configuration: %w", err)
	}
	if _, err := cfg.ParseDatabaseConfig(); err != nil {
		return "", err
	}
	return cfg.DatabaseURL, nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)
	migrateDownCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
}
