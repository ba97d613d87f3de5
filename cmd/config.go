package cmd

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/tagscribe/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration settings",
	Long:  `Manage configuration settings for tagscribe.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init [DATABASE_URL]",
	Short: "Initialize configuration file",
	Long:  `Create a new configuration file with database connection settings.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var databaseURL string
		if len(args) > 0 {
			databaseURL = args[0]
		}

		if err := config.InitConfig(databaseURL); err != nil {
			return err
		}

		configPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		cmd.Printf("Created configuration file: %s\n", configPath)
		cmd.Println("Please edit the database_url in this file to match your PostgreSQL database.")

		return nil
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration file path and the effective settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		cmd.Printf("Configuration file: %s\n\n", configPath)

		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}

		cmd.Printf("DATABASE_URL: %s\n", redactURL(cfg.DatabaseURL))
		if cfg.RedisURL != "" {
			cmd.Printf("REDIS_URL: %s\n", redactURL(cfg.RedisURL))
		} else {
			cmd.Println("REDIS_URL: (disabled)")
		}
		cmd.Printf("DATABASE_POOL: %d-%d conns, connect timeout %s\n", cfg.Database.MinConns, cfg.Database.MaxConns, cfg.Database.ConnectTimeout)
		cmd.Printf("HTTP_ADDR: %s\n", cfg.Server.Addr)
		cmd.Printf("LOG: %s/%s\n", cfg.Log.Mode, cfg.Log.Level)
		cmd.Printf("RATE_LIMIT: %.1f rps, burst %d\n", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		cmd.Printf("ANALYTICS_CACHE_TTL: %s\n", cfg.Analytics.CacheTTL)
		cmd.Printf("TRACING: %t\n", cfg.Tracing.Enabled)

		return nil
	},
}

// redactURL hides the password of a connection URL
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
