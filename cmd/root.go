// Package cmd wires up the CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/meltforce/immich-bulk-share-cli/pkg/logger"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "immich-bulk-share",
	Short: "Synchronize Immich album sharing permissions with a CSV sheet",
	Long: `immich-bulk-share reconciles the sharing permissions of Immich albums
with a desired state declared in a semicolon-delimited CSV file, and can
export the current sharing state into the same format.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Console encoding with development config gives readable
		// timestamps for a CLI tool.
		l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("url", "", "Base URL of the Immich server (or IMMICH_URL)")
	rootCmd.PersistentFlags().String("api-key", "", "Immich API key (or IMMICH_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	_ = viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))
	_ = viper.BindPFlag("api-key", rootCmd.PersistentFlags().Lookup("api-key"))
}

func initConfig() {
	// A .env file next to the binary is convenient for the API key.
	_ = godotenv.Load()

	viper.SetEnvPrefix("IMMICH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
