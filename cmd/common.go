package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/meltforce/immich-bulk-share-cli/pkg/immich"
	"github.com/meltforce/immich-bulk-share-cli/pkg/logger"
)

// newLogger builds the run's logger from the --log-level flag.
func newLogger() (*zap.Logger, error) {
	l, err := logger.New(&logger.Config{Level: logLevel, Format: "console"})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return l, nil
}

// newClient validates the configured server URL, probes reachability and
// returns a ready client. Both failures abort the run before any real
// work starts.
func newClient(cmd *cobra.Command, log *zap.Logger) (*immich.Client, error) {
	rawURL := viper.GetString("url")
	key := viper.GetString("api-key")
	if rawURL == "" || key == "" {
		_ = cmd.Usage()
		return nil, errors.New("--url and --api-key are required (or set IMMICH_URL / IMMICH_API_KEY)")
	}

	serverURL, upgraded, err := immich.ValidateServerURL(rawURL)
	if err != nil {
		return nil, err
	}
	if upgraded {
		log.Warn("switching to https for security", zap.String("url", serverURL))
	}

	client := immich.NewClient(serverURL, key)

	status, err := client.Ping(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("cannot reach the server at %s: %w", serverURL, err)
	}
	if status != http.StatusOK {
		log.Warn("server responded with unexpected status", zap.Int("status", status))
	}

	return client, nil
}
