package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meltforce/immich-bulk-share-cli/pkg/directory"
	"github.com/meltforce/immich-bulk-share-cli/pkg/sharing"
	"github.com/meltforce/immich-bulk-share-cli/pkg/sheet"
)

var (
	shareInput       string
	shareDryRun      bool
	shareConcurrency int
)

var shareAlbumsCmd = &cobra.Command{
	Use:   "share-albums",
	Short: "Reconcile album sharing permissions with a desired-state CSV",
	Long: `share-albums reads a desired-state CSV and brings each listed album's
sharing permissions in line with it: users missing from the sheet are
removed, users with a different or no role are shared with the declared
role. Individual call failures are reported at the end and never abort
the run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		client, err := newClient(cmd, log)
		if err != nil {
			return err
		}

		if shareInput == "" {
			_ = cmd.Usage()
			return errors.New("--input file is required")
		}

		f, err := os.Open(shareInput)
		if err != nil {
			return fmt.Errorf("opening input file: %w", err)
		}
		defer f.Close()

		rows, err := sheet.Read(f)
		if err != nil {
			return fmt.Errorf("reading %s: %w", shareInput, err)
		}

		log.Info("fetching user email to id mapping")
		dir, err := directory.Build(cmd.Context(), client)
		if err != nil {
			return fmt.Errorf("building user directory: %w", err)
		}
		log.Info("loaded user directory", zap.Int("users", len(dir)))

		rec := &sharing.Reconciler{
			API:         client,
			Directory:   dir,
			Log:         log,
			Concurrency: shareConcurrency,
			DryRun:      shareDryRun,
		}
		stats := rec.Run(cmd.Context(), sharing.Desired(rows))

		log.Info("operation completed",
			zap.Int("albums_processed", stats.AlbumsProcessed),
			zap.Int("shares_succeeded", stats.SharesSucceeded),
			zap.Int("shares_failed", stats.SharesFailed),
			zap.Int("removals_succeeded", stats.RemovalsSucceeded),
			zap.Int("removals_failed", stats.RemovalsFailed))
		if unresolved := stats.Unresolved(); len(unresolved) > 0 {
			log.Warn("users not found in directory", zap.Strings("emails", unresolved))
		}
		return nil
	},
}

func init() {
	shareAlbumsCmd.Flags().StringVar(&shareInput, "input", "", "Input CSV file with the desired sharing state")
	shareAlbumsCmd.Flags().BoolVar(&shareDryRun, "dry-run", false, "Log planned mutations without performing them")
	shareAlbumsCmd.Flags().IntVar(&shareConcurrency, "concurrency", 1, "Number of albums reconciled in parallel")
	rootCmd.AddCommand(shareAlbumsCmd)
}
