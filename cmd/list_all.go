package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meltforce/immich-bulk-share-cli/pkg/sharing"
	"github.com/meltforce/immich-bulk-share-cli/pkg/sheet"
)

var listOutput string

var listAllCmd = &cobra.Command{
	Use:   "list-all",
	Short: "Export the current album sharing state to a CSV file",
	Args:  cobra.NoArgs,
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

		log.Info("fetching albums")
		albums, err := client.Albums(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching albums: %w", err)
		}
		if len(albums) == 0 {
			log.Info("no albums found")
			return nil
		}

		exporter := &sharing.Exporter{Log: log}
		rows := exporter.Export(albums)

		output := listOutput
		if output == "" {
			output = fmt.Sprintf("albums_%s.csv", time.Now().Format("20060102_150405"))
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()

		if err := sheet.Write(f, rows); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}

		log.Info("created CSV file",
			zap.String("file", output),
			zap.Int("albums", len(albums)),
			zap.Int("rows", len(rows)),
			zap.Int("max_users", sheet.MaxUsers(rows)))
		return nil
	},
}

func init() {
	listAllCmd.Flags().StringVar(&listOutput, "output", "", "Output CSV file name (default albums_<timestamp>.csv)")
	rootCmd.AddCommand(listAllCmd)
}
