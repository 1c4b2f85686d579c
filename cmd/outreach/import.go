package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slinkp/outreach/internal/model"
	"github.com/slinkp/outreach/internal/observability"
	"github.com/slinkp/outreach/internal/task"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import companies from the configured spreadsheet",
	Long:  `Start a background import of companies from the server's configured spreadsheet, wait for it to finish, and print the per-item counters.`,
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, _ []string) error {
	client, poller, _, err := newClient()
	if err != nil {
		return err
	}
	ctx := context.Background()

	ref, err := client.ImportCompanies(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Import started (task %s)...\n", ref.TaskID)

	key := task.Key{Kind: task.KindImport}
	t, err := waitForTask(ctx, poller, key, ref.TaskID)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintImportSummary(model.ImportSummaryFrom(t.Result))
	return nil
}
