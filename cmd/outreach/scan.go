package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slinkp/outreach/internal/api"
	"github.com/slinkp/outreach/internal/model"
	"github.com/slinkp/outreach/internal/observability"
	"github.com/slinkp/outreach/internal/task"
)

var (
	scanMaxMessages int
	scanDoResearch  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the recruiter mailbox for new messages",
	Long:  `Start a background scan of the recruiter mailbox, wait for it to finish, and print what it found.`,
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanMaxMessages, "max", 50, "Maximum messages to scan")
	scanCmd.Flags().BoolVar(&scanDoResearch, "research", false, "Research newly found companies")
	rootCmd.AddCommand(scanCmd)
}

func runScan(_ *cobra.Command, _ []string) error {
	client, poller, _, err := newClient()
	if err != nil {
		return err
	}
	ctx := context.Background()

	ref, err := client.ScanRecruiterEmails(ctx, api.ScanRequest{
		MaxMessages: scanMaxMessages,
		DoResearch:  scanDoResearch,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Scan started (task %s)...\n", ref.TaskID)

	key := task.Key{Kind: task.KindScan}
	t, err := waitForTask(ctx, poller, key, ref.TaskID)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintScanResult(model.ScanResultFrom(t.Result))
	return nil
}
