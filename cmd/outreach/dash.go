package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/slinkp/outreach/internal/bus"
	"github.com/slinkp/outreach/internal/store"
	"github.com/slinkp/outreach/internal/tui"
	"github.com/slinkp/outreach/internal/urlstate"
)

var (
	dashState      string
	dashDaily      bool
	dashIncludeAll bool
)

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Open the interactive dashboard",
	Long:  `Open the terminal dashboard with a company list and a daily message view. A state string from a previous session (the "u" share key) restores its filters and position.`,
	RunE:  runDash,
}

func init() {
	dashCmd.Flags().StringVar(&dashState, "state", "", "Restore a shared view state (e.g. \"filterMode=not-replied&sort=oldest\")")
	dashCmd.Flags().BoolVar(&dashDaily, "daily", false, "Open the daily dashboard view")
	dashCmd.Flags().BoolVar(&dashIncludeAll, "include-all", false, "Include archived companies")
	rootCmd.AddCommand(dashCmd)
}

func runDash(_ *cobra.Command, _ []string) error {
	client, poller, cfg, err := newClient()
	if err != nil {
		return err
	}

	initial := urlstate.Parse(dashState)
	if dashDaily {
		initial.View = urlstate.ViewDaily
	}
	if dashIncludeAll {
		initial.IncludeAll = true
	}

	deps := tui.Deps{
		API:    client,
		Poller: poller,
		Bus:    bus.New(),
	}

	// The cache is optional; the dashboard works without it.
	if cfg.CachePath != "" {
		cache, err := store.Open(cfg.CachePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
		} else {
			deps.Cache = cache
			defer cache.Close()
		}
	}

	m := tui.New(deps, initial)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Bridge bus events into the program loop so cross-view navigation
	// arrives as ordinary messages.
	unsubscribe := deps.Bus.Subscribe(func(e bus.Event) {
		p.Send(tui.BusMsg{Event: e})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
