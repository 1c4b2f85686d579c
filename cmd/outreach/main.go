// Package main provides the outreach CLI: a terminal dashboard and
// one-shot commands for managing recruiter outreach through the outreach
// API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "outreach",
	Short: "Recruiter outreach dashboard",
	Long:  "Outreach manages recruiter messages and company research: list companies and messages, trigger research and reply-generation jobs, poll them to completion, and edit or send replies.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
