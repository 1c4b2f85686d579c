package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/slinkp/outreach/internal/api"
	"github.com/slinkp/outreach/internal/filter"
	"github.com/slinkp/outreach/internal/model"
	"github.com/slinkp/outreach/internal/observability"
	"github.com/slinkp/outreach/internal/task"
)

// maxConcurrentResearch bounds the research jobs running at once during
// `companies research --all`.
const maxConcurrentResearch = 4

var (
	companiesIncludeAll    bool
	companiesFilterMode    string
	researchAll            bool
	researchForceLevels    bool
	researchForceContacts  bool
	addCompanyURL          string
	addCompanyName         string
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "Manage companies",
}

var companiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies",
	RunE:  runCompaniesList,
}

var companiesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one company in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompaniesShow,
}

var companiesResearchCmd = &cobra.Command{
	Use:   "research [id]",
	Short: "Run research for a company and wait for it to finish",
	RunE:  runCompaniesResearch,
}

var companiesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Submit a new company for research by URL and/or name",
	RunE:  runCompaniesAdd,
}

var companiesMergeCmd = &cobra.Command{
	Use:   "merge <canonical-id> <duplicate-id>",
	Short: "Merge a duplicate company into its canonical record",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompaniesMerge,
}

var companiesDuplicatesCmd = &cobra.Command{
	Use:   "duplicates <id>",
	Short: "List potential duplicates of a company",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompaniesDuplicates,
}

func init() {
	companiesListCmd.Flags().BoolVar(&companiesIncludeAll, "include-all", false, "Include archived companies")
	companiesListCmd.Flags().StringVar(&companiesFilterMode, "filter", filter.CompanyModeAll, "Filter: all, promising, unreviewed, archived")
	companiesResearchCmd.Flags().BoolVar(&researchAll, "all", false, "Research every company without completed research")
	companiesResearchCmd.Flags().BoolVar(&researchForceLevels, "force-levels", false, "Re-research job levels even when cached")
	companiesResearchCmd.Flags().BoolVar(&researchForceContacts, "force-contacts", false, "Re-research contacts even when cached")
	companiesAddCmd.Flags().StringVar(&addCompanyURL, "url", "", "Company website URL")
	companiesAddCmd.Flags().StringVar(&addCompanyName, "name", "", "Company name")

	companiesCmd.AddCommand(companiesListCmd)
	companiesCmd.AddCommand(companiesShowCmd)
	companiesCmd.AddCommand(companiesResearchCmd)
	companiesCmd.AddCommand(companiesAddCmd)
	companiesCmd.AddCommand(companiesMergeCmd)
	companiesCmd.AddCommand(companiesDuplicatesCmd)
	rootCmd.AddCommand(companiesCmd)
}

func runCompaniesList(_ *cobra.Command, _ []string) error {
	client, _, _, err := newClient()
	if err != nil {
		return err
	}

	companies, err := client.ListCompanies(context.Background(), companiesIncludeAll)
	if err != nil {
		return err
	}

	companies = filter.SortCompanies(filter.Companies(companies, companiesFilterMode))
	observability.NewPrinter(os.Stdout).PrintCompanies(companies)
	return nil
}

func runCompaniesShow(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid company id %q", args[0])
	}

	client, _, _, err := newClient()
	if err != nil {
		return err
	}

	company, err := client.GetCompany(context.Background(), id)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintCompany(company)
	return nil
}

func runCompaniesResearch(_ *cobra.Command, args []string) error {
	client, poller, _, err := newClient()
	if err != nil {
		return err
	}
	ctx := context.Background()
	opts := api.ResearchOptions{ForceLevels: researchForceLevels, ForceContacts: researchForceContacts}

	if researchAll {
		return researchAllCompanies(ctx, client, poller, opts)
	}

	if len(args) != 1 {
		return fmt.Errorf("a company id is required unless --all is given")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid company id %q", args[0])
	}

	return researchOne(ctx, client, poller, id, opts)
}

func researchOne(ctx context.Context, client *api.Client, poller *task.Poller, id int64, opts api.ResearchOptions) error {
	ref, err := client.ResearchCompany(ctx, id, opts)
	if err != nil {
		return err
	}
	fmt.Printf("Research started for company %d (task %s)\n", id, ref.TaskID)

	key := task.Key{OwnerID: id, Kind: task.KindResearch}
	if _, err := waitForTask(ctx, poller, key, ref.TaskID); err != nil {
		return err
	}
	fmt.Printf("Research completed for company %d\n", id)
	return nil
}

// researchAllCompanies runs research for every company without completed
// research, a few at a time.
func researchAllCompanies(ctx context.Context, client *api.Client, poller *task.Poller, opts api.ResearchOptions) error {
	companies, err := client.ListCompanies(ctx, false)
	if err != nil {
		return err
	}

	var pending []model.Company
	for _, c := range companies {
		if c.ResearchStatus != model.ResearchStatusCompleted {
			pending = append(pending, c)
		}
	}
	if len(pending) == 0 {
		fmt.Println("All companies already researched")
		return nil
	}
	fmt.Printf("Researching %d companies...\n", len(pending))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentResearch)
	for _, c := range pending {
		c := c
		g.Go(func() error {
			if err := researchOne(ctx, client, poller, c.ID, opts); err != nil {
				// One failure should not stop the batch.
				fmt.Fprintf(os.Stderr, "company %d (%s): %v\n", c.ID, c.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func runCompaniesAdd(_ *cobra.Command, _ []string) error {
	client, poller, _, err := newClient()
	if err != nil {
		return err
	}
	ctx := context.Background()

	ref, err := client.CreateCompany(ctx, api.NewCompanyRequest{URL: addCompanyURL, Name: addCompanyName})
	if err != nil {
		return err
	}
	fmt.Printf("Company submitted for research (task %s)\n", ref.TaskID)

	key := task.Key{Kind: task.KindResearch}
	if _, err := waitForTask(ctx, poller, key, ref.TaskID); err != nil {
		return err
	}
	fmt.Println("Research completed")
	return nil
}

func runCompaniesMerge(_ *cobra.Command, args []string) error {
	canonicalID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid canonical id %q", args[0])
	}
	duplicateID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid duplicate id %q", args[1])
	}

	client, _, _, err := newClient()
	if err != nil {
		return err
	}

	company, err := client.MergeCompanies(context.Background(), canonicalID, duplicateID)
	if err != nil {
		return err
	}
	fmt.Printf("Merged company %d into %q (%d)\n", duplicateID, company.Name, company.ID)
	return nil
}

func runCompaniesDuplicates(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid company id %q", args[0])
	}

	client, _, _, err := newClient()
	if err != nil {
		return err
	}

	duplicates, err := client.PotentialDuplicates(context.Background(), id)
	if err != nil {
		return err
	}
	if len(duplicates) == 0 {
		fmt.Println("No potential duplicates found")
		return nil
	}
	for _, d := range duplicates {
		line := fmt.Sprintf("%6d  %s (%.0f%% match)", d.Company.ID, d.Company.Name, d.Confidence*100)
		if d.Reason != "" {
			line += "  " + d.Reason
		}
		fmt.Println(line)
	}
	return nil
}
