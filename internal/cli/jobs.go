package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sajilokaam/client-core/internal/infrastructure/api"
)

var (
	jobsSearch string
	jobsSort   string
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse the jobs board",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List open jobs, with the find-work page's search and sort",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		jobs, err := a.jobs.List(cmd.Context(), api.JobFilter{Status: "OPEN"})
		if err != nil {
			return err
		}

		jobs = api.SortJobs(api.SearchJobs(jobs, jobsSearch), jobsSort)
		if len(jobs) == 0 {
			fmt.Println("No jobs found.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tBUDGET\tPOSTED")
		for _, job := range jobs {
			fmt.Fprintf(w, "%d\t%s\t%.2f %s\t%s\n",
				job.ID, job.Title, job.Budget, job.BudgetType, job.CreatedAt.Format("2006-01-02"))
		}
		return w.Flush()
	},
}

func init() {
	jobsListCmd.Flags().StringVar(&jobsSearch, "search", "", "filter by title/description")
	jobsListCmd.Flags().StringVar(&jobsSort, "sort", api.SortNewest, "order: newest, budget-high, budget-low")
	jobsCmd.AddCommand(jobsListCmd)
	rootCmd.AddCommand(jobsCmd)
}
