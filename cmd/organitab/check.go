package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/organitab/internal/app"
	"github.com/nikbrunner/organitab/internal/culler"
	"github.com/nikbrunner/organitab/internal/storage"
)

func newCheckCmd(e *env) *cobra.Command {
	var (
		concurrency int
		timeout     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Find dead links among saved tabs and bookmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			errOut := cmd.ErrOrStderr()
			results, err := e.app.CheckLinks(cmd.Context(), app.CheckOptions{
				Concurrency:    concurrency,
				Timeout:        timeout,
				ExcludeDomains: e.cfg.CullExcludeDomains,
				OnProgress: func(completed, total int) {
					fmt.Fprintf(errOut, "\rChecking %d/%d", completed, total)
				},
			})
			if err != nil {
				return err
			}
			if len(results) > 0 {
				fmt.Fprintln(errOut)
			}

			out := cmd.OutOrStdout()
			var bad int
			for _, r := range results {
				if r.Status == culler.Healthy {
					continue
				}
				bad++
				where := "bookmark"
				if r.Target.Group != "" {
					where = r.Target.Group
					if r.Target.Folder != "" {
						where = r.Target.Folder + " / " + where
					}
				}
				detail := r.Error
				if r.StatusCode != 0 {
					detail = fmt.Sprintf("HTTP %d", r.StatusCode)
				}
				fmt.Fprintf(out, "%-11s %s  (%s; %s)\n", r.Status, r.Target.URL, where, detail)
			}
			fmt.Fprintf(out, "%d of %d links need attention\n", bad, len(results))
			return nil
		},
	}
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 10, "number of parallel requests")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "timeout per request")
	return cmd
}

func newWatchCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the saved item count whenever the store changes",
		Long: `Watch the store file and print the number of saved groups, folders,
bookmarks and todos after every change. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			report := func() {
				n, err := e.app.SavedItemCount(ctx)
				if err != nil {
					e.log.WithError(err).Warn("Failed to read store")
					return
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", time.Now().Format("15:04:05"), plural(n, "saved item"))
			}
			report()
			return storage.Watch(ctx, e.dataPath, report)
		},
	}
}
