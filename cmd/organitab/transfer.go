package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/organitab/internal/app"
	"github.com/nikbrunner/organitab/internal/exporter"
	"github.com/nikbrunner/organitab/internal/importer"
	"github.com/nikbrunner/organitab/internal/model"
	"github.com/nikbrunner/organitab/internal/picker"
	"github.com/nikbrunner/organitab/internal/view"
)

func newExportCmd(e *env) *cobra.Command {
	var asHTML bool
	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Write a JSON backup, or a bookmark HTML file with --html",
		Long: `Export all saved data. Without a path the file goes to exportDir from the
config, or ~/Downloads, named after the current time.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := time.Now()

			var (
				data []byte
				path string
				err  error
			)
			if asHTML {
				var doc string
				doc, err = e.app.ExportHTML(ctx)
				data = []byte(doc)
			} else {
				data, err = e.app.Export(ctx)
			}
			if err != nil {
				return err
			}

			if len(args) == 1 {
				path = args[0]
			} else if asHTML {
				path, err = exporter.DefaultHTMLExportPath(e.cfg.ExportDir, now)
			} else {
				path, err = exporter.DefaultExportPath(e.cfg.ExportDir, now)
			}
			if err != nil {
				return err
			}

			if err := exporter.WriteFile(path, data); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "export Netscape bookmark HTML instead of JSON")
	return cmd
}

func newImportCmd(e *env) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON backup by merging or overwriting",
		Long: `Import a backup written by "organitab export" or the browser extension.

merge keeps everything already saved; colliding group and folder names get
an "(Imported N)" suffix, and known bookmark URLs and todo texts are skipped.
overwrite replaces all saved data with the backup.

Without --mode an interactive terminal asks which to use.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imported, err := importer.ReadBackupFile(args[0])
			if err != nil {
				return err
			}

			importMode, ok, err := chooseImportMode(mode)
			if err != nil || !ok {
				if err == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "Import cancelled")
				}
				return err
			}

			report, err := e.app.Import(cmd.Context(), imported, importMode)
			if err != nil {
				return err
			}
			printReport(cmd, importMode, report)
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "merge or overwrite")
	return cmd
}

func chooseImportMode(flag string) (app.ImportMode, bool, error) {
	if flag != "" {
		m, err := app.ParseImportMode(flag)
		return m, err == nil, err
	}
	if !isTerminal() {
		return "", false, fmt.Errorf("%w: --mode is required when not running in a terminal", model.ErrValidation)
	}
	items := []picker.Item{
		{Title: "Merge", Detail: "keep saved data and add the backup"},
		{Title: "Overwrite", Detail: "replace saved data with the backup"},
		{Title: "Cancel"},
	}
	idx, ok, err := picker.Run("Import mode", items)
	if err != nil || !ok {
		return "", false, err
	}
	switch idx {
	case 0:
		return app.ImportMerge, true, nil
	case 1:
		return app.ImportOverwrite, true, nil
	}
	return "", false, nil
}

func printReport(cmd *cobra.Command, mode app.ImportMode, r model.MergeReport) {
	out := cmd.OutOrStdout()
	if mode == app.ImportOverwrite {
		fmt.Fprintln(out, "Replaced saved data with the backup")
		return
	}
	fmt.Fprintf(out, "Merged: %s, %s, %s, %s\n",
		plural(r.GroupsAdded, "group"), plural(r.FoldersAdded, "folder"),
		plural(r.BookmarksAdded, "bookmark"), plural(r.TodosAdded, "todo"))

	names := make([]string, 0, len(r.Renamed))
	for from := range r.Renamed {
		names = append(names, from)
	}
	sort.Strings(names)
	for _, from := range names {
		fmt.Fprintf(out, "  renamed %q to %q\n", from, r.Renamed[from])
	}
	if n := len(r.SkippedBookmarks) + len(r.SkippedTodos); n > 0 {
		fmt.Fprintf(out, "  skipped %d already saved (%d bookmarks, %d todos)\n",
			n, len(r.SkippedBookmarks), len(r.SkippedTodos))
	}
}

func newSortCmd(e *env) *cobra.Command {
	orders := make([]string, len(view.SortOrders))
	for i, o := range view.SortOrders {
		orders[i] = string(o)
	}
	return &cobra.Command{
		Use:       "sort [order]",
		Short:     "Show or set the group sort order",
		Long:      "Show or set the group sort order. Orders: " + strings.Join(orders, ", "),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: orders,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				order, err := e.app.SortOrder(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), order)
				return nil
			}
			order, err := e.app.SetSortOrder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sorting groups by %s\n", order)
			return nil
		},
	}
}
