package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/organitab/internal/importer"
	"github.com/nikbrunner/organitab/internal/model"
	"github.com/nikbrunner/organitab/internal/picker"
	"github.com/nikbrunner/organitab/internal/search"
)

func newBookmarkCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmark",
		Aliases: []string{"bm"},
		Short:   "Manage single-page bookmarks",
	}
	cmd.AddCommand(newBookmarkAddCmd(e))
	cmd.AddCommand(newBookmarkListCmd(e))
	cmd.AddCommand(newBookmarkDeleteCmd(e))
	cmd.AddCommand(newBookmarkImportCmd(e))
	cmd.AddCommand(newBookmarkOpenCmd(e))
	return cmd
}

func newBookmarkAddCmd(e *env) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Bookmark a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			added, err := e.app.AddBookmark(cmd.Context(), model.NewBookmarkParams{URL: args[0], Title: title})
			if err != nil {
				return err
			}
			if !added {
				fmt.Fprintf(cmd.OutOrStdout(), "Already bookmarked: %s\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "bookmark title (defaults to the URL)")
	return cmd
}

func newBookmarkListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List bookmarks sorted by title",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bookmarks, err := e.app.Bookmarks(cmd.Context())
			if err != nil {
				return err
			}
			if len(bookmarks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No bookmarks yet.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, b := range bookmarks {
				fmt.Fprintf(w, "%s\t%s\n", b.Title, b.URL)
			}
			return w.Flush()
		},
	}
}

func newBookmarkDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <url>",
		Aliases: []string{"rm"},
		Short:   "Delete a bookmark",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.app.DeleteBookmark(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted bookmark %s\n", args[0])
			return nil
		},
	}
}

func newBookmarkImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import-html <file>",
		Short: "Import bookmarks from a browser HTML export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			bookmarks, err := importer.ParseHTMLBookmarks(f)
			if err != nil {
				return err
			}
			added, skipped, err := e.app.ImportBookmarks(cmd.Context(), bookmarks)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s, skipped %d\n", plural(added, "bookmark"), skipped)
			return nil
		},
	}
}

func newBookmarkOpenCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "open <query>",
		Short: "Open a bookmark found by fuzzy title search",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			store, err := e.app.Load(cmd.Context())
			if err != nil {
				return err
			}
			results := search.FindBookmarks(store, query)
			if len(results) == 0 {
				return fmt.Errorf("%w: no bookmark matches %q", model.ErrNotFound, query)
			}

			chosen := results[0].Bookmark
			if len(results) > 1 && isTerminal() {
				items := make([]picker.Item, len(results))
				for i, r := range results {
					items[i] = picker.Item{Title: r.Bookmark.Title, Detail: r.Bookmark.URL}
				}
				idx, ok, err := picker.Run(fmt.Sprintf("Bookmarks matching %q", query), items)
				if err != nil || !ok {
					return err
				}
				chosen = results[idx].Bookmark
			}

			if err := e.app.OpenBookmark(cmd.Context(), chosen.URL); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", chosen.URL)
			return nil
		},
	}
}
