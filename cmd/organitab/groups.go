package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/organitab/internal/model"
	"github.com/nikbrunner/organitab/internal/picker"
	"github.com/nikbrunner/organitab/internal/search"
	"github.com/nikbrunner/organitab/internal/view"
)

func newGroupsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "groups",
		Aliases: []string{"ls"},
		Short:   "List folders and tab groups in the saved sort order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := e.app.View(cmd.Context())
			if err != nil {
				return err
			}
			printView(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func printView(w io.Writer, v view.View) {
	if v.Empty() {
		fmt.Fprintln(w, "No saved tab groups yet.")
		return
	}
	for _, f := range v.Folders {
		fmt.Fprintf(w, "%s/ (%d)\n", f.Name, len(f.Groups))
		if len(f.Groups) == 0 {
			fmt.Fprintln(w, "    (empty)")
		}
		for _, g := range f.Groups {
			fmt.Fprintf(w, "    %s\n", groupLine(g))
		}
	}
	for _, g := range v.Standalone {
		fmt.Fprintln(w, groupLine(g))
	}
}

func groupLine(g view.GroupItem) string {
	return fmt.Sprintf("%s  [%s, %s]", g.Name, plural(len(g.Group.Tabs), "tab"),
		g.Group.DateAdded.Time().Format("2006-01-02 15:04"))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func newSaveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> [url...]",
		Short: "Save the open tabs, or the given URLs, as a new group",
		Long: `Save tabs as a new standalone group.

Without URLs the tabs of the selected Firefox window are saved
(needs firefoxProfile in the config).

Examples:
  organitab save Research
  organitab save Docs https://go.dev/doc https://pkg.go.dev`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			var tabs []model.TabRecord
			if len(args) > 1 {
				for _, url := range args[1:] {
					tabs = append(tabs, model.TabRecord{URL: url, Title: url})
				}
			} else {
				var err error
				tabs, err = e.app.CurrentTabs(cmd.Context())
				if err != nil {
					return err
				}
			}
			if err := e.app.SaveTabs(cmd.Context(), name, tabs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s as %q\n", plural(len(tabs), "tab"), name)
			return nil
		},
	}
}

func newSaveAllCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "save-all",
		Short: "Save every open tab under a timestamp name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, n, err := e.app.SaveAllTabs(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s as %q\n", plural(n, "tab"), name)
			return nil
		},
	}
}

func newRenameCmd(e *env) *cobra.Command {
	var folder string
	cmd := &cobra.Command{
		Use:   "rename <group> <new-name>",
		Short: "Rename a tab group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.app.RenameGroup(cmd.Context(), args[0], args[1], folder); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %q to %q\n", args[0], args[1])
			return nil
		},
	}
	cmd.Flags().StringVarP(&folder, "folder", "f", "", "folder containing the group")
	return cmd
}

func newDeleteCmd(e *env) *cobra.Command {
	var folder string
	cmd := &cobra.Command{
		Use:     "delete <group>",
		Aliases: []string{"rm"},
		Short:   "Delete a tab group",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.app.DeleteGroup(cmd.Context(), args[0], folder); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&folder, "folder", "f", "", "also delete the group from this folder")
	return cmd
}

func newOpenCmd(e *env) *cobra.Command {
	var newWindow bool
	cmd := &cobra.Command{
		Use:   "open <query>",
		Short: "Open a tab group in the browser",
		Long: `Open the tabs of a group. The query matches group names exactly first,
then fuzzily; several fuzzy matches show a picker.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, ok, err := resolveGroup(cmd, e, strings.Join(args, " "))
			if err != nil || !ok {
				return err
			}
			n, err := e.app.OpenGroup(cmd.Context(), ref.Name, ref.Folder, newWindow)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s from %q\n", plural(n, "tab"), ref.Name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&newWindow, "window", "w", false, "open all tabs in a new window")
	return cmd
}

func newCopyCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <query>",
		Short: "Copy the URLs of a tab group to the clipboard",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, ok, err := resolveGroup(cmd, e, strings.Join(args, " "))
			if err != nil || !ok {
				return err
			}
			urls := make([]string, len(ref.Group.Tabs))
			for i, tab := range ref.Group.Tabs {
				urls[i] = tab.URL
			}
			if err := clipboard.WriteAll(strings.Join(urls, "\n")); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %s from %q\n", plural(len(urls), "URL"), ref.Name)
			return nil
		},
	}
}

// resolveGroup finds the group query names. Returns false when the user
// cancelled the picker.
func resolveGroup(cmd *cobra.Command, e *env, query string) (model.GroupRef, bool, error) {
	store, err := e.app.Load(cmd.Context())
	if err != nil {
		return model.GroupRef{}, false, err
	}
	if ref, ok := search.ExactGroup(store, query); ok {
		return ref, true, nil
	}

	results := search.FindGroups(store, query)
	switch len(results) {
	case 0:
		return model.GroupRef{}, false, fmt.Errorf("%w: no tab group matches %q", model.ErrNotFound, query)
	case 1:
		return results[0].Ref, true, nil
	}

	if !isTerminal() {
		names := make([]string, len(results))
		for i, r := range results {
			names[i] = r.Ref.Name
		}
		return model.GroupRef{}, false, fmt.Errorf("%q matches several groups: %s", query, strings.Join(names, ", "))
	}

	items := make([]picker.Item, len(results))
	for i, r := range results {
		title := r.Ref.Name
		if r.Ref.Folder != "" {
			title = r.Ref.Folder + " / " + r.Ref.Name
		}
		items[i] = picker.Item{Title: title, Detail: plural(len(r.Ref.Group.Tabs), "tab")}
	}
	idx, ok, err := picker.Run(fmt.Sprintf("Groups matching %q", query), items)
	if err != nil || !ok {
		return model.GroupRef{}, false, err
	}
	return results[idx].Ref, true, nil
}

func isTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
