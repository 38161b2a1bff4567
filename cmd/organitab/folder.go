package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newFolderCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Create, edit and delete folders of tab groups",
	}
	cmd.AddCommand(newFolderCreateCmd(e))
	cmd.AddCommand(newFolderEditCmd(e))
	cmd.AddCommand(newFolderDeleteCmd(e))
	return cmd
}

func newFolderCreateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> [group...]",
		Short: "Create a folder, moving the given standalone groups into it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skipped, err := e.app.CreateFolder(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}
			moved := len(args) - 1 - len(skipped)
			fmt.Fprintf(cmd.OutOrStdout(), "Created folder %q with %s\n", args[0], plural(moved, "group"))
			if len(skipped) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped (not standalone): %s\n", strings.Join(skipped, ", "))
			}
			return nil
		},
	}
}

func newFolderEditCmd(e *env) *cobra.Command {
	var newName string
	cmd := &cobra.Command{
		Use:   "edit <name> [group...]",
		Short: "Set the groups of a folder, optionally renaming it",
		Long: `Set the folder's groups to exactly the given list. Listed standalone groups
move in; groups no longer listed move back to standalone.

Examples:
  organitab folder edit Work Docs Reviews
  organitab folder edit Work --rename Job Docs`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			target := name
			if newName != "" {
				target = newName
			}
			edit, err := e.app.EditFolder(cmd.Context(), name, target, args[1:])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Updated folder %q: %d kept, %d added, %d released\n",
				target, len(edit.Retained), len(edit.Added), len(edit.Released))
			if len(edit.Dropped) > 0 {
				fmt.Fprintf(out, "Dropped (standalone group with same name kept): %s\n", strings.Join(edit.Dropped, ", "))
			}
			if len(edit.Skipped) > 0 {
				fmt.Fprintf(out, "Skipped (not found): %s\n", strings.Join(edit.Skipped, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&newName, "rename", "", "new folder name")
	return cmd
}

func newFolderDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a folder; its groups become standalone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dropped, err := e.app.DeleteFolder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted folder %q\n", args[0])
			if len(dropped) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Dropped (standalone group with same name kept): %s\n", strings.Join(dropped, ", "))
			}
			return nil
		},
	}
}
