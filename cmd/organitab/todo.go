package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/organitab/internal/model"
)

func newTodoCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the todo list",
	}
	cmd.AddCommand(newTodoAddCmd(e))
	cmd.AddCommand(newTodoListCmd(e))
	cmd.AddCommand(newTodoDoneCmd(e))
	cmd.AddCommand(newTodoDeleteCmd(e))
	return cmd
}

func newTodoAddCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			todo, err := e.app.AddTodo(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q\n", todo.Text)
			return nil
		},
	}
}

func newTodoListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos, open ones first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			todos, err := e.app.Todos(cmd.Context())
			if err != nil {
				return err
			}
			if len(todos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to do.")
				return nil
			}
			for i, todo := range todos {
				mark := " "
				if todo.Completed {
					mark = "x"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%2d [%s] %s\n", i+1, mark, todo.Text)
			}
			return nil
		},
	}
}

func newTodoDoneCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "done <number|id>",
		Short: "Toggle whether a todo is completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTodo(cmd, e, args[0])
			if err != nil {
				return err
			}
			done, err := e.app.ToggleTodo(cmd.Context(), id)
			if err != nil {
				return err
			}
			state := "open"
			if done {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s\n", state)
			return nil
		},
	}
}

func newTodoDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <number|id>",
		Aliases: []string{"rm"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTodo(cmd, e, args[0])
			if err != nil {
				return err
			}
			if err := e.app.DeleteTodo(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted todo")
			return nil
		},
	}
}

// resolveTodo maps a position from "todo list" to its id. Anything else is
// taken as an id.
func resolveTodo(cmd *cobra.Command, e *env, arg string) (model.TodoID, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return model.TodoID(arg), nil
	}
	todos, err := e.app.Todos(cmd.Context())
	if err != nil {
		return "", err
	}
	if n < 1 || n > len(todos) {
		return model.TodoID(arg), nil
	}
	return todos[n-1].ID, nil
}
