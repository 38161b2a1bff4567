package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// TodoID identifies a todo item. Files written by the browser extension use
// numeric ids; they are kept as their literal text.
type TodoID string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *TodoID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TodoID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("todo id: %w", err)
	}
	*id = TodoID(n.String())
	return nil
}

// TodoItem is an entry of the todo list, unique by text on merge.
type TodoItem struct {
	ID        TodoID    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	DateAdded Timestamp `json:"dateAdded"`
}

func newTodoID() TodoID {
	return TodoID(uuid.New().String())
}

// AddTodo puts a new todo at the front of the list.
func (s *Store) AddTodo(text string) (TodoItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return TodoItem{}, fmt.Errorf("%w: todo text is empty", ErrValidation)
	}
	item := TodoItem{
		ID:        newTodoID(),
		Text:      text,
		DateAdded: stamp(),
	}
	s.Todos = append([]TodoItem{item}, s.Todos...)
	return item, nil
}

// GetTodoByID finds a todo by ID, returns nil if not found.
func (s *Store) GetTodoByID(id TodoID) *TodoItem {
	for i := range s.Todos {
		if s.Todos[i].ID == id {
			return &s.Todos[i]
		}
	}
	return nil
}

// ToggleTodo flips the completed state of a todo and returns the new state.
func (s *Store) ToggleTodo(id TodoID) (bool, error) {
	todo := s.GetTodoByID(id)
	if todo == nil {
		return false, fmt.Errorf("%w: todo %q", ErrNotFound, id)
	}
	todo.Completed = !todo.Completed
	return todo.Completed, nil
}

// DeleteTodo removes a todo by ID.
func (s *Store) DeleteTodo(id TodoID) error {
	for i := range s.Todos {
		if s.Todos[i].ID == id {
			s.Todos = append(s.Todos[:i], s.Todos[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: todo %q", ErrNotFound, id)
}

// SortedTodos returns incomplete todos first, newest first within each part.
func (s *Store) SortedTodos() []TodoItem {
	sorted := make([]TodoItem, len(s.Todos))
	copy(sorted, s.Todos)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Completed != sorted[j].Completed {
			return !sorted[i].Completed
		}
		return sorted[i].DateAdded > sorted[j].DateAdded
	})
	return sorted
}
