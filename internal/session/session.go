// Package session holds the state a task list view works against: the
// selected category, the active label bundle, the entry form, and the
// dialogs used to report errors and ask for replacement text.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/tasklist/internal/form"
	"github.com/mesh-intelligence/tasklist/internal/locale"
	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(ctx context.Context, msg string) error
}

// Prompter asks the user for a line of text. ok is false when the user
// cancels the dialog.
type Prompter interface {
	Prompt(ctx context.Context, msg, def string) (answer string, ok bool, err error)
}

// Dialogs combines both dialog kinds.
type Dialogs interface {
	Alerter
	Prompter
}

// Row is one entry of the filtered view.
type Row struct {
	Position int
	Task     types.Task
}

// UpdateRequest describes a pending update dialog.
type UpdateRequest struct {
	ID      string
	Message string
	Default string
}

// Session is the view state. It is not safe for concurrent use.
type Session struct {
	Store    types.TaskStore
	Form     *form.Form
	Locales  *locale.Registry
	Locale   *locale.Bundle
	Category types.Category
	dialogs  Dialogs
}

// New returns a session showing every category in the given bundle.
func New(store types.TaskStore, locales *locale.Registry, bundle *locale.Bundle, dialogs Dialogs) *Session {
	return &Session{
		Store:    store,
		Form:     form.New(store),
		Locales:  locales,
		Locale:   bundle,
		Category: types.CategoryAll,
		dialogs:  dialogs,
	}
}

// SelectCategory changes both the filter and the category new tasks get.
func (s *Session) SelectCategory(c types.Category) error {
	for _, o := range types.Categories {
		if o == c {
			s.Category = c
			return nil
		}
	}
	return types.ErrInvalidCategory
}

// SetLocale switches the active bundle. The choice is not persisted.
func (s *Session) SetLocale(code string) error {
	b, err := s.Locales.Get(code)
	if err != nil {
		return err
	}
	s.Locale = b
	return nil
}

// Submit puts text into the form and submits it with the selected category.
// Validation failures are shown through the Alerter and returned.
func (s *Session) Submit(ctx context.Context, text string) (types.Task, error) {
	s.Form.SetInput(text)
	task, err := s.Form.Submit(s.Category)
	if err != nil {
		if msg := s.Locale.Error(err); msg != "" {
			if aerr := s.dialogs.Alert(ctx, msg); aerr != nil {
				return types.Task{}, errors.Join(err, aerr)
			}
		}
		return types.Task{}, err
	}
	return task, nil
}

// Delete removes the task with the given ID.
func (s *Session) Delete(id string) error {
	return s.Store.Delete(id)
}

// BeginUpdate prepares the prompt for replacing the text of task id.
func (s *Session) BeginUpdate(id string) (UpdateRequest, error) {
	t, err := s.Store.Get(id)
	if err != nil {
		return UpdateRequest{}, err
	}
	return UpdateRequest{ID: id, Message: s.Locale.Labels.UpdatePrompt, Default: t.Item}, nil
}

// FinishUpdate applies the dialog result. A cancelled dialog or an empty
// answer leaves the task untouched and reports false. The category is kept
// and no duplicate check is made.
func (s *Session) FinishUpdate(req UpdateRequest, answer string, ok bool) (bool, error) {
	if !ok || answer == "" {
		return false, nil
	}
	t, err := s.Store.Get(req.ID)
	if err != nil {
		return false, err
	}
	if err := s.Store.Update(req.ID, answer, t.Category); err != nil {
		return false, fmt.Errorf("update %s: %w", req.ID, err)
	}
	return true, nil
}

// Update asks the Prompter for new text for task id and applies it.
func (s *Session) Update(ctx context.Context, id string) (bool, error) {
	req, err := s.BeginUpdate(id)
	if err != nil {
		return false, err
	}
	answer, ok, err := s.dialogs.Prompt(ctx, req.Message, req.Default)
	if err != nil {
		return false, err
	}
	return s.FinishUpdate(req, answer, ok)
}

// Rows returns the tasks passing the selected category.
func (s *Session) Rows() []Row {
	var rows []Row
	for pos, t := range s.Store.Entries(s.Category) {
		rows = append(rows, Row{Position: pos, Task: t})
	}
	return rows
}
