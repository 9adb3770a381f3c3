// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package browser is the in-process boundary between a front-end and the catalog core.

A [Session] owns one user's filter selection and form state. Front-ends raise
intents (search, filter, sort, edit, save, delete, toggle) and render [View]
plus the [Notification] emitted after each mutation.
*/
package browser

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/cinedex/internal/core/category"
	"github.com/taibuivan/cinedex/internal/core/genre"
	"github.com/taibuivan/cinedex/internal/core/movie"
	"github.com/taibuivan/cinedex/internal/platform/apperr"
)

// # Form State

// FormMode tells whether the item form is closed, creating or editing.
type FormMode string

const (
	FormClosed FormMode = ""
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)

// Form is the open item form, if any.
type Form struct {
	Mode     FormMode          `json:"mode"`
	TargetID string            `json:"target_id,omitempty"`
	Fields   movie.WriteFields `json:"fields"`
}

// # Outbound

// View is everything a front-end needs to render the browser.
type View struct {
	Items      []movie.Movie   `json:"items"`
	Total      int             `json:"total"`
	Featured   []movie.Movie   `json:"featured"`
	Genres     []genre.Genre   `json:"genres"`
	Categories category.Groups `json:"categories"`
	Criteria   movie.Criteria  `json:"criteria"`
	Form       Form            `json:"form"`
}

// Notification reports the end of one mutation.
type Notification struct {
	Op  string
	ID  string
	Err error
}

// OK reports whether the mutation fully succeeded.
func (n Notification) OK() bool {
	return n.Err == nil
}

// Notifier receives mutation notifications.
type Notifier interface {
	Notify(context context.Context, notification Notification)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(context context.Context, notification Notification)

// Notify calls f.
func (f NotifierFunc) Notify(context context.Context, notification Notification) {
	f(context, notification)
}

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify logs the notification at info or warn level.
func (n LogNotifier) Notify(context context.Context, notification Notification) {
	if notification.OK() {
		n.Logger.InfoContext(context, "session_mutation_succeeded",
			slog.String("operation", notification.Op),
			slog.String("id", notification.ID),
		)
		return
	}
	n.Logger.WarnContext(context, "session_mutation_failed",
		slog.String("operation", notification.Op),
		slog.String("id", notification.ID),
		slog.String("code", apperr.CodeOf(notification.Err)),
		slog.String("error", notification.Err.Error()),
	)
}

// # Session

// Session is one user's browsing state over a shared catalog.
//
// It is meant for front-ends embedding the catalog in-process; the HTTP API
// in internal/api talks to [movie.Service] directly.
//
// Intents are safe for concurrent use. The lock only guards criteria and form
// state and is never held across a store call.
type Session struct {
	mu            sync.Mutex
	service       *movie.Service
	notifier      Notifier
	featuredLimit int
	criteria      movie.Criteria
	form          Form
	now           func() time.Time
}

// NewSession starts a session with default criteria and a closed form.
// A nil notifier logs through slog.Default.
func NewSession(service *movie.Service, notifier Notifier, featuredLimit int) *Session {
	if notifier == nil {
		notifier = LogNotifier{Logger: slog.Default()}
	}
	return &Session{
		service:       service,
		notifier:      notifier,
		featuredLimit: featuredLimit,
		criteria:      movie.DefaultCriteria(),
		now:           time.Now,
	}
}

// # Criteria Intents

// Search sets the free-text filter.
func (session *Session) Search(text string) {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.criteria.Search = text
}

// FilterChanged sets one filter field. Invalid input leaves the criteria unchanged.
func (session *Session) FilterChanged(field, value string) error {
	session.mu.Lock()
	defer session.mu.Unlock()

	next, err := session.criteria.With(field, value)
	if err != nil {
		return err
	}
	session.criteria = next
	return nil
}

// SortChanged selects the ordering. An empty key restores the default.
func (session *Session) SortChanged(key string) error {
	return session.FilterChanged(movie.FilterSort, key)
}

// ResetFilters restores the default criteria.
func (session *Session) ResetFilters() {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.criteria = movie.DefaultCriteria()
}

// # Form Intents

// CreateRequested opens a blank form.
func (session *Session) CreateRequested() {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.form = Form{Mode: FormCreate, Fields: movie.NewWriteFields(session.now())}
}

// EditRequested opens the form prefilled from a held item.
func (session *Session) EditRequested(id string) error {
	item, err := session.service.Get(id)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.form = Form{Mode: FormEdit, TargetID: id, Fields: movie.EditFields(item)}
	return nil
}

// CancelForm closes the form without saving.
func (session *Session) CancelForm() {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.form = Form{}
}

/*
SaveRequested submits the form.

Description: With no edit target the fields create a new item, otherwise
they update the target. The form closes on success. If a create commits but
its genres fail, the form switches to editing the new item so the next save
repairs it instead of creating a duplicate.

Parameters:
  - context: context.Context
  - fields: movie.WriteFields

Returns:
  - error: The coordinator's error, also sent to the notifier
*/
func (session *Session) SaveRequested(context context.Context, fields movie.WriteFields) error {
	session.mu.Lock()
	form := session.form
	session.mu.Unlock()

	var (
		item movie.Movie
		err  error
		op   string
	)
	if form.Mode == FormEdit && form.TargetID != "" {
		op = movie.OpUpdate
		item, err = session.service.Update(context, form.TargetID, fields)
	} else {
		op = movie.OpCreate
		item, err = session.service.Create(context, fields)
	}

	session.mu.Lock()
	switch {
	case err == nil:
		session.form = Form{}
	case apperr.IsCode(err, apperr.CodePartialRelation):
		session.form = Form{Mode: FormEdit, TargetID: item.ID, Fields: fields}
	case apperr.IsCode(err, apperr.CodeNotFound):
		session.form = Form{}
	default:
		session.form.Fields = fields
	}
	session.mu.Unlock()

	id := item.ID
	if id == "" {
		id = form.TargetID
	}
	session.notifier.Notify(context, Notification{Op: op, ID: id, Err: err})
	return err
}

// # Mutation Intents

// DeleteRequested deletes an item.
func (session *Session) DeleteRequested(context context.Context, id string) error {
	err := session.service.Delete(context, id)

	if err == nil {
		session.mu.Lock()
		if session.form.TargetID == id {
			session.form = Form{}
		}
		session.mu.Unlock()
	}

	session.notifier.Notify(context, Notification{Op: movie.OpDelete, ID: id, Err: err})
	return err
}

// ToggleRequested flips one marker on an item.
func (session *Session) ToggleRequested(context context.Context, flag movie.Flag, id string) error {
	_, err := session.service.Toggle(context, flag, id)
	session.notifier.Notify(context, Notification{Op: movie.OpToggle, ID: id, Err: err})
	return err
}

// Refresh reloads the shared catalog from the store.
func (session *Session) Refresh(context context.Context) error {
	err := session.service.Refresh(context)
	session.notifier.Notify(context, Notification{Op: movie.OpRefresh, Err: err})
	return err
}

// # Rendering

// View derives the visible list for the current criteria.
func (session *Session) View() View {
	session.mu.Lock()
	criteria := session.criteria
	form := session.form
	session.mu.Unlock()

	catalog := session.service.Catalog()
	items := catalog.Items()
	visible := movie.Derive(items, criteria)

	return View{
		Items:      visible,
		Total:      len(visible),
		Featured:   movie.Featured(items, session.featuredLimit),
		Genres:     catalog.Genres(),
		Categories: category.Partition(catalog.Categories()),
		Criteria:   criteria,
		Form:       form,
	}
}
