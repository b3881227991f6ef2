package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Resolver decides which content project a run operates on: an explicit
// name, the active project, or whatever the user picks through the menu.
type Resolver struct {
	store    *Store
	asker    Asker
	scaffold *Scaffolder
	logger   *slog.Logger
}

// NewResolver creates a Resolver. A nil asker makes resolution
// non-interactive: only explicit names and the active project are used.
// A nil scaffold disables the create action.
func NewResolver(store *Store, asker Asker, scaffold *Scaffolder, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{store: store, asker: asker, scaffold: scaffold, logger: logger}
}

// Resolve returns the project named name, or asks the user when name is
// empty. Selecting or creating a project through the menu updates the
// active marker; a newly created project is only activated if the user
// agrees.
func (r *Resolver) Resolve(ctx context.Context, name string) (ContentProject, error) {
	if name != "" {
		return r.store.Get(name)
	}

	active, err := r.activeName()
	if err != nil {
		return ContentProject{}, err
	}

	if r.asker == nil {
		if active == "" {
			return ContentProject{}, ErrNoActiveProject
		}
		return r.store.Get(active)
	}

	action, err := ChooseAction(r.asker, active)
	if err != nil {
		return ContentProject{}, err
	}
	r.logger.Debug("menu action chosen", "action", action, "active", active)

	switch action {
	case ActionSelect:
		return r.Select()
	case ActionCreate:
		return r.Create(ctx)
	default:
		return r.store.Get(active)
	}
}

// Select lists the projects, asks for one and makes it active.
func (r *Resolver) Select() (ContentProject, error) {
	if r.asker == nil {
		return ContentProject{}, fmt.Errorf("select project: no interactive input available")
	}
	names, err := r.store.List()
	if err != nil {
		return ContentProject{}, err
	}
	name, err := ChooseProject(r.asker, names)
	if err != nil {
		return ContentProject{}, err
	}
	if err := r.store.SetActive(name); err != nil {
		return ContentProject{}, err
	}
	return r.store.Get(name)
}

// Create runs the new-project questions, scaffolds the project and offers to
// make it active.
func (r *Resolver) Create(ctx context.Context) (ContentProject, error) {
	if r.asker == nil {
		return ContentProject{}, fmt.Errorf("create project: no interactive input available")
	}
	if r.scaffold == nil {
		return ContentProject{}, fmt.Errorf("create project: scaffolding unavailable")
	}
	answers, err := AskNewProject(r.asker, r.store.Exists)
	if err != nil {
		return ContentProject{}, err
	}
	res, err := r.scaffold.Create(ctx, ScaffoldOptions{
		Name:     answers.Name,
		BundleID: answers.BundleID,
		Color:    answers.Color,
	})
	if err != nil {
		return ContentProject{}, err
	}
	notify(r.asker, "Created project %s.", answers.Name)

	activate, err := Confirm(r.asker, fmt.Sprintf("Set %s as the default project?", answers.Name))
	if err != nil {
		return ContentProject{}, err
	}
	if activate {
		if err := r.store.SetActive(answers.Name); err != nil {
			return ContentProject{}, err
		}
	}
	return res.Project, nil
}

// activeName returns the active project if it still exists. A marker that
// names a deleted project is treated as no active project.
func (r *Resolver) activeName() (string, error) {
	active, err := r.store.Active()
	if errors.Is(err, ErrNoActiveProject) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !r.store.Exists(active) {
		r.logger.Warn("active project marker names a missing project", "name", active)
		return "", nil
	}
	return active, nil
}
