// Package pages resolves what an owner-facing dashboard route should do
// before anything is rendered.
package pages

import (
	"context"
	"errors"

	"github.com/subfolio-dev/subfolio/internal/cache"
	"github.com/subfolio-dev/subfolio/internal/data"
	"github.com/subfolio-dev/subfolio/internal/forms"
	"github.com/subfolio-dev/subfolio/internal/models"
	"github.com/subfolio-dev/subfolio/internal/types"
	"gorm.io/gorm"
)

const (
	LoginPath = "/auth/login"
	RootPath  = "/dashboard"
)

type Status int

const (
	Unauthenticated Status = iota
	NoMatchingSubdomain
	Ready
	RedirectToList
	Failed
)

type State struct {
	Status    Status
	Subdomain *models.Subdomain
	// Redirect is set for every status except Ready and Failed.
	Redirect string
	Err      error
}

// Resolve checks the session and loads the subdomain only if the actor owns it.
func Resolve(ctx context.Context, conn *gorm.DB, actor *types.AuthenticatedUser, subdomainID string, preloads ...string) State {
	if actor == nil || actor.ID == "" {
		return State{Status: Unauthenticated, Redirect: LoginPath}
	}

	subdomain, err := data.FindOwnedSubdomain(ctx, conn, subdomainID, actor.ID, preloads...)
	if errors.Is(err, data.ErrNotFound) {
		return State{Status: NoMatchingSubdomain, Redirect: RootPath}
	}
	if err != nil {
		return State{Status: Failed, Err: err}
	}

	return State{Status: Ready, Subdomain: subdomain}
}

// Finder looks a child row up within one profile.
type Finder[T any] func(ctx context.Context, conn *gorm.DB, id, profileID string) (*T, error)

type DetailState[T any] struct {
	State
	Mode  forms.Mode
	Child *T
}

// ResolveDetail extends Resolve with the id segment of a detail route. The
// literal "new" selects create mode; an id that is not under the
// subdomain's profile sends the owner back to the list.
func ResolveDetail[T any](ctx context.Context, conn *gorm.DB, actor *types.AuthenticatedUser, subdomainID, section, childID string, find Finder[T]) DetailState[T] {
	state := Resolve(ctx, conn, actor, subdomainID, "Profile")
	if state.Status != Ready {
		return DetailState[T]{State: state}
	}

	if childID == types.NewEntityToken {
		return DetailState[T]{State: state, Mode: forms.ModeCreate}
	}

	profileID := ""
	if state.Subdomain.Profile != nil {
		profileID = state.Subdomain.Profile.ID
	}

	child, err := find(ctx, conn, childID, profileID)
	if errors.Is(err, data.ErrNotFound) {
		return DetailState[T]{State: State{
			Status:    RedirectToList,
			Subdomain: state.Subdomain,
			Redirect:  cache.DashboardPath(state.Subdomain.ID, section),
		}}
	}
	if err != nil {
		return DetailState[T]{State: State{Status: Failed, Subdomain: state.Subdomain, Err: err}}
	}

	return DetailState[T]{State: state, Mode: forms.ModeEdit, Child: child}
}
