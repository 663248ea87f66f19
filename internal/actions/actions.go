// Package actions implements the owner-facing writes. Every entry point
// resolves the actor, re-checks ownership of the subdomain, validates the
// payload, persists, revalidates cached pages and returns a Result instead
// of an error.
package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/subfolio-dev/subfolio/internal/cache"
	"github.com/subfolio-dev/subfolio/internal/data"
	"github.com/subfolio-dev/subfolio/internal/models"
	"github.com/subfolio-dev/subfolio/internal/types"
	"github.com/subfolio-dev/subfolio/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Kind int

const (
	KindNone Kind = iota
	KindUnauthorized
	KindNotFound
	KindInvalidInput
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindInvalidInput:
		return "invalid_input"
	case KindUnexpected:
		return "unexpected"
	default:
		return "none"
	}
}

const (
	msgUnauthorized    = "Unauthorized"
	msgInvalidFields   = "Invalid fields!"
	msgUnexpected      = "Something went wrong!"
	msgSubdomainAbsent = "Subdomain not found"
	msgProfileAbsent   = "Profile not found"
)

// Result is exactly one of Success or Error.
type Result struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`

	Kind     Kind              `json:"-"`
	Fields   map[string]string `json:"fields,omitempty"`
	ID       string            `json:"id,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

func (r Result) OK() bool {
	return r.Error == ""
}

// Error is the internal failure carried up to the Result boundary.
type Error struct {
	Kind    Kind
	Message string
	Fields  validation.FieldErrors
}

func (e *Error) Error() string {
	return e.Message
}

func unauthorized() error {
	return &Error{Kind: KindUnauthorized, Message: msgUnauthorized}
}

func notFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func invalid(message string, fields validation.FieldErrors) error {
	return &Error{Kind: KindInvalidInput, Message: message, Fields: fields}
}

// Revalidator drops cached output for the given paths.
type Revalidator interface {
	Revalidate(subdomainID string, paths ...string)
}

type Options struct {
	Revalidator Revalidator
	// SiteURL builds the public address of a subdomain for the post-create redirect.
	SiteURL func(name string) string
	Logger  *zap.Logger
}

type Actions struct {
	db          *gorm.DB
	revalidator Revalidator
	siteURL     func(string) string
	logger      *zap.Logger
}

func New(conn *gorm.DB, opts Options) *Actions {
	a := &Actions{
		db:          conn,
		revalidator: opts.Revalidator,
		siteURL:     opts.SiteURL,
		logger:      opts.Logger,
	}

	if a.logger == nil {
		a.logger = zap.NewNop()
	}

	if a.siteURL == nil {
		a.siteURL = func(name string) string { return cache.SitePath(name) }
	}

	return a
}

// outcome carries what a successful mutation reports back.
type outcome struct {
	message  string
	id       string
	redirect string
}

// run executes fn and flattens whatever happens into a Result. Panics and
// unclassified errors become the generic message.
func (a *Actions) run(op, subdomainID string, fn func() (outcome, error)) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("mutation panicked",
				zap.String("op", op),
				zap.String("subdomain_id", subdomainID),
				zap.Any("panic", r),
			)
			res = Result{Error: msgUnexpected, Kind: KindUnexpected}
		}
	}()

	out, err := fn()
	if err == nil {
		return Result{Success: out.message, ID: out.id, Redirect: out.redirect}
	}

	var actionErr *Error
	if errors.As(err, &actionErr) {
		res = Result{Error: actionErr.Message, Kind: actionErr.Kind}
		if len(actionErr.Fields) > 0 {
			res.Fields = actionErr.Fields.Map()
		}
		return res
	}

	a.logger.Error("mutation failed",
		zap.String("op", op),
		zap.String("subdomain_id", subdomainID),
		zap.Error(err),
	)
	return Result{Error: msgUnexpected, Kind: KindUnexpected}
}

// ownedSubdomain is the ownership gate shared by every mutator. A subdomain
// that exists but belongs to someone else is reported exactly like a
// missing one.
func (a *Actions) ownedSubdomain(ctx context.Context, actor *types.AuthenticatedUser, subdomainID string, preloads ...string) (*models.Subdomain, error) {
	if actor == nil || actor.ID == "" {
		return nil, unauthorized()
	}

	subdomain, err := data.FindOwnedSubdomain(ctx, a.db, subdomainID, actor.ID, preloads...)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, notFound(msgSubdomainAbsent)
		}
		return nil, err
	}

	return subdomain, nil
}

// ownedProfile additionally requires the subdomain's profile and, when
// profileID is given, that it is that profile.
func (a *Actions) ownedProfile(ctx context.Context, actor *types.AuthenticatedUser, subdomainID, profileID string, preloads ...string) (*models.Subdomain, error) {
	subdomain, err := a.ownedSubdomain(ctx, actor, subdomainID, append([]string{"Profile"}, preloads...)...)
	if err != nil {
		return nil, err
	}

	if subdomain.Profile == nil || (profileID != "" && subdomain.Profile.ID != profileID) {
		return nil, notFound(msgProfileAbsent)
	}

	return subdomain, nil
}

func check(values any) error {
	err := validation.Validate(values)
	if err == nil {
		return nil
	}

	var fields validation.FieldErrors
	if errors.As(err, &fields) {
		return invalid(msgInvalidFields, fields)
	}

	return fmt.Errorf("validate: %w", err)
}

func (a *Actions) revalidate(subdomainID string, paths ...string) {
	if a.revalidator == nil {
		return
	}
	a.revalidator.Revalidate(subdomainID, paths...)
}

func profileIDOf(subdomain *models.Subdomain) string {
	if subdomain.Profile == nil {
		return ""
	}
	return subdomain.Profile.ID
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
