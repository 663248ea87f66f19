package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/subfolio-dev/subfolio/internal/cache"
	"github.com/subfolio-dev/subfolio/internal/data"
	"github.com/subfolio-dev/subfolio/internal/models"
	"github.com/subfolio-dev/subfolio/internal/types"
	"github.com/subfolio-dev/subfolio/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dashboardRoot = "/dashboard"

	msgSubdomainRequired = "Subdomain is required"
	msgSubdomainInvalid  = "Subdomain can only have lowercase letters, numbers, and hyphens. Please try again."
	msgSubdomainTaken    = "This subdomain is already taken"
)

// CreateSubdomain provisions a new tenant. Names are checked against every
// tenant, not only the actor's, because they double as DNS labels.
func (a *Actions) CreateSubdomain(ctx context.Context, actor *types.AuthenticatedUser, values types.SubdomainForm) Result {
	return a.run("create_subdomain", "", func() (outcome, error) {
		if actor == nil || actor.ID == "" {
			return outcome{}, unauthorized()
		}

		if values.Name == "" {
			return outcome{}, invalid(msgSubdomainRequired, nil)
		}

		if err := check(values); err != nil {
			return outcome{}, err
		}

		name := utils.SanitizeSubdomain(values.Name)
		if name != values.Name {
			return outcome{}, invalid(msgSubdomainInvalid, nil)
		}

		taken, err := data.SubdomainNameTaken(ctx, a.db, name)
		if err != nil {
			return outcome{}, err
		}
		if taken {
			return outcome{}, invalid(msgSubdomainTaken, nil)
		}

		subdomain := models.Subdomain{Name: name, UserID: actor.ID}
		if err := a.db.WithContext(ctx).Create(&subdomain).Error; err != nil {
			// Lost a race with another tenant between the check and the insert.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return outcome{}, invalid(msgSubdomainTaken, nil)
			}
			return outcome{}, fmt.Errorf("create subdomain: %w", err)
		}

		a.revalidate(subdomain.ID, dashboardRoot)

		return outcome{
			message:  "Subdomain created!",
			id:       subdomain.ID,
			redirect: a.siteURL(subdomain.Name),
		}, nil
	})
}

// DeleteSubdomain looks its target up by name through the public fetcher and
// does not compare the owner with the actor. Cross-owner deletions are
// logged at warn level.
//
// TODO: decide whether this is an operator override or should move to
// FindOwnedSubdomain like every other mutator.
func (a *Actions) DeleteSubdomain(ctx context.Context, actor *types.AuthenticatedUser, name string) Result {
	return a.run("delete_subdomain", "", func() (outcome, error) {
		if actor == nil || actor.ID == "" {
			return outcome{}, unauthorized()
		}

		subdomain, err := data.GetSubdomainData(ctx, a.db, name)
		if errors.Is(err, data.ErrNotFound) {
			return outcome{}, notFound(msgSubdomainAbsent)
		}
		if err != nil {
			return outcome{}, err
		}

		if subdomain.UserID != actor.ID {
			a.logger.Warn("subdomain deleted by non-owner",
				zap.String("subdomain_id", subdomain.ID),
				zap.String("subdomain", subdomain.Name),
				zap.String("owner_id", subdomain.UserID),
				zap.String("actor_id", actor.ID),
			)
		}

		if err := a.db.WithContext(ctx).Delete(&models.Subdomain{}, "id = ?", subdomain.ID).Error; err != nil {
			return outcome{}, fmt.Errorf("delete subdomain: %w", err)
		}

		a.revalidate(subdomain.ID, dashboardRoot, cache.SitePath(subdomain.Name))

		return outcome{message: "Domain deleted successfully", id: subdomain.ID}, nil
	})
}
