package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/subfolio-dev/subfolio/internal/cache"
	"github.com/subfolio-dev/subfolio/internal/data"
	"github.com/subfolio-dev/subfolio/internal/models"
	"github.com/subfolio-dev/subfolio/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

const (
	sectionWork     = "work"
	msgWorkNotFound  = "Work experience not found"
)

func applyWork(work *models.Work, values types.WorkForm) {
	work.Company = values.Company
	work.Href = values.Href
	work.Badges = datatypes.JSONSlice[string](nonNil(values.Badges))
	work.Location = values.Location
	work.Title = values.Title
	work.LogoURL = values.LogoURL
	work.Start = values.Start
	work.End = values.End
	work.Description = values.Description
}

func (a *Actions) CreateWork(ctx context.Context, actor *types.AuthenticatedUser, subdomainID, profileID string, values types.WorkForm) Result {
	return a.run("create_work", subdomainID, func() (outcome, error) {
		subdomain, err := a.ownedProfile(ctx, actor, subdomainID, profileID)
		if err != nil {
			return outcome{}, err
		}

		if err := check(values); err != nil {
			return outcome{}, err
		}

		work := models.Work{ProfileID: subdomain.Profile.ID}
		applyWork(&work, values)

		if err := a.db.WithContext(ctx).Create(&work).Error; err != nil {
			return outcome{}, fmt.Errorf("create work: %w", err)
		}

		a.revalidate(subdomain.ID,
			cache.DashboardPath(subdomain.ID, sectionWork),
			cache.SitePath(subdomain.Name),
		)

		return outcome{message: "Work experience added!", id: work.ID}, nil
	})
}

func (a *Actions) UpdateWork(ctx context.Context, actor *types.AuthenticatedUser, subdomainID, workID string, values types.WorkForm) Result {
	return a.run("update_work", subdomainID, func() (outcome, error) {
		subdomain, err := a.ownedSubdomain(ctx, actor, subdomainID, "Profile")
		if err != nil {
			return outcome{}, err
		}

		work, err := a.findWork(ctx, subdomain, workID)
		if err != nil {
			return outcome{}, err
		}

		if err := check(values); err != nil {
			return outcome{}, err
		}

		applyWork(work, values)

		if err := a.db.WithContext(ctx).Omit(clause.Associations).Save(work).Error; err != nil {
			return outcome{}, fmt.Errorf("update work: %w", err)
		}

		a.revalidate(subdomain.ID,
			cache.DashboardPath(subdomain.ID, sectionWork),
			cache.DashboardDetailPath(subdomain.ID, sectionWork, work.ID),
			cache.SitePath(subdomain.Name),
		)

		return outcome{message: "Work experience updated!", id: work.ID}, nil
	})
}

func (a *Actions) DeleteWork(ctx context.Context, actor *types.AuthenticatedUser, subdomainID, workID string) Result {
	return a.run("delete_work", subdomainID, func() (outcome, error) {
		subdomain, err := a.ownedSubdomain(ctx, actor, subdomainID, "Profile")
		if err != nil {
			return outcome{}, err
		}

		work, err := a.findWork(ctx, subdomain, workID)
		if err != nil {
			return outcome{}, err
		}

		if err := a.db.WithContext(ctx).Delete(work).Error; err != nil {
			return outcome{}, fmt.Errorf("delete work: %w", err)
		}

		a.revalidate(subdomain.ID,
			cache.DashboardPath(subdomain.ID, sectionWork),
			cache.DashboardDetailPath(subdomain.ID, sectionWork, work.ID),
			cache.SitePath(subdomain.Name),
		)

		return outcome{message: "Work experience deleted!", id: work.ID}, nil
	})
}

func (a *Actions) findWork(ctx context.Context, subdomain *models.Subdomain, workID string) (*models.Work, error) {
	work, err := data.FindWork(ctx, a.db, workID, profileIDOf(subdomain))
	if errors.Is(err, data.ErrNotFound) {
		return nil, notFound(msgWorkNotFound)
	}
	return work, err
}
