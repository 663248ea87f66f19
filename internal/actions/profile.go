package actions

import (
	"context"
	"fmt"

	"github.com/subfolio-dev/subfolio/internal/cache"
	"github.com/subfolio-dev/subfolio/internal/models"
	"github.com/subfolio-dev/subfolio/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// UpdateProfile creates the subdomain's profile on first save and updates it
// afterwards.
func (a *Actions) UpdateProfile(ctx context.Context, actor *types.AuthenticatedUser, subdomainID string, values types.ProfileForm) Result {
	return a.run("update_profile", subdomainID, func() (outcome, error) {
		subdomain, err := a.ownedSubdomain(ctx, actor, subdomainID, "Profile")
		if err != nil {
			return outcome{}, err
		}

		if err := check(values); err != nil {
			return outcome{}, err
		}

		profile := subdomain.Profile
		message := "Profile updated!"
		if profile == nil {
			profile = &models.Profile{SubdomainID: subdomain.ID}
			message = "Profile created!"
		}

		profile.Name = values.Name
		profile.Initials = values.Initials
		profile.URL = values.URL
		profile.Location = values.Location
		profile.LocationLink = values.LocationLink
		profile.Description = values.Description
		profile.Summary = values.Summary
		profile.Avatar = values.Avatar
		profile.Skills = datatypes.JSONSlice[string](nonNil(values.Skills))

		if err := a.db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error; err != nil {
			return outcome{}, fmt.Errorf("save profile: %w", err)
		}

		a.revalidate(subdomain.ID,
			cache.DashboardPath(subdomain.ID, "profile"),
			cache.SitePath(subdomain.Name),
		)

		return outcome{message: message, id: profile.ID}, nil
	})
}
