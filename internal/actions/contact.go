package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/subfolio-dev/subfolio/internal/cache"
	"github.com/subfolio-dev/subfolio/internal/data"
	"github.com/subfolio-dev/subfolio/internal/models"
	"github.com/subfolio-dev/subfolio/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	sectionContacts    = "contacts"
	msgContactNotFound = "Contact not found"
)

func replaceSocials(tx *gorm.DB, contactID string, socials []types.SocialForm) error {
	if err := tx.Where("contact_id = ?", contactID).Delete(&models.Social{}).Error; err != nil {
		return fmt.Errorf("clear socials: %w", err)
	}

	if len(socials) == 0 {
		return nil
	}

	rows := make([]models.Social, 0, len(socials))
	for i, s := range socials {
		rows = append(rows, models.Social{
			ContactID: contactID,
			Name:      s.Name,
			URL:       s.URL,
			Icon:      s.Icon,
			Navbar:    s.Navbar,
			Position:  i,
		})
	}

	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("create socials: %w", err)
	}
	return nil
}

// UpdateContact upserts the profile's single contact record and replaces its
// social links with the submitted list.
func (a *Actions) UpdateContact(ctx context.Context, actor *types.AuthenticatedUser, subdomainID, profileID string, values types.ContactForm) Result {
	return a.run("update_contact", subdomainID, func() (outcome, error) {
		subdomain, err := a.ownedProfile(ctx, actor, subdomainID, profileID, "Profile.Contact")
		if err != nil {
			return outcome{}, err
		}

		if err := check(values); err != nil {
			return outcome{}, err
		}

		contact := subdomain.Profile.Contact
		if contact == nil {
			contact = &models.Contact{ProfileID: subdomain.Profile.ID}
		}
		contact.Email = values.Email

		err = a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit(clause.Associations).Save(contact).Error; err != nil {
				return fmt.Errorf("save contact: %w", err)
			}
			return replaceSocials(tx, contact.ID, values.Social)
		})
		if err != nil {
			return outcome{}, err
		}

		a.revalidate(subdomain.ID,
			cache.DashboardPath(subdomain.ID, sectionContacts),
			cache.SitePath(subdomain.Name),
		)

		return outcome{message: "Contact information updated!", id: contact.ID}, nil
	})
}

func (a *Actions) DeleteContact(ctx context.Context, actor *types.AuthenticatedUser, subdomainID, contactID string) Result {
	return a.run("delete_contact", subdomainID, func() (outcome, error) {
		subdomain, err := a.ownedSubdomain(ctx, actor, subdomainID, "Profile")
		if err != nil {
			return outcome{}, err
		}

		contact, err := data.FindContact(ctx, a.db, contactID, profileIDOf(subdomain))
		if errors.Is(err, data.ErrNotFound) {
			return outcome{}, notFound(msgContactNotFound)
		}
		if err != nil {
			return outcome{}, err
		}

		if err := a.db.WithContext(ctx).Select(clause.Associations).Delete(contact).Error; err != nil {
			return outcome{}, fmt.Errorf("delete contact: %w", err)
		}

		a.revalidate(subdomain.ID,
			cache.DashboardPath(subdomain.ID, sectionContacts),
			cache.SitePath(subdomain.Name),
		)

		return outcome{message: "Contact information deleted!", id: contact.ID}, nil
	})
}
