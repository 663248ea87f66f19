// Package data holds the read paths: the public portfolio graph and the
// owner-scoped lookups used before every write.
package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/subfolio-dev/subfolio/internal/models"
	"github.com/subfolio-dev/subfolio/internal/utils"
	"gorm.io/gorm"
)

// ErrNotFound covers both "absent" and "not yours".
var ErrNotFound = errors.New("record not found")

func oldestFirst(tx *gorm.DB) *gorm.DB {
	return tx.Order("created_at ASC")
}

// Replace-set children keep the submitted order in a position column.
func byPosition(tx *gorm.DB) *gorm.DB {
	return tx.Order("position ASC")
}

// GetSubdomainData sanitizes name and loads the subdomain with its whole
// profile graph. It performs no authorization; it backs the public page.
func GetSubdomainData(ctx context.Context, conn *gorm.DB, name string) (*models.Subdomain, error) {
	sanitized := utils.SanitizeSubdomain(name)
	if sanitized == "" {
		return nil, ErrNotFound
	}

	query := conn.WithContext(ctx).
		Preload("Profile").
		Preload("Profile.Contact").
		Preload("Profile.Contact.Socials", byPosition).
		Preload("Profile.Works", oldestFirst).
		Preload("Profile.Projects", oldestFirst).
		Preload("Profile.Projects.Links", byPosition)

	var subdomain models.Subdomain
	if err := query.Where("name = ?", sanitized).First(&subdomain).Error; err != nil {
		return nil, notFound(err, "subdomain %q", sanitized)
	}

	return &subdomain, nil
}

// FindOwnedSubdomain loads the subdomain only when userID owns it.
func FindOwnedSubdomain(ctx context.Context, conn *gorm.DB, id, userID string, preloads ...string) (*models.Subdomain, error) {
	query := conn.WithContext(ctx)
	for _, p := range preloads {
		query = query.Preload(p)
	}

	var subdomain models.Subdomain
	if err := query.Where("id = ? AND user_id = ?", id, userID).First(&subdomain).Error; err != nil {
		return nil, notFound(err, "subdomain %s", id)
	}

	return &subdomain, nil
}

// ListSubdomains returns the subdomains owned by userID, oldest first.
func ListSubdomains(ctx context.Context, conn *gorm.DB, userID string) ([]models.Subdomain, error) {
	var subdomains []models.Subdomain
	if err := conn.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&subdomains).Error; err != nil {
		return nil, fmt.Errorf("list subdomains: %w", err)
	}
	return subdomains, nil
}

// SubdomainNameTaken checks the name across every tenant.
func SubdomainNameTaken(ctx context.Context, conn *gorm.DB, name string) (bool, error) {
	var count int64
	if err := conn.WithContext(ctx).Model(&models.Subdomain{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check subdomain name: %w", err)
	}
	return count > 0, nil
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
	}
	return fmt.Errorf("load %s: %w", fmt.Sprintf(format, args...), err)
}
