package data

import (
	"context"

	"github.com/subfolio-dev/subfolio/internal/models"
	"gorm.io/gorm"
)

// Child lookups are always scoped to the owning profile so a guessed id from
// another tenant resolves to ErrNotFound.

func FindWork(ctx context.Context, conn *gorm.DB, id, profileID string) (*models.Work, error) {
	if profileID == "" {
		return nil, ErrNotFound
	}

	var work models.Work
	if err := conn.WithContext(ctx).Where("id = ? AND profile_id = ?", id, profileID).First(&work).Error; err != nil {
		return nil, notFound(err, "work %s", id)
	}
	return &work, nil
}

func FindProject(ctx context.Context, conn *gorm.DB, id, profileID string) (*models.Project, error) {
	if profileID == "" {
		return nil, ErrNotFound
	}

	var project models.Project
	if err := conn.WithContext(ctx).Preload("Links", byPosition).Where("id = ? AND profile_id = ?", id, profileID).First(&project).Error; err != nil {
		return nil, notFound(err, "project %s", id)
	}
	return &project, nil
}

func FindContact(ctx context.Context, conn *gorm.DB, id, profileID string) (*models.Contact, error) {
	if profileID == "" {
		return nil, ErrNotFound
	}

	var contact models.Contact
	if err := conn.WithContext(ctx).Preload("Socials", byPosition).Where("id = ? AND profile_id = ?", id, profileID).First(&contact).Error; err != nil {
		return nil, notFound(err, "contact %s", id)
	}
	return &contact, nil
}

func ListWorks(ctx context.Context, conn *gorm.DB, profileID string) ([]models.Work, error) {
	var works []models.Work
	err := conn.WithContext(ctx).Where("profile_id = ?", profileID).Order("created_at ASC").Find(&works).Error
	return works, err
}

func ListProjects(ctx context.Context, conn *gorm.DB, profileID string) ([]models.Project, error) {
	var projects []models.Project
	err := conn.WithContext(ctx).Preload("Links", byPosition).Where("profile_id = ?", profileID).Order("created_at ASC").Find(&projects).Error
	return projects, err
}
