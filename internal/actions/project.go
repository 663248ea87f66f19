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
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	sectionProjects    = "projects"
	msgProjectNotFound = "Project not found"
)

func applyProject(project *models.Project, values types.ProjectForm) {
	project.Title = values.Title
	project.Href = values.Href
	project.Dates = values.Dates
	project.Active = values.Active
	project.Description = values.Description
	project.Technologies = datatypes.JSONSlice[string](nonNil(values.Technologies))
	project.Image = values.Image
	project.Video = values.Video
}

// replaceLinks swaps the project's link set for the submitted one.
func replaceLinks(tx *gorm.DB, projectID string, links []types.LinkForm) error {
	if err := tx.Where("project_id = ?", projectID).Delete(&models.Link{}).Error; err != nil {
		return fmt.Errorf("clear links: %w", err)
	}

	if len(links) == 0 {
		return nil
	}

	rows := make([]models.Link, 0, len(links))
	for i, l := range links {
		rows = append(rows, models.Link{ProjectID: projectID, Type: l.Type, Href: l.Href, Position: i})
	}

	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("create links: %w", err)
	}
	return nil
}

func (a *Actions) CreateProject(ctx context.Context, actor *types.AuthenticatedUser, subdomainID, profileID string, values types.ProjectForm) Result {
	return a.run("create_project", subdomainID, func() (outcome, error) {
		subdomain, err := a.ownedProfile(ctx, actor, subdomainID, profileID)
		if err != nil {
			return outcome{}, err
		}

		if err := check(values); err != nil {
			return outcome{}, err
		}

		project := models.Project{ProfileID: subdomain.Profile.ID}
		applyProject(&project, values)

		err = a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit(clause.Associations).Create(&project).Error; err != nil {
				return fmt.Errorf("create project: %w", err)
			}
			return replaceLinks(tx, project.ID, values.Links)
		})
		if err != nil {
			return outcome{}, err
		}

		a.revalidate(subdomain.ID,
			cache.DashboardPath(subdomain.ID, sectionProjects),
			cache.SitePath(subdomain.Name),
		)

		return outcome{message: "Project added!", id: project.ID}, nil
	})
}

func (a *Actions) UpdateProject(ctx context.Context, actor *types.AuthenticatedUser, subdomainID, projectID string, values types.ProjectForm) Result {
	return a.run("update_project", subdomainID, func() (outcome, error) {
		subdomain, err := a.ownedSubdomain(ctx, actor, subdomainID, "Profile")
		if err != nil {
			return outcome{}, err
		}

		project, err := a.findProject(ctx, subdomain, projectID)
		if err != nil {
			return outcome{}, err
		}

		if err := check(values); err != nil {
			return outcome{}, err
		}

		applyProject(project, values)

		err = a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit(clause.Associations).Save(project).Error; err != nil {
				return fmt.Errorf("update project: %w", err)
			}
			return replaceLinks(tx, project.ID, values.Links)
		})
		if err != nil {
			return outcome{}, err
		}

		a.revalidate(subdomain.ID,
			cache.DashboardPath(subdomain.ID, sectionProjects),
			cache.DashboardDetailPath(subdomain.ID, sectionProjects, project.ID),
			cache.SitePath(subdomain.Name),
		)

		return outcome{message: "Project updated!", id: project.ID}, nil
	})
}

func (a *Actions) DeleteProject(ctx context.Context, actor *types.AuthenticatedUser, subdomainID, projectID string) Result {
	return a.run("delete_project", subdomainID, func() (outcome, error) {
		subdomain, err := a.ownedSubdomain(ctx, actor, subdomainID, "Profile")
		if err != nil {
			return outcome{}, err
		}

		project, err := a.findProject(ctx, subdomain, projectID)
		if err != nil {
			return outcome{}, err
		}

		if err := a.db.WithContext(ctx).Select(clause.Associations).Delete(project).Error; err != nil {
			return outcome{}, fmt.Errorf("delete project: %w", err)
		}

		a.revalidate(subdomain.ID,
			cache.DashboardPath(subdomain.ID, sectionProjects),
			cache.DashboardDetailPath(subdomain.ID, sectionProjects, project.ID),
			cache.SitePath(subdomain.Name),
		)

		return outcome{message: "Project deleted!", id: project.ID}, nil
	})
}

func (a *Actions) findProject(ctx context.Context, subdomain *models.Subdomain, projectID string) (*models.Project, error) {
	project, err := data.FindProject(ctx, a.db, projectID, profileIDOf(subdomain))
	if errors.Is(err, data.ErrNotFound) {
		return nil, notFound(msgProjectNotFound)
	}
	return project, err
}
