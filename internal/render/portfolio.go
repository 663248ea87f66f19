// Package render turns a fetched subdomain graph into the public portfolio
// and executes the HTML templates shared with the dashboard.
package render

import (
	"errors"
	"html/template"
	"strings"

	"github.com/subfolio-dev/subfolio/internal/models"
)

var ErrNoProfile = errors.New("subdomain has no profile")

const presentLabel = "Present"

type Hero struct {
	FirstName   string
	Name        string
	Description string
	Avatar      string
	Initials    string
}

type SocialLink struct {
	Name   string
	URL    string
	Icon   IconKey
	Navbar bool
}

type About struct {
	Summary template.HTML
	Socials []SocialLink
}

type WorkItem struct {
	Company     string
	Title       string
	Href        string
	Location    string
	LogoURL     string
	Badges      []string
	Period      string
	Description string
}

type ProjectLink struct {
	Type string
	Href string
	Icon IconKey
}

type ProjectItem struct {
	Title       string
	Href        string
	Dates       string
	Active      bool
	Description string
	Tags        []string
	Image       string
	Video       string
	Links       []ProjectLink
}

type ContactBlock struct {
	Email   string
	Socials []SocialLink
}

type Portfolio struct {
	Subdomain string
	Hero      Hero
	About     About
	Skills    []string
	Works     []WorkItem
	Projects  []ProjectItem
	Contact   *ContactBlock
}

// BuildPortfolio has no side effects; it only reads the preloaded graph.
func BuildPortfolio(subdomain *models.Subdomain) (Portfolio, error) {
	if subdomain == nil || subdomain.Profile == nil {
		return Portfolio{}, ErrNoProfile
	}
	profile := subdomain.Profile

	summary, err := Markdown(profile.Summary)
	if err != nil {
		return Portfolio{}, err
	}

	view := Portfolio{
		Subdomain: subdomain.Name,
		Hero: Hero{
			FirstName:   firstName(profile.Name),
			Name:        profile.Name,
			Description: profile.Description,
			Avatar:      profile.Avatar,
			Initials:    profile.Initials,
		},
		About:  About{Summary: summary},
		Skills: append([]string{}, profile.Skills...),
	}

	if profile.Contact != nil {
		socials := socialLinks(profile.Contact.Socials)
		view.About.Socials = socials
		view.Contact = &ContactBlock{Email: profile.Contact.Email, Socials: socials}
	}

	for _, w := range profile.Works {
		view.Works = append(view.Works, WorkItem{
			Company:     w.Company,
			Title:       w.Title,
			Href:        w.Href,
			Location:    w.Location,
			LogoURL:     deref(w.LogoURL),
			Badges:      append([]string{}, w.Badges...),
			Period:      Period(w.Start, w.End),
			Description: w.Description,
		})
	}

	for _, p := range profile.Projects {
		item := ProjectItem{
			Title:       p.Title,
			Href:        p.Href,
			Dates:       p.Dates,
			Active:      p.Active,
			Description: p.Description,
			Tags:        append([]string{}, p.Technologies...),
			Image:       deref(p.Image),
			Video:       deref(p.Video),
		}
		for _, l := range p.Links {
			item.Links = append(item.Links, ProjectLink{Type: l.Type, Href: l.Href, Icon: ResolveIcon(l.Type)})
		}
		view.Projects = append(view.Projects, item)
	}

	return view, nil
}

// Period formats a work date range; a missing end means the role is current.
func Period(start string, end *string) string {
	finish := deref(end)
	if strings.TrimSpace(finish) == "" {
		finish = presentLabel
	}
	return start + " - " + finish
}

func socialLinks(socials []models.Social) []SocialLink {
	if len(socials) == 0 {
		return nil
	}

	links := make([]SocialLink, 0, len(socials))
	for _, s := range socials {
		links = append(links, SocialLink{Name: s.Name, URL: s.URL, Icon: ResolveIcon(s.Icon), Navbar: s.Navbar})
	}
	return links
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
