package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/subfolio-dev/subfolio/internal/types"
	"github.com/subfolio-dev/subfolio/internal/utils"
)

// gin's form binding cannot fill slices of structs, so dashboard posts name
// repeated rows "links[0].type", "links[0].href", ... and are read here.
// Rows whose fields are all blank are dropped.

func postedRows(ctx *gin.Context, prefix string, fields ...string) []map[string]string {
	if err := ctx.Request.ParseForm(); err != nil {
		return nil
	}
	form := ctx.Request.PostForm

	var rows []map[string]string
	for i := 0; ; i++ {
		row := make(map[string]string, len(fields))
		present, blank := false, true

		for _, f := range fields {
			key := fmt.Sprintf("%s[%d].%s", prefix, i, f)
			if values, ok := form[key]; ok {
				present = true
				row[f] = strings.TrimSpace(values[0])
				if row[f] != "" && f != "icon" {
					blank = false
				}
			}
		}

		if !present {
			return rows
		}
		if !blank {
			rows = append(rows, row)
		}
	}
}

func postedBool(ctx *gin.Context, key string) bool {
	v := ctx.PostForm(key)
	return v == "true" || v == "on"
}

func postedProfile(ctx *gin.Context) types.ProfileForm {
	return types.ProfileForm{
		Name:         strings.TrimSpace(ctx.PostForm("name")),
		Initials:     strings.TrimSpace(ctx.PostForm("initials")),
		URL:          strings.TrimSpace(ctx.PostForm("url")),
		Location:     strings.TrimSpace(ctx.PostForm("location")),
		LocationLink: strings.TrimSpace(ctx.PostForm("location_link")),
		Description:  strings.TrimSpace(ctx.PostForm("description")),
		Summary:      ctx.PostForm("summary"),
		Avatar:       strings.TrimSpace(ctx.PostForm("avatar")),
		Skills:       utils.ParseList(ctx.PostForm("skills")),
	}
}

func postedWork(ctx *gin.Context) types.WorkForm {
	return types.WorkForm{
		Company:     strings.TrimSpace(ctx.PostForm("company")),
		Href:        strings.TrimSpace(ctx.PostForm("href")),
		Badges:      utils.ParseList(ctx.PostForm("badges")),
		Location:    strings.TrimSpace(ctx.PostForm("location")),
		Title:       strings.TrimSpace(ctx.PostForm("title")),
		LogoURL:     utils.OptionalString(ctx.PostForm("logo_url")),
		Start:       strings.TrimSpace(ctx.PostForm("start")),
		End:         utils.OptionalString(ctx.PostForm("end")),
		Description: strings.TrimSpace(ctx.PostForm("description")),
	}
}

func postedProject(ctx *gin.Context) types.ProjectForm {
	form := types.ProjectForm{
		Title:        strings.TrimSpace(ctx.PostForm("title")),
		Href:         strings.TrimSpace(ctx.PostForm("href")),
		Dates:        strings.TrimSpace(ctx.PostForm("dates")),
		Active:       postedBool(ctx, "active"),
		Description:  strings.TrimSpace(ctx.PostForm("description")),
		Technologies: utils.ParseList(ctx.PostForm("technologies")),
		Image:        utils.OptionalString(ctx.PostForm("image")),
		Video:        utils.OptionalString(ctx.PostForm("video")),
	}

	for _, row := range postedRows(ctx, "links", "type", "href") {
		form.Links = append(form.Links, types.LinkForm{Type: row["type"], Href: row["href"]})
	}

	return form
}

func postedContact(ctx *gin.Context) types.ContactForm {
	form := types.ContactForm{Email: strings.TrimSpace(ctx.PostForm("email"))}

	for _, row := range postedRows(ctx, "social", "name", "url", "icon", "navbar") {
		form.Social = append(form.Social, types.SocialForm{
			Name:   row["name"],
			URL:    row["url"],
			Icon:   row["icon"],
			Navbar: row["navbar"] == "true" || row["navbar"] == "on",
		})
	}

	return form
}
