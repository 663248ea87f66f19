package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/subfolio-dev/subfolio/internal/actions"
	"github.com/subfolio-dev/subfolio/internal/cache"
	"github.com/subfolio-dev/subfolio/internal/data"
	"github.com/subfolio-dev/subfolio/internal/forms"
	"github.com/subfolio-dev/subfolio/internal/models"
	"github.com/subfolio-dev/subfolio/internal/pages"
	"github.com/subfolio-dev/subfolio/internal/types"
	"github.com/subfolio-dev/subfolio/internal/utils"
	"go.uber.org/zap"
)

const (
	sectionWork     = "work"
	sectionProjects = "projects"

	msgProfileFirst = "Please set up your profile first!"
)

type dashboardView struct {
	Title     string
	User      types.AuthenticatedUser
	Subdomain *models.Subdomain
	SiteURL   string
}

type siteLink struct {
	ID   string
	Name string
	URL  string
}

type rootView struct {
	dashboardView
	Subdomains []siteLink
	Form       *forms.Shell[types.SubdomainForm]
}

type profileView struct {
	dashboardView
	Form *forms.Shell[types.ProfileForm]
}

type contactView struct {
	dashboardView
	ProfileID string
	ContactID string
	Form      *forms.Shell[types.ContactForm]
	Socials   []types.SocialForm
}

type listView struct {
	dashboardView
	Success  string
	Error    string
	Works    []models.Work
	Projects []models.Project
}

type workFormView struct {
	dashboardView
	ProfileID string
	Form      *forms.Shell[types.WorkForm]
}

type projectFormView struct {
	dashboardView
	ProfileID string
	Form      *forms.Shell[types.ProjectForm]
	Links     []types.LinkForm
}

func (h *Handler) view(ctx *gin.Context, title string, subdomain *models.Subdomain) dashboardView {
	v := dashboardView{Title: title, Subdomain: subdomain}
	if actor := utils.CurrentActor(ctx); actor != nil {
		v.User = *actor
	}
	if subdomain != nil {
		v.SiteURL = h.Config.SiteURL(subdomain.Name)
	}
	return v
}

// leave turns a non-Ready page state into its redirect.
func (h *Handler) leave(ctx *gin.Context, state pages.State) {
	if state.Status == pages.Failed {
		h.Logger.Error("resolve dashboard page", zap.String("path", ctx.Request.URL.Path), zap.Error(state.Err))
		ctx.String(http.StatusInternalServerError, "Something went wrong!")
		return
	}
	ctx.Redirect(http.StatusSeeOther, state.Redirect)
}

func (h *Handler) resolve(ctx *gin.Context, preloads ...string) (pages.State, bool) {
	state := pages.Resolve(ctx.Request.Context(), h.DB, utils.CurrentActor(ctx), ctx.Param("subdomain_id"), preloads...)
	if state.Status != pages.Ready {
		h.leave(ctx, state)
		return state, false
	}
	return state, true
}

// statusOf is the HTML counterpart of respond.
func statusOf(res actions.Result) int {
	if res.OK() {
		return http.StatusOK
	}
	return statusFor(res.Kind)
}

func profileIDOf(subdomain *models.Subdomain) string {
	if subdomain == nil || subdomain.Profile == nil {
		return ""
	}
	return subdomain.Profile.ID
}

// Root

func (h *Handler) renderRoot(ctx *gin.Context, status int, shell *forms.Shell[types.SubdomainForm]) {
	actor := utils.CurrentActor(ctx)
	if actor == nil {
		ctx.Redirect(http.StatusSeeOther, pages.LoginPath)
		return
	}

	subdomains, err := data.ListSubdomains(ctx.Request.Context(), h.DB, actor.ID)
	if err != nil {
		h.Logger.Error("list subdomains", zap.String("user_id", actor.ID), zap.Error(err))
		ctx.String(http.StatusInternalServerError, "Something went wrong!")
		return
	}

	links := make([]siteLink, 0, len(subdomains))
	for _, s := range subdomains {
		links = append(links, siteLink{ID: s.ID, Name: s.Name, URL: h.Config.SiteURL(s.Name)})
	}

	ctx.HTML(status, "dashboard_root.html", rootView{
		dashboardView: h.view(ctx, "Your sites", nil),
		Subdomains:    links,
		Form:          shell,
	})
}

func (h *Handler) DashboardRoot(ctx *gin.Context) {
	h.renderRoot(ctx, http.StatusOK, forms.New(forms.ModeCreate, types.SubdomainForm{}))
}

func (h *Handler) DashboardCreateSubdomain(ctx *gin.Context) {
	shell := forms.New(forms.ModeCreate, types.SubdomainForm{Name: ctx.PostForm("subdomain")})

	res := shell.Submit(func() actions.Result {
		return h.Actions.CreateSubdomain(ctx.Request.Context(), utils.CurrentActor(ctx), shell.Values)
	})

	if res.Kind == actions.KindUnauthorized {
		ctx.Redirect(http.StatusSeeOther, pages.LoginPath)
		return
	}

	if res.OK() {
		ctx.Redirect(http.StatusSeeOther, res.Redirect)
		return
	}

	h.renderRoot(ctx, statusOf(res), shell)
}

// Overview

func (h *Handler) DashboardSubdomain(ctx *gin.Context) {
	ctx.Redirect(http.StatusSeeOther, cache.DashboardPath(ctx.Param("subdomain_id"), "overview"))
}

func (h *Handler) DashboardOverview(ctx *gin.Context) {
	state, ok := h.resolve(ctx)
	if !ok {
		return
	}

	ctx.HTML(http.StatusOK, "dashboard_overview.html", h.view(ctx, state.Subdomain.Name, state.Subdomain))
}

func (h *Handler) DashboardDeleteSubdomain(ctx *gin.Context) {
	state, ok := h.resolve(ctx)
	if !ok {
		return
	}

	res := h.Actions.DeleteSubdomain(ctx.Request.Context(), utils.CurrentActor(ctx), state.Subdomain.Name)
	if !res.OK() {
		ctx.String(statusOf(res), res.Error)
		return
	}

	ctx.Redirect(http.StatusSeeOther, pages.RootPath)
}

// Profile

func profileValues(p *models.Profile) types.ProfileForm {
	if p == nil {
		return types.ProfileForm{}
	}
	return types.ProfileForm{
		Name:         p.Name,
		Initials:     p.Initials,
		URL:          p.URL,
		Location:     p.Location,
		LocationLink: p.LocationLink,
		Description:  p.Description,
		Summary:      p.Summary,
		Avatar:       p.Avatar,
		Skills:       []string(p.Skills),
	}
}

func (h *Handler) DashboardProfile(ctx *gin.Context) {
	state, ok := h.resolve(ctx, "Profile")
	if !ok {
		return
	}

	// The profile form saves in place and never navigates away.
	shell := forms.New(forms.ModeEdit, profileValues(state.Subdomain.Profile))

	ctx.HTML(http.StatusOK, "dashboard_profile.html", profileView{
		dashboardView: h.view(ctx, "Profile", state.Subdomain),
		Form:          shell,
	})
}

func (h *Handler) DashboardSaveProfile(ctx *gin.Context) {
	state, ok := h.resolve(ctx)
	if !ok {
		return
	}

	shell := forms.New(forms.ModeEdit, postedProfile(ctx))
	res := shell.Submit(func() actions.Result {
		return h.Actions.UpdateProfile(ctx.Request.Context(), utils.CurrentActor(ctx), state.Subdomain.ID, shell.Values)
	})

	ctx.HTML(statusOf(res), "dashboard_profile.html", profileView{
		dashboardView: h.view(ctx, "Profile", state.Subdomain),
		Form:          shell,
	})
}

// Contacts

func contactValues(c *models.Contact) types.ContactForm {
	if c == nil {
		return types.ContactForm{}
	}

	form := types.ContactForm{Email: c.Email}
	for _, s := range c.Socials {
		form.Social = append(form.Social, types.SocialForm{Name: s.Name, URL: s.URL, Icon: s.Icon, Navbar: s.Navbar})
	}
	return form
}

func (h *Handler) renderContacts(ctx *gin.Context, status int, subdomain *models.Subdomain, shell *forms.Shell[types.ContactForm]) {
	view := contactView{
		dashboardView: h.view(ctx, "Contact", subdomain),
		ProfileID:     profileIDOf(subdomain),
		Form:          shell,
		Socials:       append(append([]types.SocialForm{}, shell.Values.Social...), types.SocialForm{Icon: "globe"}),
	}

	if subdomain.Profile != nil && subdomain.Profile.Contact != nil {
		view.ContactID = subdomain.Profile.Contact.ID
	}

	ctx.HTML(status, "dashboard_contacts.html", view)
}

func (h *Handler) DashboardContacts(ctx *gin.Context) {
	state, ok := h.resolve(ctx, "Profile", "Profile.Contact")
	if !ok {
		return
	}

	var contact *models.Contact
	if p := state.Subdomain.Profile; p != nil && p.Contact != nil {
		// Reload through the fetcher so socials come back in saved order.
		loaded, err := data.FindContact(ctx.Request.Context(), h.DB, p.Contact.ID, p.ID)
		if err != nil {
			h.leave(ctx, pages.State{Status: pages.Failed, Err: err})
			return
		}
		contact = loaded
	}

	// Profile edits never navigate, so neither does the contact form.
	shell := forms.New(forms.ModeEdit, contactValues(contact))
	h.renderContacts(ctx, http.StatusOK, state.Subdomain, shell)
}

func (h *Handler) DashboardSaveContacts(ctx *gin.Context) {
	state, ok := h.resolve(ctx, "Profile")
	if !ok {
		return
	}

	shell := forms.New(forms.ModeEdit, postedContact(ctx))
	var res actions.Result

	if profileIDOf(state.Subdomain) == "" {
		shell.Fail(msgProfileFirst)
		res = actions.Result{Error: msgProfileFirst, Kind: actions.KindNotFound}
	} else {
		res = shell.Submit(func() actions.Result {
			return h.Actions.UpdateContact(ctx.Request.Context(), utils.CurrentActor(ctx), state.Subdomain.ID, ctx.PostForm("profile_id"), shell.Values)
		})
	}

	// Reload so the delete control knows the contact id after a first save.
	fresh := pages.Resolve(ctx.Request.Context(), h.DB, utils.CurrentActor(ctx), state.Subdomain.ID, "Profile", "Profile.Contact")
	if fresh.Status == pages.Ready {
		state = fresh
	}

	h.renderContacts(ctx, statusOf(res), state.Subdomain, shell)
}

func (h *Handler) DashboardDeleteContact(ctx *gin.Context) {
	state, ok := h.resolve(ctx)
	if !ok {
		return
	}

	res := h.Actions.DeleteContact(ctx.Request.Context(), utils.CurrentActor(ctx), state.Subdomain.ID, ctx.Param("contact_id"))
	if !res.OK() {
		ctx.String(statusOf(res), res.Error)
		return
	}

	ctx.Redirect(http.StatusSeeOther, cache.DashboardPath(state.Subdomain.ID, "contacts"))
}

// Work

func workValues(w *models.Work) types.WorkForm {
	if w == nil {
		return types.WorkForm{}
	}
	return types.WorkForm{
		Company:     w.Company,
		Href:        w.Href,
		Badges:      []string(w.Badges),
		Location:    w.Location,
		Title:       w.Title,
		LogoURL:     w.LogoURL,
		Start:       w.Start,
		End:         w.End,
		Description: w.Description,
	}
}

func workTitle(mode forms.Mode) string {
	if mode == forms.ModeCreate {
		return "Add Work Experience"
	}
	return "Edit Work Experience"
}

func (h *Handler) renderWorks(ctx *gin.Context, subdomain *models.Subdomain, res actions.Result) {
	works, err := data.ListWorks(ctx.Request.Context(), h.DB, profileIDOf(subdomain))
	if err != nil {
		h.Logger.Error("list works", zap.String("subdomain_id", subdomain.ID), zap.Error(err))
		ctx.String(http.StatusInternalServerError, "Something went wrong!")
		return
	}

	ctx.HTML(statusOf(res), "dashboard_works.html", listView{
		dashboardView: h.view(ctx, "Work experience", subdomain),
		Success:       res.Success,
		Error:         res.Error,
		Works:         works,
	})
}

func (h *Handler) DashboardWorks(ctx *gin.Context) {
	state, ok := h.resolve(ctx, "Profile")
	if !ok {
		return
	}
	h.renderWorks(ctx, state.Subdomain, actions.Result{})
}

func (h *Handler) DashboardWork(ctx *gin.Context) {
	state := pages.ResolveDetail(ctx.Request.Context(), h.DB, utils.CurrentActor(ctx), ctx.Param("subdomain_id"), sectionWork, ctx.Param("work_id"), data.FindWork)
	if state.Status != pages.Ready {
		h.leave(ctx, state.State)
		return
	}

	shell := forms.New(state.Mode, workValues(state.Child)).
		WithListPath(cache.DashboardPath(state.Subdomain.ID, sectionWork))

	ctx.HTML(http.StatusOK, "dashboard_work_form.html", workFormView{
		dashboardView: h.view(ctx, workTitle(state.Mode), state.Subdomain),
		ProfileID:     profileIDOf(state.Subdomain),
		Form:          shell,
	})
}

func (h *Handler) DashboardSaveWork(ctx *gin.Context) {
	state := pages.ResolveDetail(ctx.Request.Context(), h.DB, utils.CurrentActor(ctx), ctx.Param("subdomain_id"), sectionWork, ctx.Param("work_id"), data.FindWork)
	if state.Status != pages.Ready {
		h.leave(ctx, state.State)
		return
	}

	shell := forms.New(state.Mode, postedWork(ctx)).
		WithListPath(cache.DashboardPath(state.Subdomain.ID, sectionWork))
	actor := utils.CurrentActor(ctx)
	var res actions.Result

	switch {
	case state.Mode == forms.ModeCreate && profileIDOf(state.Subdomain) == "":
		shell.Fail(msgProfileFirst)
		res = actions.Result{Error: msgProfileFirst, Kind: actions.KindNotFound}
	case state.Mode == forms.ModeCreate:
		res = shell.Submit(func() actions.Result {
			return h.Actions.CreateWork(ctx.Request.Context(), actor, state.Subdomain.ID, ctx.PostForm("profile_id"), shell.Values)
		})
	default:
		res = shell.Submit(func() actions.Result {
			return h.Actions.UpdateWork(ctx.Request.Context(), actor, state.Subdomain.ID, state.Child.ID, shell.Values)
		})
	}

	ctx.HTML(statusOf(res), "dashboard_work_form.html", workFormView{
		dashboardView: h.view(ctx, workTitle(state.Mode), state.Subdomain),
		ProfileID:     profileIDOf(state.Subdomain),
		Form:          shell,
	})
}

func (h *Handler) DashboardDeleteWork(ctx *gin.Context) {
	state, ok := h.resolve(ctx, "Profile")
	if !ok {
		return
	}

	res := h.Actions.DeleteWork(ctx.Request.Context(), utils.CurrentActor(ctx), state.Subdomain.ID, ctx.Param("work_id"))
	h.renderWorks(ctx, state.Subdomain, res)
}

// Projects

func projectValues(p *models.Project) types.ProjectForm {
	if p == nil {
		return types.ProjectForm{}
	}

	form := types.ProjectForm{
		Title:        p.Title,
		Href:         p.Href,
		Dates:        p.Dates,
		Active:       p.Active,
		Description:  p.Description,
		Technologies: []string(p.Technologies),
		Image:        p.Image,
		Video:        p.Video,
	}
	for _, l := range p.Links {
		form.Links = append(form.Links, types.LinkForm{Type: l.Type, Href: l.Href})
	}
	return form
}

func projectTitle(mode forms.Mode) string {
	if mode == forms.ModeCreate {
		return "Add Project"
	}
	return "Edit Project"
}

func (h *Handler) projectForm(ctx *gin.Context, status int, subdomain *models.Subdomain, shell *forms.Shell[types.ProjectForm]) {
	ctx.HTML(status, "dashboard_project_form.html", projectFormView{
		dashboardView: h.view(ctx, projectTitle(shell.Mode), subdomain),
		ProfileID:     profileIDOf(subdomain),
		Form:          shell,
		Links:         append(append([]types.LinkForm{}, shell.Values.Links...), types.LinkForm{}),
	})
}

func (h *Handler) renderProjects(ctx *gin.Context, subdomain *models.Subdomain, res actions.Result) {
	projects, err := data.ListProjects(ctx.Request.Context(), h.DB, profileIDOf(subdomain))
	if err != nil {
		h.Logger.Error("list projects", zap.String("subdomain_id", subdomain.ID), zap.Error(err))
		ctx.String(http.StatusInternalServerError, "Something went wrong!")
		return
	}

	ctx.HTML(statusOf(res), "dashboard_projects.html", listView{
		dashboardView: h.view(ctx, "Projects", subdomain),
		Success:       res.Success,
		Error:         res.Error,
		Projects:      projects,
	})
}

func (h *Handler) DashboardProjects(ctx *gin.Context) {
	state, ok := h.resolve(ctx, "Profile")
	if !ok {
		return
	}
	h.renderProjects(ctx, state.Subdomain, actions.Result{})
}

func (h *Handler) DashboardProject(ctx *gin.Context) {
	state := pages.ResolveDetail(ctx.Request.Context(), h.DB, utils.CurrentActor(ctx), ctx.Param("subdomain_id"), sectionProjects, ctx.Param("project_id"), data.FindProject)
	if state.Status != pages.Ready {
		h.leave(ctx, state.State)
		return
	}

	shell := forms.New(state.Mode, projectValues(state.Child)).
		WithListPath(cache.DashboardPath(state.Subdomain.ID, sectionProjects))
	h.projectForm(ctx, http.StatusOK, state.Subdomain, shell)
}

func (h *Handler) DashboardSaveProject(ctx *gin.Context) {
	state := pages.ResolveDetail(ctx.Request.Context(), h.DB, utils.CurrentActor(ctx), ctx.Param("subdomain_id"), sectionProjects, ctx.Param("project_id"), data.FindProject)
	if state.Status != pages.Ready {
		h.leave(ctx, state.State)
		return
	}

	shell := forms.New(state.Mode, postedProject(ctx)).
		WithListPath(cache.DashboardPath(state.Subdomain.ID, sectionProjects))
	actor := utils.CurrentActor(ctx)
	var res actions.Result

	switch {
	case state.Mode == forms.ModeCreate && profileIDOf(state.Subdomain) == "":
		shell.Fail(msgProfileFirst)
		res = actions.Result{Error: msgProfileFirst, Kind: actions.KindNotFound}
	case state.Mode == forms.ModeCreate:
		res = shell.Submit(func() actions.Result {
			return h.Actions.CreateProject(ctx.Request.Context(), actor, state.Subdomain.ID, ctx.PostForm("profile_id"), shell.Values)
		})
	default:
		res = shell.Submit(func() actions.Result {
			return h.Actions.UpdateProject(ctx.Request.Context(), actor, state.Subdomain.ID, state.Child.ID, shell.Values)
		})
	}

	h.projectForm(ctx, statusOf(res), state.Subdomain, shell)
}

func (h *Handler) DashboardDeleteProject(ctx *gin.Context) {
	state, ok := h.resolve(ctx, "Profile")
	if !ok {
		return
	}

	res := h.Actions.DeleteProject(ctx.Request.Context(), utils.CurrentActor(ctx), state.Subdomain.ID, ctx.Param("project_id"))
	h.renderProjects(ctx, state.Subdomain, res)
}
