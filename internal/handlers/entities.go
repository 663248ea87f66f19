package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/subfolio-dev/subfolio/internal/types"
	"github.com/subfolio-dev/subfolio/internal/utils"
)

// Create and upsert bodies carry the profile id next to the form fields,
// the way the dashboard forms post it.

type WorkRequest struct {
	ProfileID string `json:"profile_id"`
	types.WorkForm
}

type ProjectRequest struct {
	ProfileID string `json:"profile_id"`
	types.ProjectForm
}

type ContactRequest struct {
	ProfileID string `json:"profile_id"`
	types.ContactForm
}

func (h *Handler) UpdateProfile(ctx *gin.Context) {
	subdomainID, err := utils.GetSubdomainID(ctx)
	if err != nil {
		badRequest(ctx)
		return
	}

	var req types.ProfileForm
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx)
		return
	}

	res := h.Actions.UpdateProfile(ctx.Request.Context(), utils.CurrentActor(ctx), subdomainID, req)
	respond(ctx, res, false)
}

func (h *Handler) UpdateContact(ctx *gin.Context) {
	subdomainID, err := utils.GetSubdomainID(ctx)
	if err != nil {
		badRequest(ctx)
		return
	}

	var req ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx)
		return
	}

	res := h.Actions.UpdateContact(ctx.Request.Context(), utils.CurrentActor(ctx), subdomainID, req.ProfileID, req.ContactForm)
	respond(ctx, res, false)
}

func (h *Handler) DeleteContact(ctx *gin.Context) {
	subdomainID, err := utils.GetSubdomainID(ctx)
	if err != nil {
		badRequest(ctx)
		return
	}

	contactID, err := utils.GetParam(ctx, "contact_id")
	if err != nil {
		badRequest(ctx)
		return
	}

	res := h.Actions.DeleteContact(ctx.Request.Context(), utils.CurrentActor(ctx), subdomainID, contactID)
	respond(ctx, res, false)
}

func (h *Handler) CreateWork(ctx *gin.Context) {
	subdomainID, err := utils.GetSubdomainID(ctx)
	if err != nil {
		badRequest(ctx)
		return
	}

	var req WorkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx)
		return
	}

	res := h.Actions.CreateWork(ctx.Request.Context(), utils.CurrentActor(ctx), subdomainID, req.ProfileID, req.WorkForm)
	respond(ctx, res, true)
}

func (h *Handler) UpdateWork(ctx *gin.Context) {
	subdomainID, err := utils.GetSubdomainID(ctx)
	if err != nil {
		badRequest(ctx)
		return
	}

	workID, err := utils.GetParam(ctx, "work_id")
	if err != nil {
		badRequest(ctx)
		return
	}

	var req types.WorkForm
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx)
		return
	}

	res := h.Actions.UpdateWork(ctx.Request.Context(), utils.CurrentActor(ctx), subdomainID, workID, req)
	respond(ctx, res, false)
}

func (h *Handler) DeleteWork(ctx *gin.Context) {
	subdomainID, err := utils.GetSubdomainID(ctx)
	if err != nil {
		badRequest(ctx)
		return
	}

	workID, err := utils.GetParam(ctx, "work_id")
	if err != nil {
		badRequest(ctx)
		return
	}

	res := h.Actions.DeleteWork(ctx.Request.Context(), utils.CurrentActor(ctx), subdomainID, workID)
	respond(ctx, res, false)
}

func (h *Handler) CreateProject(ctx *gin.Context) {
	subdomainID, err := utils.GetSubdomainID(ctx)
	if err != nil {
		badRequest(ctx)
		return
	}

	var req ProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx)
		return
	}

	res := h.Actions.CreateProject(ctx.Request.Context(), utils.CurrentActor(ctx), subdomainID, req.ProfileID, req.ProjectForm)
	respond(ctx, res, true)
}

func (h *Handler) UpdateProject(ctx *gin.Context) {
	subdomainID, err := utils.GetSubdomainID(ctx)
	if err != nil {
		badRequest(ctx)
		return
	}

	projectID, err := utils.GetParam(ctx, "project_id")
	if err != nil {
		badRequest(ctx)
		return
	}

	var req types.ProjectForm
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx)
		return
	}

	res := h.Actions.UpdateProject(ctx.Request.Context(), utils.CurrentActor(ctx), subdomainID, projectID, req)
	respond(ctx, res, false)
}

func (h *Handler) DeleteProject(ctx *gin.Context) {
	subdomainID, err := utils.GetSubdomainID(ctx)
	if err != nil {
		badRequest(ctx)
		return
	}

	projectID, err := utils.GetParam(ctx, "project_id")
	if err != nil {
		badRequest(ctx)
		return
	}

	res := h.Actions.DeleteProject(ctx.Request.Context(), utils.CurrentActor(ctx), subdomainID, projectID)
	respond(ctx, res, false)
}
