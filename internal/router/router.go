package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/subfolio-dev/subfolio/internal/handlers"
	"github.com/subfolio-dev/subfolio/internal/logging"
	"github.com/subfolio-dev/subfolio/internal/middleware"
	"github.com/subfolio-dev/subfolio/internal/pages"
	"github.com/subfolio-dev/subfolio/internal/types"
)

func NewRouter(h *handlers.Handler) *gin.Engine {
	r := gin.New()

	r.Use(logging.Middleware(h.Logger), logging.Recovery(h.Logger))

	origins := types.AllowedOrigins(h.Config.ClientURL, h.Config.AllowedOrigins)
	origins = append(origins, h.Config.Protocol+"://"+h.Config.RootDomain)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Portfolio hosts are answered before any route matching.
	r.Use(h.SubdomainHost())

	r.SetHTMLTemplate(h.Renderer.Templates())
	r.NoRoute(h.NotFound)

	r.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, pages.RootPath)
	})
	r.GET("/s/:subdomain", h.PublicSite)

	authPages := r.Group("/auth", middleware.SessionMiddleware())
	{
		authPages.GET("/login", h.LoginPage)
		authPages.POST("/login", h.LoginForm)
		authPages.POST("/logout", h.LogoutForm)
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/sites/:name", h.GetSite)
		api.DELETE("/sites/:name", middleware.AuthMiddleware(), h.DeleteSubdomain)

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.CreateUser)
			auth.POST("/login", h.LoginUser)
			auth.POST("/logout", h.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), h.Me)
		}

		subdomains := api.Group("/subdomains", middleware.AuthMiddleware())
		{
			subdomains.GET("", h.ListSubdomains)
			subdomains.POST("", h.CreateSubdomain)
			subdomains.GET("/:subdomain_id/ws", h.RefreshSocket)

			subdomains.PUT("/:subdomain_id/profile", h.UpdateProfile)

			subdomains.PUT("/:subdomain_id/contact", h.UpdateContact)
			subdomains.DELETE("/:subdomain_id/contact/:contact_id", h.DeleteContact)

			subdomains.POST("/:subdomain_id/works", h.CreateWork)
			subdomains.PUT("/:subdomain_id/works/:work_id", h.UpdateWork)
			subdomains.DELETE("/:subdomain_id/works/:work_id", h.DeleteWork)

			subdomains.POST("/:subdomain_id/projects", h.CreateProject)
			subdomains.PUT("/:subdomain_id/projects/:project_id", h.UpdateProject)
			subdomains.DELETE("/:subdomain_id/projects/:project_id", h.DeleteProject)
		}
	}

	dashboard := r.Group("/dashboard", middleware.SessionMiddleware())
	{
		dashboard.GET("", h.DashboardRoot)
		dashboard.POST("", h.DashboardCreateSubdomain)

		dashboard.GET("/:subdomain_id", h.DashboardSubdomain)
		dashboard.GET("/:subdomain_id/overview", h.DashboardOverview)
		dashboard.POST("/:subdomain_id/delete", h.DashboardDeleteSubdomain)

		dashboard.GET("/:subdomain_id/profile", h.DashboardProfile)
		dashboard.POST("/:subdomain_id/profile", h.DashboardSaveProfile)

		dashboard.GET("/:subdomain_id/contacts", h.DashboardContacts)
		dashboard.POST("/:subdomain_id/contacts", h.DashboardSaveContacts)
		dashboard.POST("/:subdomain_id/contacts/:contact_id/delete", h.DashboardDeleteContact)

		dashboard.GET("/:subdomain_id/work", h.DashboardWorks)
		dashboard.GET("/:subdomain_id/work/:work_id", h.DashboardWork)
		dashboard.POST("/:subdomain_id/work/:work_id", h.DashboardSaveWork)
		dashboard.POST("/:subdomain_id/work/:work_id/delete", h.DashboardDeleteWork)

		dashboard.GET("/:subdomain_id/projects", h.DashboardProjects)
		dashboard.GET("/:subdomain_id/projects/:project_id", h.DashboardProject)
		dashboard.POST("/:subdomain_id/projects/:project_id", h.DashboardSaveProject)
		dashboard.POST("/:subdomain_id/projects/:project_id/delete", h.DashboardDeleteProject)
	}

	return r
}
