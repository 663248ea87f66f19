package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/subfolio-dev/subfolio/internal/auth"
	"github.com/subfolio-dev/subfolio/internal/models"
	"github.com/subfolio-dev/subfolio/internal/pages"
	"github.com/subfolio-dev/subfolio/internal/types"
	"github.com/subfolio-dev/subfolio/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

var errInvalidCredentials = errors.New("Invalid email or password")

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (h *Handler) setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	secure := h.Config.Protocol == "https"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.TokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   h.Config.CookieDomain,
		MaxAge:   maxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: sameSite,
	})
}

func (h *Handler) startSession(ctx *gin.Context, user *models.User) error {
	token, err := auth.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return err
	}

	h.setSessionCookie(ctx, token, int(auth.TokenTTL.Seconds()))
	return nil
}

// authenticate checks the credentials. Unknown emails and wrong passwords
// produce the same error.
func (h *Handler) authenticate(ctx *gin.Context, email, password string) (*models.User, error) {
	var user models.User

	err := h.DB.WithContext(ctx.Request.Context()).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, errInvalidCredentials
	}

	return &user, nil
}

func (h *Handler) CreateUser(ctx *gin.Context) {
	var req CreateUserRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx)
		return
	}

	req.Email = normalizeEmail(req.Email)

	var existingUser models.User

	err := h.DB.WithContext(ctx.Request.Context()).Where("email = ?", req.Email).First(&existingUser).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.Logger.Error("check existing user", zap.Error(err))
		internalError(ctx)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)

	if err != nil {
		h.Logger.Error("hash password", zap.Error(err))
		internalError(ctx)
		return
	}

	newUser := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: passwordHash,
	}

	if err := h.DB.WithContext(ctx.Request.Context()).Create(&newUser).Error; err != nil {
		h.Logger.Error("create user", zap.Error(err))
		internalError(ctx)
		return
	}

	if err := h.startSession(ctx, &newUser); err != nil {
		h.Logger.Error("generate session token", zap.Error(err))
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"user": types.UserResponse{
			ID:    newUser.ID,
			Name:  newUser.Name,
			Email: newUser.Email,
		},
	})
}

func (h *Handler) LoginUser(ctx *gin.Context) {
	var req LoginUserRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx)
		return
	}

	user, err := h.authenticate(ctx, req.Email, req.Password)

	if errors.Is(err, errInvalidCredentials) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err != nil {
		h.Logger.Error("fetch user", zap.Error(err))
		internalError(ctx)
		return
	}

	if err := h.startSession(ctx, user); err != nil {
		h.Logger.Error("generate session token", zap.Error(err))
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

func (h *Handler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:    currentUser.ID,
			Name:  currentUser.Name,
			Email: currentUser.Email,
		},
	})
}

func (h *Handler) LogoutUser(ctx *gin.Context) {
	h.setSessionCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

type loginView struct {
	Title string
	Email string
	Error string
}

func (h *Handler) LoginPage(ctx *gin.Context) {
	if utils.CurrentActor(ctx) != nil {
		ctx.Redirect(http.StatusSeeOther, pages.RootPath)
		return
	}

	ctx.HTML(http.StatusOK, "login.html", loginView{Title: "Sign in"})
}

func (h *Handler) LoginForm(ctx *gin.Context) {
	email := ctx.PostForm("email")

	user, err := h.authenticate(ctx, email, ctx.PostForm("password"))
	if err == nil {
		err = h.startSession(ctx, user)
	}

	if err != nil {
		message := err.Error()
		status := http.StatusBadRequest
		if !errors.Is(err, errInvalidCredentials) {
			h.Logger.Error("dashboard login", zap.Error(err))
			message = "Something went wrong!"
			status = http.StatusInternalServerError
		}
		ctx.HTML(status, "login.html", loginView{Title: "Sign in", Email: email, Error: message})
		return
	}

	ctx.Redirect(http.StatusSeeOther, pages.RootPath)
}

func (h *Handler) LogoutForm(ctx *gin.Context) {
	h.setSessionCookie(ctx, "", -1)
	ctx.Redirect(http.StatusSeeOther, pages.LoginPath)
}
