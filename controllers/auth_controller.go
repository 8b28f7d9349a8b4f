package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joanie-store/storefront/middleware"
	"github.com/joanie-store/storefront/models"
	"github.com/joanie-store/storefront/services"
)

// AuthController handles sign-up, sign-in and session lookups.
type AuthController struct {
	authService  services.AuthService
	tokens       *services.TokenService
	secureCookie bool
}

func NewAuthController(authService services.AuthService, tokens *services.TokenService, secureCookie bool) *AuthController {
	return &AuthController{authService: authService, tokens: tokens, secureCookie: secureCookie}
}

// Register handles POST /auth/register and signs the new user in.
func (ac *AuthController) Register(ctx *gin.Context) {
	var req models.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": registerError(err)})
		return
	}

	user, svcErr := ac.authService.Register(ctx.Request.Context(), &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}
	token, err := ac.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	ac.setSessionCookie(ctx, token)
	ctx.JSON(http.StatusCreated, models.LoginResponse{Success: true, Token: token, User: user})
}

// Login handles POST /auth/login.
func (ac *AuthController) Login(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, token, svcErr := ac.authService.Login(ctx.Request.Context(), &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ac.setSessionCookie(ctx, token)
	ctx.JSON(http.StatusOK, models.LoginResponse{Success: true, Token: token, User: user})
}

// Logout handles POST /auth/logout by expiring the session cookie.
func (ac *AuthController) Logout(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, "", -1, "/", "", ac.secureCookie, true)
	ctx.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// Session handles GET /auth/session. Anonymous callers get {"user": null}.
func (ac *AuthController) Session(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, models.SessionResponse{
		User: ac.authService.CurrentUser(ctx.Request.Context(), middleware.UserID(ctx)),
	})
}

func (ac *AuthController) setSessionCookie(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, token, int(ac.tokens.TTL().Seconds()), "/", "", ac.secureCookie, true)
}

func registerError(err error) string {
	switch failedField(err) {
	case "email":
		return "Valid email required"
	case "password":
		return "Password must be at least 8 characters"
	case "name":
		return "Name is too long"
	default:
		return "Invalid request body"
	}
}
