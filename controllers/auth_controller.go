package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-booking/middleware"
	"hotel-booking/services"
	"hotel-booking/utils"
)

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	AuthSvc      *services.AuthService
	SecureCookie bool
}

func NewAuthController(svc *services.AuthService, secureCookie bool) *AuthController {
	return &AuthController{AuthSvc: svc, SecureCookie: secureCookie}
}

func (ctrl *AuthController) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", ctrl.SecureCookie, true)
}

func (ctrl *AuthController) Register(c *gin.Context) {
	var in services.RegisterInput
	if !bindJSON(c, &in) {
		return
	}
	profile, err := ctrl.AuthSvc.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, profile)
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload) {
		return
	}
	res, err := ctrl.AuthSvc.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	ctrl.setCookie(c, res.Token, int(time.Until(res.ExpiresAt).Seconds()))
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"details":   res.Profile,
		"isAdmin":   res.IsAdmin,
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
	})
}

func (ctrl *AuthController) Logout(c *gin.Context) {
	if err := ctrl.AuthSvc.Logout(c.Request.Context(), middleware.TokenFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	ctrl.setCookie(c, "", -1)
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "logged out"})
}

func (ctrl *AuthController) Me(c *gin.Context) {
	profile, err := ctrl.AuthSvc.CurrentUser(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, profile)
}
