package handlers

import (
	"net/http"
	"os"

	"github.com/4lejanddr0/communityevents/internal/middleware"
	"github.com/4lejanddr0/communityevents/internal/models"
	"github.com/4lejanddr0/communityevents/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/supabase-community/gotrue-go/types"
)

type signupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Signup(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		user := &models.User{
			Email:    req.Email,
			Username: req.Username,
			FullName: req.Fullname,
		}

		res, err := us.CreateUser(c.Request.Context(), user, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(res, "Account created, check your email to confirm"))
	}
}

func Login(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		res, err := us.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		if tokenRes, ok := res.(*types.TokenResponse); ok && tokenRes.AccessToken != "" {
			setAuthCookies(c, tokenRes)
		}

		c.JSON(http.StatusOK, models.SuccessResponse(res, "Signed in"))
	}
}

func RefreshToken(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshToken, err := c.Cookie("refresh_token")
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("refresh token not found"))
			return
		}

		res, err := us.RefreshToken(c.Request.Context(), refreshToken)
		if err != nil {
			respondError(c, err)
			return
		}

		if tokenRes, ok := res.(*types.TokenResponse); ok && tokenRes.AccessToken != "" {
			setAuthCookies(c, tokenRes)
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Session refreshed"))
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		isProduction := os.Getenv("GIN_MODE") == "production"

		c.SetCookie("access_token", "", -1, "/", "", isProduction, true)
		c.SetCookie("refresh_token", "", -1, "/", "", isProduction, true)

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Logged out successfully"))
	}
}

func Profile() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.CallerClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"user_id":    claims.UserID,
			"email":      claims.Email,
			"username":   claims.Username,
			"fullname":   claims.Fullname,
			"avatar_url": claims.AvatarURL,
		}, ""))
	}
}

func setAuthCookies(c *gin.Context, tokenRes *types.TokenResponse) {
	isProduction := os.Getenv("GIN_MODE") == "production"
	c.SetCookie("access_token", tokenRes.AccessToken, tokenRes.ExpiresIn, "/", "", isProduction, true)
	c.SetCookie("refresh_token", tokenRes.RefreshToken, 3600*24*30, "/", "", isProduction, true)
}
