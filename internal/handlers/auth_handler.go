package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tickify/gateway/internal/helpers"
	"github.com/tickify/gateway/internal/session"
	"github.com/tickify/gateway/internal/upstream"
)

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	client, exists := c.Get("upstream")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Upstream client not found.")
		return
	}
	up := client.(*upstream.Client)

	user, err := up.Register(c.Request.Context(), upstream.RegisterParams{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		helpers.RespondUpstreamError(c, err, "Registration failed.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully.",
		"user":    user,
	})
}

// Login authenticates against the backend, opens a gateway session holding
// the upstream bearer token, and returns the gateway's own JWT. The
// upstream token is never handed to the client.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	client, exists := c.Get("upstream")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Upstream client not found.")
		return
	}
	up := client.(*upstream.Client)

	result, err := up.Login(c.Request.Context(), upstream.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		helpers.RespondUpstreamError(c, err, "Invalid credentials.")
		return
	}

	sessStore, exists := c.Get("sessions")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Session store not found.")
		return
	}
	sessions := sessStore.(*session.Store)

	sess, err := sessions.Create(c.Request.Context(), result.Token, result.User)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to open session.")
		return
	}

	secretValue, exists := c.Get("jwt_secret")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Signing secret not configured.")
		return
	}

	token, err := session.MintToken(secretValue.([]byte), sess, 24*time.Hour)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  sess.User,
	})
}

func Logout(c *gin.Context) {
	value, exists := c.Get("session")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Session not found in context.")
		return
	}
	sess := value.(session.Session)

	sessStore, exists := c.Get("sessions")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Session store not found.")
		return
	}
	sessions := sessStore.(*session.Store)

	if err := sessions.Delete(c.Request.Context(), sess.ID); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to close session.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out."})
}
