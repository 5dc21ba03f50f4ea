package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tickify/gateway/internal/helpers"
	"github.com/tickify/gateway/internal/session"
	"github.com/tickify/gateway/internal/upstream"
)

func GetProfile(c *gin.Context) {
	value, exists := c.Get("session")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Session not found in context.")
		return
	}
	sess := value.(session.Session)

	client, exists := c.Get("upstream")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Upstream client not found.")
		return
	}
	up := client.(*upstream.Client)

	user, err := up.GetProfile(c.Request.Context(), sess.Token)
	if err != nil {
		// The session snapshot still renders a usable profile page.
		c.JSON(http.StatusOK, gin.H{"user": sess.User, "notice": "Profile may be out of date."})
		return
	}

	if user != sess.User {
		sessStore, ok := c.Get("sessions")
		if ok {
			sess.User = user
			sessions := sessStore.(*session.Store)
			if err := sessions.Update(c.Request.Context(), sess); err == nil {
				c.Set("session", sess)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// UpdateProfile proxies the change upstream and refreshes the session
// snapshot so every subscriber sees the new identity at once.
func UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	value, exists := c.Get("session")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Session not found in context.")
		return
	}
	sess := value.(session.Session)

	client, exists := c.Get("upstream")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Upstream client not found.")
		return
	}
	up := client.(*upstream.Client)

	user, err := up.UpdateProfile(c.Request.Context(), sess.Token, upstream.ProfileUpdate{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		helpers.RespondUpstreamError(c, err, "Profile not found.")
		return
	}

	sessStore, exists := c.Get("sessions")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Session store not found.")
		return
	}
	sessions := sessStore.(*session.Store)

	sess.User = user
	if err := sessions.Update(c.Request.Context(), sess); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update session.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully.",
		"user":    user,
	})
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	value, exists := c.Get("session")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Session not found in context.")
		return
	}
	sess := value.(session.Session)

	client, exists := c.Get("upstream")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Upstream client not found.")
		return
	}
	up := client.(*upstream.Client)

	err := up.ChangePassword(c.Request.Context(), sess.Token, upstream.PasswordChange{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		helpers.RespondUpstreamError(c, err, "Password change failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully."})
}
