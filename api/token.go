package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"devfolio/auth"
)

// issueToken implements the password-grant style token endpoint. It accepts
// the same form fields an OAuth2 password flow would send.
func (m *APIModule) issueToken(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, ok := auth.Authenticate(m.db, username, password)
	if !ok {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect username or password"})
		return
	}

	token, err := auth.CreateAccessToken(user.ID, m.cfg.SecretKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating access token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   auth.TokenTTL.Seconds(),
	})
}
