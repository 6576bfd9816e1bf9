package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"devfolio/auth"
	"devfolio/models"
	"devfolio/services"
)

const userKey = "current_user"

// requireUser validates the bearer token and stores the resolved user on
// the context. Any failure answers 401 with a WWW-Authenticate header.
func (m *APIModule) requireUser(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		unauthorized(c)
		return
	}

	user, err := auth.UserFromToken(m.db, parts[1], m.cfg.SecretKey)
	if err != nil {
		unauthorized(c)
		return
	}

	c.Set(userKey, user)
	c.Next()
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
}

func currentUser(c *gin.Context) *models.User {
	value, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

// requireOwner is the single authorization policy: the authenticated user
// must match the owner recorded on the resource. ownerOf resolves the
// resource id to its owner's user id.
func (m *APIModule) requireOwner(ownerOf func(id uint) (uint, error), resourceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		idParam := c.Param("id")
		if idParam == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "resource id not provided"})
			return
		}
		id, err := strconv.ParseUint(idParam, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid resource id"})
			return
		}

		user := currentUser(c)
		if user == nil || user.ID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user credentials"})
			return
		}

		ownerID, err := ownerOf(uint(id))
		if err == services.ErrNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": resourceName + " not found"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "error loading resource"})
			return
		}

		if ownerID != user.ID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "unauthorized to access this resource"})
			return
		}
		c.Next()
	}
}

func (m *APIModule) ownerColumn(model interface{}, id uint) (uint, error) {
	var row struct {
		UserID uint
	}
	err := m.db.Model(model).Select("user_id").Where("id = ?", id).Take(&row).Error
	if err == gorm.ErrRecordNotFound {
		return 0, services.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return row.UserID, nil
}

func (m *APIModule) projectOwner(id uint) (uint, error) {
	return m.ownerColumn(&models.Project{}, id)
}

func (m *APIModule) skillOwner(id uint) (uint, error) {
	return m.ownerColumn(&models.Skill{}, id)
}

func (m *APIModule) experienceOwner(id uint) (uint, error) {
	return m.ownerColumn(&models.Experience{}, id)
}

func (m *APIModule) certificationOwner(id uint) (uint, error) {
	return m.ownerColumn(&models.Certification{}, id)
}

func (m *APIModule) resumeOwner(id uint) (uint, error) {
	return m.ownerColumn(&models.Resume{}, id)
}

// parseID reads the :id route param; the guard middleware has already
// rejected malformed values on guarded routes.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resource id"})
		return 0, false
	}
	return uint(id), true
}
