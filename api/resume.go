package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"devfolio/services"
)

func (m *APIModule) getResume(c *gin.Context) {
	resume, err := m.resumes.Current()
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading resume"})
		return
	}
	c.JSON(http.StatusOK, resume)
}

func (m *APIModule) createResume(c *gin.Context) {
	var in services.ResumeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resume payload"})
		return
	}
	if in.UserID == 0 {
		in.UserID = currentUser(c).ID
	}

	resume, err := m.resumes.Create(in)
	if errors.Is(err, services.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while creating the resume"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Resume created successfully",
		"created_resume": resume,
	})
}

// updateResume replaces the link on the first resume row, matching the
// original first-match update semantics.
func (m *APIModule) updateResume(c *gin.Context) {
	var in struct {
		Link string `json:"link"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resume payload"})
		return
	}

	resume, err := m.resumes.UpdateLink(in.Link)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resume not found"})
		return
	}
	if errors.Is(err, services.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while updating the resume"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Resume updated successfully",
		"updated_resume": resume,
	})
}

func (m *APIModule) deleteResume(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resume, err := m.resumes.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while deleting the resume"})
		return
	}
	if resume == nil {
		c.JSON(http.StatusOK, gin.H{
			"message":        "Resume not found",
			"deleted_resume": nil,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Resume deleted successfully",
		"deleted_resume": resume,
	})
}
