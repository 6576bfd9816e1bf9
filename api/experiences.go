package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"devfolio/services"
)

func (m *APIModule) listExperiences(c *gin.Context) {
	experiences, err := m.experiences.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading experiences"})
		return
	}
	c.JSON(http.StatusOK, experiences)
}

func (m *APIModule) getExperience(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	experience, err := m.experiences.GetByID(id)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Experience not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading experience"})
		return
	}
	c.JSON(http.StatusOK, experience)
}

func (m *APIModule) createExperience(c *gin.Context) {
	var in services.ExperienceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid experience payload"})
		return
	}
	if in.UserID == 0 {
		in.UserID = currentUser(c).ID
	}

	experience, err := m.experiences.Create(in)
	if errors.Is(err, services.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while creating the experience"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":            "Experience created successfully",
		"created_experience": experience,
	})
}

func (m *APIModule) updateExperience(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in services.ExperienceUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid experience payload"})
		return
	}

	experience, err := m.experiences.Update(id, in)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Experience not found"})
		return
	}
	if errors.Is(err, services.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while updating the experience"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":            "Experience updated successfully",
		"updated_experience": experience,
	})
}

func (m *APIModule) deleteExperience(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	experience, err := m.experiences.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while deleting the experience"})
		return
	}
	if experience == nil {
		c.JSON(http.StatusOK, gin.H{
			"message":            "Experience not found",
			"deleted_experience": nil,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":            "Experience deleted successfully",
		"deleted_experience": experience,
	})
}
