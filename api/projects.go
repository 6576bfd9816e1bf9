package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"devfolio/services"
)

func (m *APIModule) listProjects(c *gin.Context) {
	data, err := m.cached("projects", func() (interface{}, error) {
		return m.projects.List()
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading projects"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (m *APIModule) getProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	project, err := m.projects.GetByID(id)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading project"})
		return
	}
	c.JSON(http.StatusOK, project)
}

func (m *APIModule) createProject(c *gin.Context) {
	var in services.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project payload"})
		return
	}
	if in.UserID == 0 {
		in.UserID = currentUser(c).ID
	}

	project, err := m.projects.Create(in)
	if errors.Is(err, services.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while creating the project"})
		return
	}
	m.flushCache()
	c.JSON(http.StatusOK, gin.H{
		"message":         "Project created successfully",
		"created_project": project,
	})
}

func (m *APIModule) updateProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in services.ProjectUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project payload"})
		return
	}

	project, err := m.projects.Update(id, in)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while updating the project"})
		return
	}
	m.flushCache()
	c.JSON(http.StatusOK, gin.H{
		"message":         "Project updated successfully",
		"updated_project": project,
	})
}

func (m *APIModule) deleteProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	project, err := m.projects.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while deleting the project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusOK, gin.H{
			"message":         "Project not found",
			"deleted_project": nil,
		})
		return
	}
	m.flushCache()
	c.JSON(http.StatusOK, gin.H{
		"message":         "Project deleted successfully",
		"deleted_project": project,
	})
}
