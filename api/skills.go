package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"devfolio/services"
)

func (m *APIModule) listSkills(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		id := uint(parsed)
		categoryID = &id
	}

	key := "skills"
	if categoryID != nil {
		key = "skills:" + strconv.FormatUint(uint64(*categoryID), 10)
	}
	data, err := m.cached(key, func() (interface{}, error) {
		return m.skills.List(categoryID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading skills"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (m *APIModule) getSkill(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	skill, err := m.skills.GetByID(id)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Skill not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading skill"})
		return
	}
	c.JSON(http.StatusOK, skill)
}

func (m *APIModule) createSkill(c *gin.Context) {
	var in services.SkillInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid skill payload"})
		return
	}
	if in.UserID == 0 {
		in.UserID = currentUser(c).ID
	}

	skill, err := m.skills.Create(in)
	if errors.Is(err, services.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while creating the skill"})
		return
	}
	m.flushCache()
	c.JSON(http.StatusOK, gin.H{
		"message":       "Skill created successfully",
		"created_skill": skill,
	})
}

func (m *APIModule) updateSkill(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in services.SkillUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid skill payload"})
		return
	}

	skill, err := m.skills.Update(id, in)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Skill not found"})
		return
	}
	if errors.Is(err, services.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while updating the skill"})
		return
	}
	m.flushCache()
	c.JSON(http.StatusOK, gin.H{
		"message":       "Skill updated successfully",
		"updated_skill": skill,
	})
}

func (m *APIModule) deleteSkill(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	skill, err := m.skills.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while deleting the skill"})
		return
	}
	if skill == nil {
		c.JSON(http.StatusOK, gin.H{
			"message":       "Skill not found",
			"deleted_skill": nil,
		})
		return
	}
	m.flushCache()
	c.JSON(http.StatusOK, gin.H{
		"message":       "Skill deleted successfully",
		"deleted_skill": skill,
	})
}
