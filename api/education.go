package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"devfolio/models"
	"devfolio/services"
)

// certificationSchema is the API shape of a certification: the stored
// comma-joined skills string comes back as a proper list.
type certificationSchema struct {
	ID                  uint       `json:"id"`
	UserID              uint       `json:"user_id"`
	Name                string     `json:"name"`
	IssuingOrganization string     `json:"issuing_organization"`
	IssueDate           *time.Time `json:"issue_date"`
	CredentialID        string     `json:"credential_id"`
	CredentialURL       string     `json:"credential_url"`
	SkillsAcquired      []string   `json:"skills_acquired"`
}

func newCertificationSchema(c *models.Certification) certificationSchema {
	return certificationSchema{
		ID:                  c.ID,
		UserID:              c.UserID,
		Name:                c.Name,
		IssuingOrganization: c.IssuingOrganization,
		IssueDate:           c.IssueDate,
		CredentialID:        c.CredentialID,
		CredentialURL:       c.CredentialURL,
		SkillsAcquired:      services.SplitSkills(c.SkillsAcquired),
	}
}

func (m *APIModule) educationInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"institution_name": "Open Source University",
		"degree":           "Software Engineering",
		"field_of_study":   "Information Technology",
		"start_date":       "2019-09-01",
		"end_date":         "2023-06-30",
		"description": "Software engineering program focused on backend web " +
			"development, covering service design, databases, and deployment.",
		"relevant_coursework": []string{
			"Distributed Systems",
			"Database Design",
			"Web Application Security",
		},
		"skills_acquired": []string{
			"Web Development",
			"Back-End Web Development",
			"API Development",
		},
	})
}

func (m *APIModule) listCertifications(c *gin.Context) {
	certifications, err := m.certifications.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading certifications"})
		return
	}
	schemas := make([]certificationSchema, 0, len(certifications))
	for i := range certifications {
		schemas = append(schemas, newCertificationSchema(&certifications[i]))
	}
	c.JSON(http.StatusOK, schemas)
}

func (m *APIModule) getCertification(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	certification, err := m.certifications.GetByID(id)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Certification not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error loading certification"})
		return
	}
	c.JSON(http.StatusOK, newCertificationSchema(certification))
}

func (m *APIModule) createCertification(c *gin.Context) {
	var in services.CertificationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid certification payload"})
		return
	}
	if in.UserID == 0 {
		in.UserID = currentUser(c).ID
	}

	certification, err := m.certifications.Create(in)
	if errors.Is(err, services.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while creating the certification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":               "Certification created successfully",
		"created_certification": newCertificationSchema(certification),
	})
}

func (m *APIModule) updateCertification(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in services.CertificationUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid certification payload"})
		return
	}

	certification, err := m.certifications.Update(id, in)
	if err == services.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Certification not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while updating the certification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":               "Certification updated successfully",
		"updated_certification": newCertificationSchema(certification),
	})
}

func (m *APIModule) deleteCertification(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	certification, err := m.certifications.Delete(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while deleting the certification"})
		return
	}
	if certification == nil {
		c.JSON(http.StatusOK, gin.H{
			"message":               "Certification not found",
			"deleted_certification": nil,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":               "Certification deleted successfully",
		"deleted_certification": newCertificationSchema(certification),
	})
}
