package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"devfolio/models"
	"devfolio/services"
)

func (m *APIModule) aboutInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":     "Full-stack developer",
		"location": "Remote",
		"summary":  "Backend-leaning developer building web services, CLI tooling and the occasional bot.",
		"links": gin.H{
			"github":   "https://github.com/devfolio",
			"linkedin": "https://linkedin.com/in/devfolio",
		},
	})
}

func (m *APIModule) aboutInterests(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"interests": []string{
			"Distributed systems",
			"Developer tooling",
			"Open source",
			"Music",
		},
	})
}

func (m *APIModule) contactInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"email":      m.cfg.SMTPFrom,
		"categories": models.ContactCategories,
	})
}

// submitContact validates and persists the message, then sends the email
// notification. A failed send is logged but never undoes the stored
// message.
func (m *APIModule) submitContact(c *gin.Context) {
	var in services.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact payload"})
		return
	}

	message, err := m.contacts.Create(in)
	if errors.Is(err, services.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while saving the message"})
		return
	}

	if err := m.mailer.SendContactNotification(message.Name, message.Email, message.Category, message.Message); err != nil {
		log.Printf("contact notification for message %d failed: %v", message.ID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Message sent successfully",
		"created_message": message,
	})
}
