package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleCategory(t *testing.T) {
	assert.Equal(t, "Web development", titleCategory("web_development"))
	assert.Equal(t, "Hiring", titleCategory("hiring"))
	assert.Equal(t, "", titleCategory(""))
}

func TestSendContactNotification_NotConfigured(t *testing.T) {
	svc := NewEmailService("", "", "", "", "owner@example.com")

	err := svc.SendContactNotification("Jane", "jane@example.com", "hiring", "Hello")

	assert.Error(t, err)
}
