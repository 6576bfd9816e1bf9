package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"devfolio/models"
)

func TestContactCreate(t *testing.T) {
	db := setupTestDB()
	svc := NewContactService(db)

	message, err := svc.Create(ContactInput{
		Name:     "Jane Visitor",
		Email:    "jane@example.com",
		Category: models.ContactCategoryHiring,
		Message:  "I would like to talk about a role.",
	})

	assert.NoError(t, err)
	assert.NotZero(t, message.ID)
}

func TestContactValidation(t *testing.T) {
	cases := []struct {
		name  string
		input ContactInput
	}{
		{"name too short", ContactInput{Name: "J", Email: "j@example.com", Category: "other", Message: "long enough text"}},
		{"name too long", ContactInput{Name: string(make([]byte, 51)), Email: "j@example.com", Category: "other", Message: "long enough text"}},
		{"bad email", ContactInput{Name: "Jane", Email: "not-an-email", Category: "other", Message: "long enough text"}},
		{"short message", ContactInput{Name: "Jane", Email: "j@example.com", Category: "other", Message: "short"}},
		{"unknown category", ContactInput{Name: "Jane", Email: "j@example.com", Category: "billing", Message: "long enough text"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.input.Validate(), ErrValidation)
		})
	}
}

func TestContactCreate_InvalidNotPersisted(t *testing.T) {
	db := setupTestDB()
	svc := NewContactService(db)

	_, err := svc.Create(ContactInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Category: "other",
		Message:  "short",
	})
	assert.ErrorIs(t, err, ErrValidation)

	var count int64
	db.Model(&models.ContactMessage{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
