package services

import (
	"fmt"
	"net/mail"

	"gorm.io/gorm"

	"devfolio/models"
)

type ContactService struct {
	db *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

type ContactInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Validate applies the contact form rules: name 2-50 chars, well-formed
// email, category from the fixed set, message at least 10 chars.
func (in ContactInput) Validate() error {
	if len(in.Name) < 2 || len(in.Name) > 50 {
		return fmt.Errorf("%w: name must be between 2 and 50 characters", ErrValidation)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if len(in.Message) < 10 {
		return fmt.Errorf("%w: message must be at least 10 characters", ErrValidation)
	}
	valid := false
	for _, c := range models.ContactCategories {
		if c == in.Category {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, in.Category)
	}
	return nil
}

func (s *ContactService) Create(in ContactInput) (*models.ContactMessage, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	message := models.ContactMessage{
		Name:     in.Name,
		Email:    in.Email,
		Category: in.Category,
		Message:  in.Message,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&message).Error
	})
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (s *ContactService) GetByID(id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	err := s.db.First(&message, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (s *ContactService) List() ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	if err := s.db.Order("id DESC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
