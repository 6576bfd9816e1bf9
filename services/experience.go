package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"devfolio/models"
)

type ExperienceService struct {
	db *gorm.DB
}

func NewExperienceService(db *gorm.DB) *ExperienceService {
	return &ExperienceService{db: db}
}

type ExperienceInput struct {
	UserID      uint       `json:"user_id"`
	CompanyName string     `json:"company_name"`
	Role        string     `json:"role"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description string     `json:"description"`
}

type ExperienceUpdate struct {
	CompanyName *string    `json:"company_name"`
	Role        *string    `json:"role"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	// ClearEndDate nulls the end date when no replacement is given; a nil
	// EndDate alone means "leave unchanged".
	ClearEndDate bool    `json:"-"`
	Description  *string `json:"description"`
}

func checkDateOrder(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("%w: end date precedes start date", ErrValidation)
	}
	return nil
}

func (s *ExperienceService) Create(in ExperienceInput) (*models.Experience, error) {
	if in.CompanyName == "" || in.Role == "" {
		return nil, fmt.Errorf("%w: company_name and role are required", ErrValidation)
	}
	if err := checkDateOrder(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	experience := models.Experience{
		UserID:      in.UserID,
		CompanyName: in.CompanyName,
		Role:        in.Role,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Description: in.Description,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&experience).Error
	})
	if err != nil {
		return nil, err
	}
	return &experience, nil
}

func (s *ExperienceService) GetByID(id uint) (*models.Experience, error) {
	var experience models.Experience
	err := s.db.First(&experience, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &experience, nil
}

func (s *ExperienceService) List() ([]models.Experience, error) {
	var experiences []models.Experience
	if err := s.db.Order("start_date DESC").Find(&experiences).Error; err != nil {
		return nil, err
	}
	return experiences, nil
}

func (s *ExperienceService) Update(id uint, in ExperienceUpdate) (*models.Experience, error) {
	experience, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	start := experience.StartDate
	end := experience.EndDate
	if in.StartDate != nil {
		start = in.StartDate
	}
	if in.EndDate != nil {
		end = in.EndDate
	} else if in.ClearEndDate {
		end = nil
	}
	if err := checkDateOrder(start, end); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if in.CompanyName != nil {
			experience.CompanyName = *in.CompanyName
		}
		if in.Role != nil {
			experience.Role = *in.Role
		}
		if in.StartDate != nil {
			experience.StartDate = in.StartDate
		}
		if in.EndDate != nil {
			experience.EndDate = in.EndDate
		} else if in.ClearEndDate {
			experience.EndDate = nil
		}
		if in.Description != nil {
			experience.Description = *in.Description
		}
		return tx.Save(experience).Error
	})
	if err != nil {
		return nil, err
	}
	return experience, nil
}

func (s *ExperienceService) Delete(id uint) (*models.Experience, error) {
	experience, err := s.GetByID(id)
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&models.Experience{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return experience, nil
}
