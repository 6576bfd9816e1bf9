package services

import (
	"fmt"

	"gorm.io/gorm"

	"devfolio/models"
)

// ResumeService deliberately allows multiple resume rows per user; "the"
// resume is whichever row First() returns, matching the original
// first-match semantics.
type ResumeService struct {
	db *gorm.DB
}

func NewResumeService(db *gorm.DB) *ResumeService {
	return &ResumeService{db: db}
}

type ResumeInput struct {
	UserID uint   `json:"user_id"`
	Link   string `json:"link"`
}

func (s *ResumeService) Create(in ResumeInput) (*models.Resume, error) {
	if in.Link == "" {
		return nil, fmt.Errorf("%w: link is required", ErrValidation)
	}
	resume := models.Resume{UserID: in.UserID, Link: in.Link}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&resume).Error
	})
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// Current returns the first resume row, if any.
func (s *ResumeService) Current() (*models.Resume, error) {
	var resume models.Resume
	err := s.db.First(&resume).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (s *ResumeService) GetByID(id uint) (*models.Resume, error) {
	var resume models.Resume
	err := s.db.First(&resume, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (s *ResumeService) List() ([]models.Resume, error) {
	var resumes []models.Resume
	if err := s.db.Order("created_at DESC").Find(&resumes).Error; err != nil {
		return nil, err
	}
	return resumes, nil
}

// Update replaces the link of one specific resume row.
func (s *ResumeService) Update(id uint, link string) (*models.Resume, error) {
	if link == "" {
		return nil, fmt.Errorf("%w: link is required", ErrValidation)
	}
	resume, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		resume.Link = link
		return tx.Save(resume).Error
	})
	if err != nil {
		return nil, err
	}
	return resume, nil
}

// UpdateLink replaces the link of the first resume row.
func (s *ResumeService) UpdateLink(link string) (*models.Resume, error) {
	if link == "" {
		return nil, fmt.Errorf("%w: link is required", ErrValidation)
	}
	resume, err := s.Current()
	if err != nil {
		return nil, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		resume.Link = link
		return tx.Save(resume).Error
	})
	if err != nil {
		return nil, err
	}
	return resume, nil
}

func (s *ResumeService) Delete(id uint) (*models.Resume, error) {
	resume, err := s.GetByID(id)
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&models.Resume{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return resume, nil
}
