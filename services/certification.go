package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"devfolio/models"
)

type CertificationService struct {
	db *gorm.DB
}

func NewCertificationService(db *gorm.DB) *CertificationService {
	return &CertificationService{db: db}
}

type CertificationInput struct {
	UserID              uint       `json:"user_id"`
	Name                string     `json:"name"`
	IssuingOrganization string     `json:"issuing_organization"`
	IssueDate           *time.Time `json:"issue_date"`
	CredentialID        string     `json:"credential_id"`
	CredentialURL       string     `json:"credential_url"`
	SkillsAcquired      []string   `json:"skills_acquired"`
}

type CertificationUpdate struct {
	Name                *string    `json:"name"`
	IssuingOrganization *string    `json:"issuing_organization"`
	IssueDate           *time.Time `json:"issue_date"`
	// ClearIssueDate nulls the issue date when no replacement is given; a
	// nil IssueDate alone means "leave unchanged".
	ClearIssueDate bool      `json:"-"`
	CredentialID   *string   `json:"credential_id"`
	CredentialURL  *string   `json:"credential_url"`
	SkillsAcquired *[]string `json:"skills_acquired"`
}

// JoinSkills flattens a skills list into the comma-joined storage form.
func JoinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}

// SplitSkills parses the stored comma-joined form back into a list.
func SplitSkills(joined string) []string {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

func (s *CertificationService) Create(in CertificationInput) (*models.Certification, error) {
	if in.Name == "" || in.IssuingOrganization == "" {
		return nil, fmt.Errorf("%w: name and issuing_organization are required", ErrValidation)
	}

	certification := models.Certification{
		UserID:              in.UserID,
		Name:                in.Name,
		IssuingOrganization: in.IssuingOrganization,
		IssueDate:           in.IssueDate,
		CredentialID:        in.CredentialID,
		CredentialURL:       in.CredentialURL,
		SkillsAcquired:      JoinSkills(in.SkillsAcquired),
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&certification).Error
	})
	if err != nil {
		return nil, err
	}
	return &certification, nil
}

func (s *CertificationService) GetByID(id uint) (*models.Certification, error) {
	var certification models.Certification
	err := s.db.First(&certification, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &certification, nil
}

func (s *CertificationService) List() ([]models.Certification, error) {
	var certifications []models.Certification
	if err := s.db.Order("issue_date DESC").Find(&certifications).Error; err != nil {
		return nil, err
	}
	return certifications, nil
}

func (s *CertificationService) Update(id uint, in CertificationUpdate) (*models.Certification, error) {
	certification, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if in.Name != nil {
			certification.Name = *in.Name
		}
		if in.IssuingOrganization != nil {
			certification.IssuingOrganization = *in.IssuingOrganization
		}
		if in.IssueDate != nil {
			certification.IssueDate = in.IssueDate
		} else if in.ClearIssueDate {
			certification.IssueDate = nil
		}
		if in.CredentialID != nil {
			certification.CredentialID = *in.CredentialID
		}
		if in.CredentialURL != nil {
			certification.CredentialURL = *in.CredentialURL
		}
		if in.SkillsAcquired != nil {
			certification.SkillsAcquired = JoinSkills(*in.SkillsAcquired)
		}
		return tx.Save(certification).Error
	})
	if err != nil {
		return nil, err
	}
	return certification, nil
}

func (s *CertificationService) Delete(id uint) (*models.Certification, error) {
	certification, err := s.GetByID(id)
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&models.Certification{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return certification, nil
}
