package services

import (
	"fmt"

	"gorm.io/gorm"

	"devfolio/models"
)

type SkillService struct {
	db *gorm.DB
}

func NewSkillService(db *gorm.DB) *SkillService {
	return &SkillService{db: db}
}

type SkillInput struct {
	UserID           uint   `json:"user_id"`
	SkillCategoryID  uint   `json:"skill_category_id"`
	SkillName        string `json:"skill_name"`
	ProficiencyLevel string `json:"proficiency_level"`
}

// SkillUpdate carries only the fields the caller wants changed; nil fields
// are left untouched.
type SkillUpdate struct {
	SkillCategoryID  *uint   `json:"skill_category_id"`
	SkillName        *string `json:"skill_name"`
	ProficiencyLevel *string `json:"proficiency_level"`
}

func validProficiency(level string) bool {
	for _, l := range models.ProficiencyLevels {
		if l == level {
			return true
		}
	}
	return false
}

func (s *SkillService) Create(in SkillInput) (*models.Skill, error) {
	if in.SkillName == "" {
		return nil, fmt.Errorf("%w: skill_name is required", ErrValidation)
	}
	if in.ProficiencyLevel != "" && !validProficiency(in.ProficiencyLevel) {
		return nil, fmt.Errorf("%w: unknown proficiency level %q", ErrValidation, in.ProficiencyLevel)
	}

	skill := models.Skill{
		UserID:           in.UserID,
		SkillCategoryID:  in.SkillCategoryID,
		SkillName:        in.SkillName,
		ProficiencyLevel: in.ProficiencyLevel,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&skill).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(skill.ID)
}

func (s *SkillService) GetByID(id uint) (*models.Skill, error) {
	var skill models.Skill
	err := s.db.Preload("SkillCategory").First(&skill, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// List returns all skills, optionally filtered by category.
func (s *SkillService) List(categoryID *uint) ([]models.Skill, error) {
	query := s.db.Preload("SkillCategory").Order("created_at DESC")
	if categoryID != nil {
		query = query.Where("skill_category_id = ?", *categoryID)
	}
	var skills []models.Skill
	if err := query.Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (s *SkillService) Update(id uint, in SkillUpdate) (*models.Skill, error) {
	skill, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.ProficiencyLevel != nil && !validProficiency(*in.ProficiencyLevel) {
		return nil, fmt.Errorf("%w: unknown proficiency level %q", ErrValidation, *in.ProficiencyLevel)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if in.SkillCategoryID != nil {
			skill.SkillCategoryID = *in.SkillCategoryID
		}
		if in.SkillName != nil {
			skill.SkillName = *in.SkillName
		}
		if in.ProficiencyLevel != nil {
			skill.ProficiencyLevel = *in.ProficiencyLevel
		}
		return tx.Save(skill).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Delete removes a skill and returns it. A missing id yields (nil, nil).
func (s *SkillService) Delete(id uint) (*models.Skill, error) {
	skill, err := s.GetByID(id)
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&models.Skill{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return skill, nil
}
