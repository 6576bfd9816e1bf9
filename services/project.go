package services

import (
	"fmt"

	"gorm.io/gorm"

	"devfolio/models"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type ProjectInput struct {
	UserID            uint   `json:"user_id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	TechStack         string `json:"tech_stack"`
	URL               string `json:"url"`
	ProjectCategoryID uint   `json:"project_category_id"`
}

type ProjectUpdate struct {
	Title             *string `json:"title"`
	Description       *string `json:"description"`
	TechStack         *string `json:"tech_stack"`
	URL               *string `json:"url"`
	ProjectCategoryID *uint   `json:"project_category_id"`
}

func (s *ProjectService) Create(in ProjectInput) (*models.Project, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	project := models.Project{
		UserID:            in.UserID,
		Title:             in.Title,
		Description:       in.Description,
		TechStack:         in.TechStack,
		URL:               in.URL,
		ProjectCategoryID: in.ProjectCategoryID,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&project).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(project.ID)
}

func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	err := s.db.Preload("Images").Preload("ProjectCategory").First(&project, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByTitle resolves a project by its exact title. The web project-detail
// route looks projects up this way, not by id.
func (s *ProjectService) GetByTitle(title string) (*models.Project, error) {
	var project models.Project
	err := s.db.Preload("Images").Preload("ProjectCategory").
		Where("title = ?", title).First(&project).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) List() ([]models.Project, error) {
	var projects []models.Project
	err := s.db.Preload("Images").Preload("ProjectCategory").
		Order("created_at DESC").Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectService) Update(id uint, in ProjectUpdate) (*models.Project, error) {
	project, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if in.Title != nil {
			project.Title = *in.Title
		}
		if in.Description != nil {
			project.Description = *in.Description
		}
		if in.TechStack != nil {
			project.TechStack = *in.TechStack
		}
		if in.URL != nil {
			project.URL = *in.URL
		}
		if in.ProjectCategoryID != nil {
			project.ProjectCategoryID = *in.ProjectCategoryID
		}
		return tx.Save(project).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *ProjectService) Delete(id uint) (*models.Project, error) {
	project, err := s.GetByID(id)
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&models.Project{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}
