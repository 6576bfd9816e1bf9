package services

import (
	"fmt"

	"gorm.io/gorm"

	"devfolio/models"
)

type ImageService struct {
	db *gorm.DB
}

func NewImageService(db *gorm.DB) *ImageService {
	return &ImageService{db: db}
}

type ImageInput struct {
	Name            string `json:"name"`
	URL             string `json:"url"`
	FileData        []byte `json:"-"`
	ImageCategoryID *uint  `json:"image_category_id"`
	ProjectID       *uint  `json:"project_id"`
}

type ImageUpdate struct {
	Name            *string `json:"name"`
	URL             *string `json:"url"`
	FileData        []byte  `json:"-"`
	ImageCategoryID *uint   `json:"image_category_id"`
	ProjectID       *uint   `json:"project_id"`
}

// Exactly one display source per image: either an uploaded payload or an
// external URL.
func checkImageSource(url string, data []byte) error {
	hasURL := url != ""
	hasData := len(data) > 0
	if hasURL == hasData {
		return fmt.Errorf("%w: provide exactly one of url or file data", ErrValidation)
	}
	return nil
}

func (s *ImageService) Create(in ImageInput) (*models.Image, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := checkImageSource(in.URL, in.FileData); err != nil {
		return nil, err
	}

	image := models.Image{
		Name:            in.Name,
		URL:             in.URL,
		FileData:        in.FileData,
		ImageCategoryID: in.ImageCategoryID,
		ProjectID:       in.ProjectID,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&image).Error
	})
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (s *ImageService) GetByID(id uint) (*models.Image, error) {
	var image models.Image
	err := s.db.Preload("ImageCategory").First(&image, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// List returns all images, optionally scoped to one project.
func (s *ImageService) List(projectID *uint) ([]models.Image, error) {
	query := s.db.Preload("ImageCategory")
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}
	var images []models.Image
	if err := query.Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (s *ImageService) Update(id uint, in ImageUpdate) (*models.Image, error) {
	image, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	url := image.URL
	data := image.FileData
	if in.URL != nil {
		url = *in.URL
	}
	if in.FileData != nil {
		data = in.FileData
	}
	// Switching source clears the other one.
	if in.URL != nil && *in.URL != "" {
		data = nil
	}
	if len(in.FileData) > 0 {
		url = ""
	}
	if err := checkImageSource(url, data); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if in.Name != nil {
			image.Name = *in.Name
		}
		image.URL = url
		image.FileData = data
		if in.ImageCategoryID != nil {
			image.ImageCategoryID = in.ImageCategoryID
		}
		if in.ProjectID != nil {
			image.ProjectID = in.ProjectID
		}
		return tx.Save(image).Error
	})
	if err != nil {
		return nil, err
	}
	return image, nil
}

func (s *ImageService) Delete(id uint) (*models.Image, error) {
	image, err := s.GetByID(id)
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&models.Image{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return image, nil
}
