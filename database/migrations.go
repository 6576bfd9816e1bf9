package database

import (
	"log"

	"devfolio/models"

	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.ProjectCategory{},
		&models.Project{},
		&models.ImageCategory{},
		&models.Image{},
		&models.SkillCategory{},
		&models.Skill{},
		&models.Experience{},
		&models.Certification{},
		&models.Resume{},
		&models.ContactMessage{},
	)

	if err != nil {
		log.Printf("Error running migrations: %v", err)
		return err
	}

	log.Println("Migrations completed successfully")
	return nil
}

// SeedCategories inserts the default category rows if they are missing.
// Safe to run on every startup.
func SeedCategories(db *gorm.DB) error {
	for _, name := range []string{"Web Development", "CLI Tools", "Bots", "Other"} {
		var category models.ProjectCategory
		err := db.Where("name = ?", name).First(&category).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&models.ProjectCategory{Name: name}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	for _, name := range []string{"Languages", "Frameworks", "Databases", "Tooling"} {
		var category models.SkillCategory
		err := db.Where("name = ?", name).First(&category).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&models.SkillCategory{Name: name}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	for _, name := range []string{"Screenshots", "Logos", "Diagrams"} {
		var category models.ImageCategory
		err := db.Where("name = ?", name).First(&category).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&models.ImageCategory{Name: name}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	return nil
}
