package services

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"devfolio/models"
)

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.AutoMigrate(
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
	return db
}

func createTestUser(db *gorm.DB) *models.User {
	user := &models.User{
		Name:         "testuser",
		Email:        "test@example.com",
		PasswordHash: "hashedpassword",
	}
	db.Create(user)
	return user
}

func createTestSkillCategory(db *gorm.DB, name string) *models.SkillCategory {
	category := &models.SkillCategory{Name: name}
	db.Create(category)
	return category
}

func createTestProjectCategory(db *gorm.DB, name string) *models.ProjectCategory {
	category := &models.ProjectCategory{Name: name}
	db.Create(category)
	return category
}
