package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectCreateAndGetByTitle(t *testing.T) {
	db := setupTestDB()
	svc := NewProjectService(db)
	user := createTestUser(db)
	category := createTestProjectCategory(db, "Web Development")

	created, err := svc.Create(ProjectInput{
		UserID:            user.ID,
		Title:             "My Portfolio",
		Description:       "The site you are looking at.",
		TechStack:         "Go, Gin, GORM",
		ProjectCategoryID: category.ID,
	})
	assert.NoError(t, err)

	found, err := svc.GetByTitle("My Portfolio")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.NotNil(t, found.ProjectCategory)
	assert.Equal(t, "Web Development", found.ProjectCategory.Name)
}

func TestProjectGetByTitle_NotFound(t *testing.T) {
	db := setupTestDB()
	svc := NewProjectService(db)

	_, err := svc.GetByTitle("does not exist")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectUpdate_Partial(t *testing.T) {
	db := setupTestDB()
	svc := NewProjectService(db)
	user := createTestUser(db)
	category := createTestProjectCategory(db, "CLI Tools")

	created, _ := svc.Create(ProjectInput{
		UserID:            user.ID,
		Title:             "devfolio",
		Description:       "A portfolio generator.",
		TechStack:         "Go",
		ProjectCategoryID: category.ID,
	})

	stack := "Go, Cobra"
	updated, err := svc.Update(created.ID, ProjectUpdate{TechStack: &stack})

	assert.NoError(t, err)
	assert.Equal(t, "Go, Cobra", updated.TechStack)
	assert.Equal(t, "devfolio", updated.Title)
	assert.Equal(t, "A portfolio generator.", updated.Description)
}

func TestProjectDelete_Missing(t *testing.T) {
	db := setupTestDB()
	svc := NewProjectService(db)

	deleted, err := svc.Delete(31337)

	assert.NoError(t, err)
	assert.Nil(t, deleted)
}
