package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillCreate(t *testing.T) {
	db := setupTestDB()
	svc := NewSkillService(db)
	user := createTestUser(db)
	category := createTestSkillCategory(db, "Languages")

	skill, err := svc.Create(SkillInput{
		UserID:           user.ID,
		SkillCategoryID:  category.ID,
		SkillName:        "Go",
		ProficiencyLevel: "Advanced",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Go", skill.SkillName)
	assert.Equal(t, "Advanced", skill.ProficiencyLevel)
	assert.NotNil(t, skill.SkillCategory)
	assert.Equal(t, "Languages", skill.SkillCategory.Name)
}

func TestSkillCreate_InvalidProficiency(t *testing.T) {
	db := setupTestDB()
	svc := NewSkillService(db)
	user := createTestUser(db)
	category := createTestSkillCategory(db, "Languages")

	_, err := svc.Create(SkillInput{
		UserID:           user.ID,
		SkillCategoryID:  category.ID,
		SkillName:        "Go",
		ProficiencyLevel: "Wizard",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestSkillCreate_MissingName(t *testing.T) {
	db := setupTestDB()
	svc := NewSkillService(db)
	user := createTestUser(db)
	category := createTestSkillCategory(db, "Languages")

	_, err := svc.Create(SkillInput{
		UserID:           user.ID,
		SkillCategoryID:  category.ID,
		ProficiencyLevel: "Beginner",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestSkillUpdate_PartialLeavesOtherFields(t *testing.T) {
	db := setupTestDB()
	svc := NewSkillService(db)
	user := createTestUser(db)
	category := createTestSkillCategory(db, "Languages")

	skill, err := svc.Create(SkillInput{
		UserID:           user.ID,
		SkillCategoryID:  category.ID,
		SkillName:        "Go",
		ProficiencyLevel: "Intermediate",
	})
	assert.NoError(t, err)

	level := "Expert"
	updated, err := svc.Update(skill.ID, SkillUpdate{ProficiencyLevel: &level})

	assert.NoError(t, err)
	assert.Equal(t, "Expert", updated.ProficiencyLevel)
	assert.Equal(t, "Go", updated.SkillName)
	assert.Equal(t, category.ID, updated.SkillCategoryID)
	assert.Equal(t, user.ID, updated.UserID)
}

func TestSkillUpdate_NotFound(t *testing.T) {
	db := setupTestDB()
	svc := NewSkillService(db)

	name := "Rust"
	_, err := svc.Update(999, SkillUpdate{SkillName: &name})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSkillDelete(t *testing.T) {
	db := setupTestDB()
	svc := NewSkillService(db)
	user := createTestUser(db)
	category := createTestSkillCategory(db, "Languages")

	skill, _ := svc.Create(SkillInput{
		UserID:           user.ID,
		SkillCategoryID:  category.ID,
		SkillName:        "Go",
		ProficiencyLevel: "Advanced",
	})

	deleted, err := svc.Delete(skill.ID)
	assert.NoError(t, err)
	assert.Equal(t, skill.ID, deleted.ID)

	_, err = svc.GetByID(skill.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSkillDelete_Missing(t *testing.T) {
	db := setupTestDB()
	svc := NewSkillService(db)

	deleted, err := svc.Delete(12345)

	assert.NoError(t, err)
	assert.Nil(t, deleted)
}

func TestSkillList_ByCategory(t *testing.T) {
	db := setupTestDB()
	svc := NewSkillService(db)
	user := createTestUser(db)
	languages := createTestSkillCategory(db, "Languages")
	databases := createTestSkillCategory(db, "Databases")

	svc.Create(SkillInput{UserID: user.ID, SkillCategoryID: languages.ID, SkillName: "Go", ProficiencyLevel: "Advanced"})
	svc.Create(SkillInput{UserID: user.ID, SkillCategoryID: languages.ID, SkillName: "Python", ProficiencyLevel: "Advanced"})
	svc.Create(SkillInput{UserID: user.ID, SkillCategoryID: databases.ID, SkillName: "Postgres", ProficiencyLevel: "Intermediate"})

	all, err := svc.List(nil)
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	scoped, err := svc.List(&languages.ID)
	assert.NoError(t, err)
	assert.Len(t, scoped, 2)
}
