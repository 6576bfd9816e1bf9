package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"devfolio/models"
)

const testSecret = "test-secret"

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	db.AutoMigrate(&models.User{})
	return db
}

func createTestUser(db *gorm.DB, password string) *models.User {
	hash, err := HashPassword(password)
	if err != nil {
		panic(err)
	}
	user := &models.User{
		Name:         "testuser",
		Email:        "test@example.com",
		PasswordHash: hash,
	}
	db.Create(user)
	return user
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")

	assert.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("hunter23", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	db := setupTestDB()
	user := createTestUser(db, "hunter22")

	token, err := CreateAccessToken(user.ID, testSecret)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	resolved, err := UserFromToken(db, token, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, user.Email, resolved.Email)
}

func TestUserFromToken_WrongSecret(t *testing.T) {
	db := setupTestDB()
	user := createTestUser(db, "hunter22")

	token, _ := CreateAccessToken(user.ID, testSecret)

	_, err := UserFromToken(db, token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserFromToken_Garbage(t *testing.T) {
	db := setupTestDB()

	_, err := UserFromToken(db, "not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserFromToken_UnknownUser(t *testing.T) {
	db := setupTestDB()

	token, _ := CreateAccessToken(999, testSecret)

	_, err := UserFromToken(db, token, testSecret)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate(t *testing.T) {
	db := setupTestDB()
	user := createTestUser(db, "hunter22")

	found, ok := Authenticate(db, user.Email, "hunter22")
	assert.True(t, ok)
	assert.Equal(t, user.ID, found.ID)

	_, ok = Authenticate(db, user.Email, "wrong")
	assert.False(t, ok)

	_, ok = Authenticate(db, "nobody@example.com", "hunter22")
	assert.False(t, ok)
}
