package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"devfolio/models"
)

// TokenTTL is how long an issued bearer token stays valid.
const TokenTTL = 30 * time.Minute

// ErrInvalidCredentials covers every token failure mode: bad signature,
// expired token, malformed subject, unknown user. Callers surface it as 401.
var ErrInvalidCredentials = errors.New("could not validate credentials")

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateAccessToken issues an HS256 token with the user id as subject.
func CreateAccessToken(userID uint, secretKey string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

// UserFromToken validates a bearer token and resolves it to a user record.
func UserFromToken(db *gorm.DB, tokenString, secretKey string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCredentials
		}
		return []byte(secretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return nil, ErrInvalidCredentials
	}
	userID, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	if err := db.First(&user, uint(userID)).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Authenticate looks a user up by email and verifies the password.
func Authenticate(db *gorm.DB, email, password string) (*models.User, bool) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, false
	}
	if !CheckPasswordHash(password, user.PasswordHash) {
		return nil, false
	}
	return &user, true
}
