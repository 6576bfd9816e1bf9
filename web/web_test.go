package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"devfolio/auth"
	"devfolio/config"
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

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("test-session", store))
	router.LoadHTMLGlob("views/*.html")
	NewWebModule(db, config.Config{}).RegisterRoutes(router)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRenderPage_Home(t *testing.T) {
	router := setupTestRouter(setupTestDB())

	w := get(router, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hi, I build things")
}

func TestRenderPage_KnownPages(t *testing.T) {
	router := setupTestRouter(setupTestDB())

	for _, page := range []string{"/about", "/skills", "/education", "/experience"} {
		w := get(router, page)
		assert.Equal(t, http.StatusOK, w.Code, page)
	}
}

func TestRenderPage_UnknownFallsBackTo404(t *testing.T) {
	router := setupTestRouter(setupTestDB())

	w := get(router, "/nonexistent")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestProjectDetail(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)

	category := models.ProjectCategory{Name: "Web Development"}
	db.Create(&category)
	user := models.User{Name: "owner", Email: "owner@example.com", PasswordHash: "x"}
	db.Create(&user)
	project := models.Project{UserID: user.ID, Title: "My Portfolio", ProjectCategoryID: category.ID}
	db.Create(&project)

	w := get(router, "/projects/My%20Portfolio")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "My Portfolio")
}

func TestProjectDetail_NotFound(t *testing.T) {
	router := setupTestRouter(setupTestDB())

	w := get(router, "/projects/nope")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Project not found")
}

func TestResumeRedirect(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)

	db.Create(&models.Resume{UserID: 1, Link: "https://example.com/cv.pdf"})

	w := get(router, "/resume")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com/cv.pdf", w.Header().Get("Location"))
}

func TestResumeRedirect_NoneAvailable(t *testing.T) {
	router := setupTestRouter(setupTestDB())

	w := get(router, "/resume")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No resume available")
}

func TestContactSubmit(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)

	w := postForm(router, "/contact", url.Values{
		"name":     {"Jane Visitor"},
		"email":    {"jane@example.com"},
		"category": {"freelance"},
		"message":  {"I have a project for you."},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/contact", w.Header().Get("Location"))

	var count int64
	db.Model(&models.ContactMessage{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestContactSubmit_InvalidReRendersForm(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)

	w := postForm(router, "/contact", url.Values{
		"name":     {"Jane Visitor"},
		"email":    {"jane@example.com"},
		"category": {"freelance"},
		"message":  {"short"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.ContactMessage{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestLogin(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)

	hash, _ := auth.HashPassword("hunter22")
	db.Create(&models.User{Name: "owner", Email: "owner@example.com", PasswordHash: hash})

	w := postForm(router, "/auth/login", url.Values{
		"email":    {"owner@example.com"},
		"password": {"hunter22"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestLogin_WrongPassword(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)

	hash, _ := auth.HashPassword("hunter22")
	db.Create(&models.User{Name: "owner", Email: "owner@example.com", PasswordHash: hash})

	w := postForm(router, "/auth/login", url.Values{
		"email":    {"owner@example.com"},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Email or password incorrect")
}
