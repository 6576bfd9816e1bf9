package admin

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
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

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("test-session", store))
	router.LoadHTMLGlob("views/*.html")

	// Session fixture endpoint, test-only.
	router.GET("/test-login/:id", func(c *gin.Context) {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
		session := sessions.Default(c)
		session.Set("user_id", uint(id))
		session.Save()
		c.Status(http.StatusOK)
	})

	NewAdminModule(db).RegisterRoutes(router)
	return router
}

func createTestUser(db *gorm.DB, admin bool) *models.User {
	user := &models.User{
		Name:         "user" + strconv.FormatBool(admin),
		Email:        "user-" + strconv.FormatBool(admin) + "@example.com",
		PasswordHash: "hash",
	}
	db.Create(user)
	// The column default is true, so demotion happens after insert.
	if !admin {
		db.Model(user).Update("is_admin", false)
	}
	return user
}

// loginCookie primes a session for the given user and returns its cookie.
func loginCookie(router *gin.Engine, userID uint) string {
	req, _ := http.NewRequest("GET", "/test-login/"+strconv.FormatUint(uint64(userID), 10), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var pairs []string
	for _, c := range w.Result().Cookies() {
		pairs = append(pairs, c.Name+"="+c.Value)
	}
	return strings.Join(pairs, "; ")
}

func request(router *gin.Engine, method, path, cookie string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req, _ := http.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// uploadRequest posts a multipart form with an optional file part.
func uploadRequest(router *gin.Engine, path, cookie string, fields map[string]string, fileName string, fileData []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		writer.WriteField(name, value)
	}
	if fileData != nil {
		part, _ := writer.CreateFormFile("file", fileName)
		part.Write(fileData)
	}
	writer.Close()

	req, _ := http.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdmin_NotLoggedInRedirects(t *testing.T) {
	router := setupTestRouter(setupTestDB())

	w := request(router, "GET", "/admin/", "", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/auth/login")
}

func TestAdmin_NonAdminDenied(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	user := createTestUser(db, false)

	cookie := loginCookie(router, user.ID)
	w := request(router, "GET", "/admin/", cookie, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied")
}

func TestAdmin_Dashboard(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	user := createTestUser(db, true)

	cookie := loginCookie(router, user.ID)
	w := request(router, "GET", "/admin/", cookie, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome back")
}

func TestAdmin_UnknownSection(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	user := createTestUser(db, true)

	cookie := loginCookie(router, user.ID)
	w := request(router, "GET", "/admin/widgets", cookie, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdmin_CreateSkillAttachesSessionUser(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	user := createTestUser(db, true)
	category := models.SkillCategory{Name: "Languages"}
	db.Create(&category)

	cookie := loginCookie(router, user.ID)
	w := request(router, "POST", "/admin/skills/new", cookie, url.Values{
		"skill_name":        {"Go"},
		"skill_category_id": {strconv.FormatUint(uint64(category.ID), 10)},
		"proficiency_level": {"Advanced"},
	})

	assert.Equal(t, http.StatusFound, w.Code)

	var skill models.Skill
	assert.NoError(t, db.First(&skill).Error)
	assert.Equal(t, user.ID, skill.UserID)
	assert.Equal(t, "Go", skill.SkillName)
}

func TestAdmin_CreateInvalidSkillShowsError(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	user := createTestUser(db, true)
	category := models.SkillCategory{Name: "Languages"}
	db.Create(&category)

	cookie := loginCookie(router, user.ID)
	w := request(router, "POST", "/admin/skills/new", cookie, url.Values{
		"skill_name":        {"Go"},
		"skill_category_id": {strconv.FormatUint(uint64(category.ID), 10)},
		"proficiency_level": {"Wizard"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Skill{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAdmin_CreateImageFromUpload(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	user := createTestUser(db, true)

	cookie := loginCookie(router, user.ID)
	payload := []byte("fake png bytes")
	w := uploadRequest(router, "/admin/images/new", cookie, map[string]string{
		"name": "Screenshot",
	}, "shot.png", payload)

	assert.Equal(t, http.StatusFound, w.Code)

	var image models.Image
	assert.NoError(t, db.First(&image).Error)
	assert.Equal(t, "Screenshot", image.Name)
	assert.Empty(t, image.URL)
	assert.Equal(t, payload, image.FileData)
}

func TestAdmin_UploadReplacesImageURL(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	user := createTestUser(db, true)
	image := models.Image{Name: "Logo", URL: "https://example.com/logo.png"}
	db.Create(&image)

	cookie := loginCookie(router, user.ID)
	payload := []byte("uploaded logo")
	w := uploadRequest(router, "/admin/images/"+strconv.FormatUint(uint64(image.ID), 10), cookie, map[string]string{
		"name": "Logo",
	}, "logo.png", payload)

	assert.Equal(t, http.StatusFound, w.Code)

	var updated models.Image
	assert.NoError(t, db.First(&updated, image.ID).Error)
	assert.Empty(t, updated.URL)
	assert.Equal(t, payload, updated.FileData)
}

func TestAdmin_ClearExperienceEndDate(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	user := createTestUser(db, true)
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2022, 6, 30, 0, 0, 0, 0, time.UTC)
	experience := models.Experience{UserID: user.ID, CompanyName: "Acme", Role: "Engineer", StartDate: &start, EndDate: &end}
	db.Create(&experience)

	cookie := loginCookie(router, user.ID)
	w := request(router, "POST", "/admin/experiences/"+strconv.FormatUint(uint64(experience.ID), 10), cookie, url.Values{
		"clear_end_date": {"true"},
	})

	assert.Equal(t, http.StatusFound, w.Code)

	var updated models.Experience
	assert.NoError(t, db.First(&updated, experience.ID).Error)
	assert.Nil(t, updated.EndDate)
	assert.NotNil(t, updated.StartDate)
	assert.Equal(t, "Acme", updated.CompanyName)
}

func TestAdmin_EditResumeTouchesOnlyThatRow(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	user := createTestUser(db, true)
	first := models.Resume{UserID: user.ID, Link: "https://example.com/cv-v1.pdf"}
	second := models.Resume{UserID: user.ID, Link: "https://example.com/cv-v2.pdf"}
	db.Create(&first)
	db.Create(&second)

	cookie := loginCookie(router, user.ID)
	w := request(router, "POST", "/admin/resumes/"+strconv.FormatUint(uint64(second.ID), 10), cookie, url.Values{
		"link": {"https://example.com/cv-v3.pdf"},
	})

	assert.Equal(t, http.StatusFound, w.Code)

	var rows []models.Resume
	assert.NoError(t, db.Order("id").Find(&rows).Error)
	assert.Equal(t, "https://example.com/cv-v1.pdf", rows[0].Link)
	assert.Equal(t, "https://example.com/cv-v3.pdf", rows[1].Link)
}

func TestAdmin_MessagesAreReadOnly(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	user := createTestUser(db, true)

	cookie := loginCookie(router, user.ID)
	w := request(router, "POST", "/admin/messages/new", cookie, url.Values{
		"name": {"intruder"},
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdmin_CategoryLifecycle(t *testing.T) {
	db := setupTestDB()
	router := setupTestRouter(db)
	user := createTestUser(db, true)

	cookie := loginCookie(router, user.ID)

	w := request(router, "POST", "/admin/skill-categories/new", cookie, url.Values{
		"name": {"Frameworks"},
	})
	assert.Equal(t, http.StatusFound, w.Code)

	var category models.SkillCategory
	assert.NoError(t, db.First(&category).Error)
	assert.Equal(t, "Frameworks", category.Name)

	w = request(router, "POST", "/admin/skill-categories/"+strconv.FormatUint(uint64(category.ID), 10)+"/delete", cookie, nil)
	assert.Equal(t, http.StatusFound, w.Code)

	var count int64
	db.Model(&models.SkillCategory{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
