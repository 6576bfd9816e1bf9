package admin

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"devfolio/models"
)

// AdminModule serves the management panel. Every entity is described by a
// View in the registry; the handlers here are generic over those views.
type AdminModule struct {
	db       *gorm.DB
	registry *Registry
}

func NewAdminModule(db *gorm.DB) *AdminModule {
	return &AdminModule{
		db:       db,
		registry: NewRegistry(db),
	}
}

func (a *AdminModule) RegisterRoutes(router *gin.Engine) {
	adminGroup := router.Group("/admin")
	adminGroup.Use(a.requireAdmin)
	{
		adminGroup.GET("/", a.dashboard)
		adminGroup.GET("/:view", a.list)
		adminGroup.GET("/:view/new", a.newForm)
		adminGroup.POST("/:view/new", a.create)
		adminGroup.GET("/:view/:id", a.editForm)
		adminGroup.POST("/:view/:id", a.update)
		adminGroup.POST("/:view/:id/delete", a.delete)
	}
}

// requireAdmin checks the session user and their admin flag. Anyone else
// never sees the panel.
func (a *AdminModule) requireAdmin(c *gin.Context) {
	session := sessions.Default(c)
	userID := session.Get("user_id")

	if userID == nil {
		c.Redirect(http.StatusFound, "/auth/login")
		c.Abort()
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		session.Clear()
		session.Save()
		c.Redirect(http.StatusFound, "/auth/login")
		c.Abort()
		return
	}

	if !user.IsAdmin {
		c.HTML(http.StatusForbidden, "admin_error.html", gin.H{
			"error": "Access denied",
		})
		c.Abort()
		return
	}

	c.Set("admin_user", &user)
	c.Next()
}

func adminUser(c *gin.Context) *models.User {
	value, exists := c.Get("admin_user")
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

func (a *AdminModule) lookupView(c *gin.Context) (*View, bool) {
	view, ok := a.registry.Get(c.Param("view"))
	if !ok {
		c.HTML(http.StatusNotFound, "admin_error.html", gin.H{
			"error": "Unknown section",
		})
		return nil, false
	}
	return view, true
}

func parseViewID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.HTML(http.StatusNotFound, "admin_error.html", gin.H{
			"error": "Invalid id",
		})
		return 0, false
	}
	return uint(id), true
}

func (a *AdminModule) dashboard(c *gin.Context) {
	session := sessions.Default(c)
	flashes := session.Flashes()
	session.Save()

	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"user":    adminUser(c),
		"views":   a.registry.All(),
		"flashes": flashes,
	})
}

func (a *AdminModule) list(c *gin.Context) {
	view, ok := a.lookupView(c)
	if !ok {
		return
	}

	rows, err := view.List()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error loading " + view.Title,
		})
		return
	}

	session := sessions.Default(c)
	flashes := session.Flashes()
	session.Save()

	c.HTML(http.StatusOK, "admin_list.html", gin.H{
		"user":     adminUser(c),
		"view":     view,
		"rows":     rows,
		"flashes":  flashes,
		"views":    a.registry.All(),
		"editable": view.Create != nil,
	})
}

func (a *AdminModule) newForm(c *gin.Context) {
	view, ok := a.lookupView(c)
	if !ok {
		return
	}
	if view.Create == nil {
		c.HTML(http.StatusForbidden, "admin_error.html", gin.H{
			"error": view.Title + " cannot be created here",
		})
		return
	}
	c.HTML(http.StatusOK, "admin_form.html", gin.H{
		"user":   adminUser(c),
		"view":   view,
		"views":  a.registry.All(),
		"values": map[string]string{},
	})
}

// formValues collects the posted inputs for a view, keeping uploaded file
// bytes separate from the text fields.
func (a *AdminModule) formValues(c *gin.Context, view *View) (map[string]string, map[string][]byte) {
	values := make(map[string]string, len(view.Fields))
	files := make(map[string][]byte)
	for _, field := range view.Fields {
		if field.Type == "file" {
			if data := readFormFile(c, field.Name); len(data) > 0 {
				files[field.Name] = data
			}
			continue
		}
		values[field.Name] = c.PostForm(field.Name)
	}
	return values, files
}

// readFormFile returns the bytes of an uploaded file, or nil when the field
// was left empty.
func readFormFile(c *gin.Context, name string) []byte {
	header, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	file, err := header.Open()
	if err != nil {
		return nil
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil
	}
	return data
}

func (a *AdminModule) create(c *gin.Context) {
	view, ok := a.lookupView(c)
	if !ok {
		return
	}
	if view.Create == nil {
		c.HTML(http.StatusForbidden, "admin_error.html", gin.H{
			"error": view.Title + " cannot be created here",
		})
		return
	}

	values, files := a.formValues(c, view)
	if err := view.Create(adminUser(c), values, files); err != nil {
		c.HTML(http.StatusBadRequest, "admin_form.html", gin.H{
			"user":   adminUser(c),
			"view":   view,
			"views":  a.registry.All(),
			"values": values,
			"error":  err.Error(),
		})
		return
	}

	session := sessions.Default(c)
	session.AddFlash(view.Title + " created")
	session.Save()
	c.Redirect(http.StatusFound, "/admin/"+view.Slug)
}

func (a *AdminModule) editForm(c *gin.Context) {
	view, ok := a.lookupView(c)
	if !ok {
		return
	}
	id, ok := parseViewID(c)
	if !ok {
		return
	}
	if view.Update == nil {
		c.HTML(http.StatusForbidden, "admin_error.html", gin.H{
			"error": view.Title + " cannot be edited here",
		})
		return
	}

	values, err := view.Get(id)
	if err != nil {
		c.HTML(http.StatusNotFound, "admin_error.html", gin.H{
			"error": view.Title + " not found",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_form.html", gin.H{
		"user":   adminUser(c),
		"view":   view,
		"views":  a.registry.All(),
		"values": values,
		"id":     id,
	})
}

func (a *AdminModule) update(c *gin.Context) {
	view, ok := a.lookupView(c)
	if !ok {
		return
	}
	id, ok := parseViewID(c)
	if !ok {
		return
	}
	if view.Update == nil {
		c.HTML(http.StatusForbidden, "admin_error.html", gin.H{
			"error": view.Title + " cannot be edited here",
		})
		return
	}

	values, files := a.formValues(c, view)
	if err := view.Update(id, values, files); err != nil {
		c.HTML(http.StatusBadRequest, "admin_form.html", gin.H{
			"user":   adminUser(c),
			"view":   view,
			"views":  a.registry.All(),
			"values": values,
			"id":     id,
			"error":  err.Error(),
		})
		return
	}

	session := sessions.Default(c)
	session.AddFlash(view.Title + " updated")
	session.Save()
	c.Redirect(http.StatusFound, "/admin/"+view.Slug)
}

func (a *AdminModule) delete(c *gin.Context) {
	view, ok := a.lookupView(c)
	if !ok {
		return
	}
	id, ok := parseViewID(c)
	if !ok {
		return
	}
	if view.Delete == nil {
		c.HTML(http.StatusForbidden, "admin_error.html", gin.H{
			"error": view.Title + " cannot be deleted here",
		})
		return
	}

	if err := view.Delete(id); err != nil {
		c.HTML(http.StatusInternalServerError, "admin_error.html", gin.H{
			"error": "Error deleting from " + view.Title,
		})
		return
	}

	session := sessions.Default(c)
	session.AddFlash(view.Title + " deleted")
	session.Save()
	c.Redirect(http.StatusFound, "/admin/"+view.Slug)
}
