package web

import (
	"bytes"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"

	"devfolio/auth"
	"devfolio/config"
	"devfolio/email"
	"devfolio/models"
	"devfolio/services"
)

// WebModule serves the server-rendered site. Every page pulls live data
// through the same services the API uses.
type WebModule struct {
	db  *gorm.DB
	cfg config.Config

	projects       *services.ProjectService
	skills         *services.SkillService
	experiences    *services.ExperienceService
	certifications *services.CertificationService
	resumes        *services.ResumeService
	contacts       *services.ContactService
	mailer         *email.EmailService
}

// markdown renderer configured with Goldmark and useful extensions
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithUnsafe(),
	),
)

func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return buf.String()
}

func NewWebModule(db *gorm.DB, cfg config.Config) *WebModule {
	return &WebModule{
		db:             db,
		cfg:            cfg,
		projects:       services.NewProjectService(db),
		skills:         services.NewSkillService(db),
		experiences:    services.NewExperienceService(db),
		certifications: services.NewCertificationService(db),
		resumes:        services.NewResumeService(db),
		contacts:       services.NewContactService(db),
		mailer:         email.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom),
	}
}

func (w *WebModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/", w.renderPage)
	router.GET("/projects", w.listProjects)
	router.GET("/projects/:title", w.projectDetail)
	router.GET("/resume", w.resumeRedirect)
	router.GET("/contact", w.contactForm)
	router.POST("/contact", w.contactSubmit)
	router.GET("/auth/login", w.loginPage)
	router.POST("/auth/login", w.loginPost)
	router.GET("/auth/logout", w.logout)
	router.GET("/:page", w.renderPage)
}

// pageTemplates maps URL page names to their templates. Anything outside
// this map falls through to the 404 error page.
var pageTemplates = map[string]string{
	"":           "web_home.html",
	"home":       "web_home.html",
	"about":      "web_about.html",
	"skills":     "web_skills.html",
	"education":  "web_education.html",
	"experience": "web_experience.html",
}

func (w *WebModule) renderPage(c *gin.Context) {
	page := c.Param("page")

	tmpl, ok := pageTemplates[page]
	if !ok {
		c.HTML(http.StatusNotFound, "web_error.html", gin.H{
			"error": "Page not found",
		})
		return
	}

	data := gin.H{"page": page}
	switch tmpl {
	case "web_about.html":
		data["bioHTML"] = template.HTML(renderMarkdown(aboutMarkdown))
	case "web_skills.html":
		skills, err := w.skills.List(nil)
		if err != nil {
			w.renderError(c, "Error loading skills")
			return
		}
		data["skillGroups"] = groupSkills(skills)
	case "web_education.html":
		certifications, err := w.certifications.List()
		if err != nil {
			w.renderError(c, "Error loading certifications")
			return
		}
		data["certifications"] = certifications
	case "web_experience.html":
		experiences, err := w.experiences.List()
		if err != nil {
			w.renderError(c, "Error loading experiences")
			return
		}
		data["experiences"] = experiences
	}

	c.HTML(http.StatusOK, tmpl, data)
}

func (w *WebModule) renderError(c *gin.Context, message string) {
	c.HTML(http.StatusInternalServerError, "web_error.html", gin.H{
		"error": message,
	})
}

// SkillGroup is a category heading with its skills, for the skills page.
type SkillGroup struct {
	Category string
	Skills   []models.Skill
}

func groupSkills(skills []models.Skill) []SkillGroup {
	var groups []SkillGroup
	index := map[string]int{}
	for _, skill := range skills {
		category := "Other"
		if skill.SkillCategory != nil {
			category = skill.SkillCategory.Name
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, SkillGroup{Category: category})
		}
		groups[i].Skills = append(groups[i].Skills, skill)
	}
	return groups
}

func (w *WebModule) listProjects(c *gin.Context) {
	projects, err := w.projects.List()
	if err != nil {
		w.renderError(c, "Error loading projects")
		return
	}
	c.HTML(http.StatusOK, "web_projects.html", gin.H{
		"projects": projects,
	})
}

func (w *WebModule) projectDetail(c *gin.Context) {
	title := c.Param("title")
	if decoded, err := url.PathUnescape(title); err == nil {
		title = decoded
	}

	project, err := w.projects.GetByTitle(title)
	if err == services.ErrNotFound {
		c.HTML(http.StatusNotFound, "web_error.html", gin.H{
			"error": "Project not found",
		})
		return
	}
	if err != nil {
		w.renderError(c, "Error loading project")
		return
	}
	c.HTML(http.StatusOK, "web_project_detail.html", gin.H{
		"project":         project,
		"descriptionHTML": template.HTML(renderMarkdown(project.Description)),
	})
}

func (w *WebModule) resumeRedirect(c *gin.Context) {
	resume, err := w.resumes.Current()
	if err == services.ErrNotFound {
		c.HTML(http.StatusNotFound, "web_error.html", gin.H{
			"error": "No resume available",
		})
		return
	}
	if err != nil {
		w.renderError(c, "Error loading resume")
		return
	}
	c.Redirect(http.StatusFound, resume.Link)
}

func (w *WebModule) contactForm(c *gin.Context) {
	session := sessions.Default(c)
	flashes := session.Flashes()
	session.Save()

	c.HTML(http.StatusOK, "web_contact.html", gin.H{
		"categories": models.ContactCategories,
		"flashes":    flashes,
		"form":       services.ContactInput{},
	})
}

func (w *WebModule) contactSubmit(c *gin.Context) {
	in := services.ContactInput{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Category: c.PostForm("category"),
		Message:  c.PostForm("message"),
	}

	message, err := w.contacts.Create(in)
	if errors.Is(err, services.ErrValidation) {
		c.HTML(http.StatusBadRequest, "web_contact.html", gin.H{
			"categories": models.ContactCategories,
			"error":      err.Error(),
			"form":       in,
		})
		return
	}
	if err != nil {
		w.renderError(c, "Error saving your message")
		return
	}

	// A failed notification must not lose the stored message.
	if err := w.mailer.SendContactNotification(message.Name, message.Email, message.Category, message.Message); err != nil {
		log.Printf("contact notification for message %d failed: %v", message.ID, err)
	}

	session := sessions.Default(c)
	session.AddFlash("Your message was sent. Thanks for reaching out!")
	session.Save()
	c.Redirect(http.StatusFound, "/contact")
}

func (w *WebModule) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "web_login.html", gin.H{})
}

func (w *WebModule) loginPost(c *gin.Context) {
	emailAddr := c.PostForm("email")
	password := c.PostForm("password")

	user, ok := auth.Authenticate(w.db, emailAddr, password)
	if !ok {
		c.HTML(http.StatusUnauthorized, "web_login.html", gin.H{
			"error": "Email or password incorrect",
			"email": emailAddr,
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()
	c.Redirect(http.StatusFound, "/admin")
}

func (w *WebModule) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}

const aboutMarkdown = `
I'm a backend-leaning full-stack developer. I build web services,
command line tooling and the occasional bot, mostly in Go and Python.

Outside of work I contribute to open source, tinker with home
automation and play guitar badly.

- **Currently:** building developer tooling
- **Interested in:** distributed systems, databases, teaching
`
