package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"devfolio/config"
	"devfolio/email"
	"devfolio/services"
)

// APIModule serves the JSON surface under /api. Read endpoints for the
// hot entities go through an in-process cache that is flushed on every
// mutation.
type APIModule struct {
	db    *gorm.DB
	cfg   config.Config
	cache *gocache.Cache

	projects       *services.ProjectService
	skills         *services.SkillService
	experiences    *services.ExperienceService
	certifications *services.CertificationService
	resumes        *services.ResumeService
	images         *services.ImageService
	contacts       *services.ContactService
	mailer         *email.EmailService
}

func NewAPIModule(db *gorm.DB, cfg config.Config) *APIModule {
	return &APIModule{
		db:             db,
		cfg:            cfg,
		cache:          gocache.New(5*time.Minute, 10*time.Minute),
		projects:       services.NewProjectService(db),
		skills:         services.NewSkillService(db),
		experiences:    services.NewExperienceService(db),
		certifications: services.NewCertificationService(db),
		resumes:        services.NewResumeService(db),
		images:         services.NewImageService(db),
		contacts:       services.NewContactService(db),
		mailer:         email.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom),
	}
}

func (m *APIModule) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")

	api.POST("/token", m.issueToken)

	api.GET("/about", m.aboutInfo)
	api.GET("/about/interests", m.aboutInterests)
	api.GET("/contact-info", m.contactInfo)
	api.POST("/contact", m.submitContact)

	api.GET("/projects", m.listProjects)
	api.GET("/projects/:id", m.getProject)
	api.POST("/projects", m.requireUser, m.createProject)
	api.PUT("/projects/:id", m.requireUser, m.requireOwner(m.projectOwner, "Project"), m.updateProject)
	api.DELETE("/projects/:id", m.requireUser, m.requireOwner(m.projectOwner, "Project"), m.deleteProject)

	api.GET("/skills", m.listSkills)
	api.GET("/skills/:id", m.getSkill)
	api.POST("/skills", m.requireUser, m.createSkill)
	api.PUT("/skills/:id", m.requireUser, m.requireOwner(m.skillOwner, "Skill"), m.updateSkill)
	api.DELETE("/skills/:id", m.requireUser, m.requireOwner(m.skillOwner, "Skill"), m.deleteSkill)

	api.GET("/experiences", m.listExperiences)
	api.GET("/experiences/:id", m.getExperience)
	api.POST("/experiences", m.requireUser, m.createExperience)
	api.PUT("/experiences/:id", m.requireUser, m.requireOwner(m.experienceOwner, "Experience"), m.updateExperience)
	api.DELETE("/experiences/:id", m.requireUser, m.requireOwner(m.experienceOwner, "Experience"), m.deleteExperience)

	api.GET("/education", m.educationInfo)
	api.GET("/education/certifications", m.listCertifications)
	api.GET("/education/certifications/:id", m.getCertification)
	api.POST("/education/certifications", m.requireUser, m.createCertification)
	api.PUT("/education/certifications/:id", m.requireUser, m.requireOwner(m.certificationOwner, "Certification"), m.updateCertification)
	api.DELETE("/education/certifications/:id", m.requireUser, m.requireOwner(m.certificationOwner, "Certification"), m.deleteCertification)

	api.GET("/resume", m.getResume)
	api.POST("/resume", m.requireUser, m.createResume)
	api.PUT("/resume", m.requireUser, m.updateResume)
	api.DELETE("/resume/:id", m.requireUser, m.requireOwner(m.resumeOwner, "Resume"), m.deleteResume)

	api.GET("/images", m.listImages)
	api.GET("/images/:id", m.getImage)
	api.GET("/images/:id/file", m.serveImageFile)
	api.POST("/images", m.requireUser, m.createImage)
	api.PUT("/images/:id", m.requireUser, m.updateImage)
	api.DELETE("/images/:id", m.requireUser, m.deleteImage)
}

// Handler wraps the gin engine in the CORS policy used when the API runs
// standalone for a browser frontend.
func (m *APIModule) Handler(router *gin.Engine) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: m.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(router)
}

// cached serves list responses from the in-process cache.
func (m *APIModule) cached(key string, fetch func() (interface{}, error)) (interface{}, error) {
	if data, found := m.cache.Get(key); found {
		return data, nil
	}
	data, err := fetch()
	if err != nil {
		return nil, err
	}
	m.cache.Set(key, data, gocache.DefaultExpiration)
	return data, nil
}

func (m *APIModule) flushCache() {
	m.cache.Flush()
}
