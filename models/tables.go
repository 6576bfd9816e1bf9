package models

import "time"

type User struct {
	ID           uint      `gorm:"primary_key;autoIncrement" json:"id"`
	Name         string    `gorm:"size:50;unique;not null" json:"name"`
	Email        string    `gorm:"size:100;unique;not null" json:"email"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"` // json:"-" keeps the hash out of every API payload
	IsAdmin      bool      `gorm:"default:true" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`

	Skills         []Skill         `json:"-"`
	Experiences    []Experience    `json:"-"`
	Projects       []Project       `json:"-"`
	Resumes        []Resume        `json:"-"`
	Certifications []Certification `json:"-"`
}

type Project struct {
	ID                uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID            uint      `gorm:"not null;index" json:"user_id"`
	Title             string    `gorm:"size:100;not null" json:"title"`
	Description       string    `gorm:"type:text" json:"description"`
	TechStack         string    `gorm:"size:255" json:"tech_stack"`
	URL               string    `gorm:"size:255" json:"url"`
	ProjectCategoryID uint      `gorm:"not null" json:"project_category_id"`
	CreatedAt         time.Time `json:"created_at"`

	Images          []Image          `json:"images,omitempty"`
	ProjectCategory *ProjectCategory `json:"project_category,omitempty"`
}

type ProjectCategory struct {
	ID   uint   `gorm:"primary_key;autoIncrement" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`

	Projects []Project `json:"-"`
}

// Image holds either an uploaded binary payload (FileData) or an external
// URL. The model layer stays permissive; the admin form and the API reject
// rows that set both or neither.
type Image struct {
	ID              uint   `gorm:"primary_key;autoIncrement" json:"id"`
	Name            string `gorm:"size:100;not null" json:"name"`
	URL             string `gorm:"size:255" json:"url"`
	FileData        []byte `gorm:"type:blob" json:"-"`
	ImageCategoryID *uint  `json:"image_category_id,omitempty"`
	ProjectID       *uint  `gorm:"index" json:"project_id,omitempty"`

	Project       *Project       `json:"-"`
	ImageCategory *ImageCategory `json:"image_category,omitempty"`
}

type ImageCategory struct {
	ID   uint   `gorm:"primary_key;autoIncrement" json:"id"`
	Name string `gorm:"size:50;not null" json:"name"`

	Images []Image `json:"-"`
}

type Skill struct {
	ID               uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	SkillCategoryID  uint      `gorm:"not null" json:"skill_category_id"`
	SkillName        string    `gorm:"size:50;not null" json:"skill_name"`
	ProficiencyLevel string    `gorm:"size:50" json:"proficiency_level"`
	CreatedAt        time.Time `json:"created_at"`

	SkillCategory *SkillCategory `json:"skill_category,omitempty"`
}

type SkillCategory struct {
	ID   uint   `gorm:"primary_key;autoIncrement" json:"id"`
	Name string `gorm:"size:50;not null" json:"name"`

	Skills []Skill `json:"-"`
}

type Experience struct {
	ID          uint       `gorm:"primary_key;autoIncrement" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	CompanyName string     `gorm:"size:100;not null" json:"company_name"`
	Role        string     `gorm:"size:100;not null" json:"role"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description string     `gorm:"type:text" json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Certification stores SkillsAcquired as a comma-joined string; the API
// schemas split it back into a list at the response boundary.
type Certification struct {
	ID                  uint       `gorm:"primary_key;autoIncrement" json:"id"`
	UserID              uint       `gorm:"not null;index" json:"user_id"`
	Name                string     `gorm:"size:255;not null" json:"name"`
	IssuingOrganization string     `gorm:"size:255;not null" json:"issuing_organization"`
	IssueDate           *time.Time `json:"issue_date"`
	CredentialID        string     `gorm:"size:255;not null" json:"credential_id"`
	CredentialURL       string     `gorm:"size:255;not null" json:"credential_url"`
	SkillsAcquired      string     `gorm:"size:255" json:"-"`
}

type Resume struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Link      string    `gorm:"size:255;not null" json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactMessage rows are immutable once created; nothing in the app updates
// or deletes them besides the admin list view.
type ContactMessage struct {
	ID       uint   `gorm:"primary_key;autoIncrement" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100;not null" json:"email"`
	Category string `gorm:"size:100;not null" json:"category"`
	Message  string `gorm:"type:text;not null" json:"message"`
}

const (
	ContactCategoryWebDevelopment = "web_development"
	ContactCategoryHiring         = "hiring"
	ContactCategoryFreelance      = "freelance"
	ContactCategoryOther          = "other"
)

// ContactCategories lists the accepted contact form categories in display order.
var ContactCategories = []string{
	ContactCategoryWebDevelopment,
	ContactCategoryHiring,
	ContactCategoryFreelance,
	ContactCategoryOther,
}

// ProficiencyLevels lists the accepted skill proficiency levels.
var ProficiencyLevels = []string{"Beginner", "Intermediate", "Advanced", "Expert"}
