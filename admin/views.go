package admin

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"devfolio/auth"
	"devfolio/models"
	"devfolio/services"
)

// Field describes one form input on a view's create/edit page.
type Field struct {
	Name     string
	Label    string
	Type     string // text, textarea, select, date, password, checkbox, file
	Options  []string
	Required bool
}

// Row is one rendered table row in a view's list page.
type Row struct {
	ID    uint
	Cells []string
}

// View is a declarative description of one admin section: how to list the
// entity, how to load one record into a form, and what create/update/delete
// do. Views with a nil Create (or Update, or Delete) simply don't offer
// that action.
type View struct {
	Slug    string
	Title   string
	Columns []string
	Fields  []Field

	List   func() ([]Row, error)
	Get    func(id uint) (map[string]string, error)
	Create func(user *models.User, form map[string]string, files map[string][]byte) error
	Update func(id uint, form map[string]string, files map[string][]byte) error
	Delete func(id uint) error
}

type Registry struct {
	views  []*View
	bySlug map[string]*View
}

func (r *Registry) register(view *View) {
	r.views = append(r.views, view)
	r.bySlug[view.Slug] = view
}

func (r *Registry) Get(slug string) (*View, bool) {
	view, ok := r.bySlug[slug]
	return view, ok
}

func (r *Registry) All() []*View {
	return r.views
}

func NewRegistry(db *gorm.DB) *Registry {
	r := &Registry{bySlug: map[string]*View{}}

	r.register(userView(db))
	r.register(projectView(db))
	r.register(categoryView(db, "project-categories", "Project categories", &models.ProjectCategory{}))
	r.register(imageView(db))
	r.register(categoryView(db, "image-categories", "Image categories", &models.ImageCategory{}))
	r.register(skillView(db))
	r.register(categoryView(db, "skill-categories", "Skill categories", &models.SkillCategory{}))
	r.register(experienceView(db))
	r.register(certificationView(db))
	r.register(resumeView(db))
	r.register(contactMessageView(db))

	return r
}

func parseFormID(form map[string]string, key string) (uint, error) {
	raw := strings.TrimSpace(form[key])
	if raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return uint(id), nil
}

func parseOptionalFormID(form map[string]string, key string) (*uint, error) {
	raw := strings.TrimSpace(form[key])
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	parsed := uint(id)
	return &parsed, nil
}

func parseFormDate(form map[string]string, key string) (*time.Time, error) {
	raw := strings.TrimSpace(form[key])
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%s must look like 2006-01-02", key)
	}
	return &parsed, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// ownerID prefers an explicit user_id in the form; otherwise new records
// belong to whoever is logged in.
func ownerID(user *models.User, form map[string]string) (uint, error) {
	if raw := strings.TrimSpace(form["user_id"]); raw != "" {
		return parseFormID(form, "user_id")
	}
	if user == nil {
		return 0, fmt.Errorf("no user to attach the record to")
	}
	return user.ID, nil
}

func userView(db *gorm.DB) *View {
	return &View{
		Slug:    "users",
		Title:   "Users",
		Columns: []string{"Name", "Email", "Admin"},
		Fields: []Field{
			{Name: "name", Label: "Name", Type: "text", Required: true},
			{Name: "email", Label: "Email", Type: "text", Required: true},
			{Name: "password", Label: "Password", Type: "password"},
			{Name: "is_admin", Label: "Admin", Type: "select", Options: []string{"true", "false"}},
		},
		List: func() ([]Row, error) {
			var users []models.User
			if err := db.Order("id").Find(&users).Error; err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(users))
			for _, u := range users {
				rows = append(rows, Row{ID: u.ID, Cells: []string{u.Name, u.Email, strconv.FormatBool(u.IsAdmin)}})
			}
			return rows, nil
		},
		Get: func(id uint) (map[string]string, error) {
			var u models.User
			if err := db.First(&u, id).Error; err != nil {
				return nil, err
			}
			return map[string]string{
				"name":     u.Name,
				"email":    u.Email,
				"is_admin": strconv.FormatBool(u.IsAdmin),
			}, nil
		},
		Create: func(_ *models.User, form map[string]string, _ map[string][]byte) error {
			if form["name"] == "" || form["email"] == "" || form["password"] == "" {
				return fmt.Errorf("name, email and password are required")
			}
			hash, err := auth.HashPassword(form["password"])
			if err != nil {
				return err
			}
			return db.Create(&models.User{
				Name:         form["name"],
				Email:        form["email"],
				PasswordHash: hash,
				IsAdmin:      form["is_admin"] != "false",
			}).Error
		},
		Update: func(id uint, form map[string]string, _ map[string][]byte) error {
			var u models.User
			if err := db.First(&u, id).Error; err != nil {
				return err
			}
			if form["name"] != "" {
				u.Name = form["name"]
			}
			if form["email"] != "" {
				u.Email = form["email"]
			}
			if form["password"] != "" {
				hash, err := auth.HashPassword(form["password"])
				if err != nil {
					return err
				}
				u.PasswordHash = hash
			}
			if form["is_admin"] != "" {
				u.IsAdmin = form["is_admin"] == "true"
			}
			return db.Save(&u).Error
		},
		Delete: func(id uint) error {
			return db.Delete(&models.User{}, id).Error
		},
	}
}

func projectView(db *gorm.DB) *View {
	svc := services.NewProjectService(db)
	return &View{
		Slug:    "projects",
		Title:   "Projects",
		Columns: []string{"Title", "Category", "Tech stack"},
		Fields: []Field{
			{Name: "title", Label: "Title", Type: "text", Required: true},
			{Name: "description", Label: "Description", Type: "textarea"},
			{Name: "tech_stack", Label: "Tech stack", Type: "text"},
			{Name: "url", Label: "URL", Type: "text"},
			{Name: "project_category_id", Label: "Category id", Type: "text", Required: true},
			{Name: "user_id", Label: "Owner id", Type: "text"},
		},
		List: func() ([]Row, error) {
			projects, err := svc.List()
			if err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(projects))
			for _, p := range projects {
				category := ""
				if p.ProjectCategory != nil {
					category = p.ProjectCategory.Name
				}
				rows = append(rows, Row{ID: p.ID, Cells: []string{p.Title, category, p.TechStack}})
			}
			return rows, nil
		},
		Get: func(id uint) (map[string]string, error) {
			p, err := svc.GetByID(id)
			if err != nil {
				return nil, err
			}
			return map[string]string{
				"title":               p.Title,
				"description":         p.Description,
				"tech_stack":          p.TechStack,
				"url":                 p.URL,
				"project_category_id": strconv.FormatUint(uint64(p.ProjectCategoryID), 10),
				"user_id":             strconv.FormatUint(uint64(p.UserID), 10),
			}, nil
		},
		Create: func(user *models.User, form map[string]string, _ map[string][]byte) error {
			owner, err := ownerID(user, form)
			if err != nil {
				return err
			}
			categoryID, err := parseFormID(form, "project_category_id")
			if err != nil {
				return err
			}
			_, err = svc.Create(services.ProjectInput{
				UserID:            owner,
				Title:             form["title"],
				Description:       form["description"],
				TechStack:         form["tech_stack"],
				URL:               form["url"],
				ProjectCategoryID: categoryID,
			})
			return err
		},
		Update: func(id uint, form map[string]string, _ map[string][]byte) error {
			update := services.ProjectUpdate{}
			if v := form["title"]; v != "" {
				update.Title = &v
			}
			if v := form["description"]; v != "" {
				update.Description = &v
			}
			if v := form["tech_stack"]; v != "" {
				update.TechStack = &v
			}
			if v := form["url"]; v != "" {
				update.URL = &v
			}
			categoryID, err := parseOptionalFormID(form, "project_category_id")
			if err != nil {
				return err
			}
			update.ProjectCategoryID = categoryID
			_, err = svc.Update(id, update)
			return err
		},
		Delete: func(id uint) error {
			_, err := svc.Delete(id)
			return err
		},
	}
}

func imageView(db *gorm.DB) *View {
	svc := services.NewImageService(db)
	return &View{
		Slug:    "images",
		Title:   "Images",
		Columns: []string{"Name", "Source", "Project"},
		Fields: []Field{
			{Name: "name", Label: "Name", Type: "text", Required: true},
			{Name: "url", Label: "URL", Type: "text"},
			{Name: "file", Label: "Upload file", Type: "file"},
			{Name: "image_category_id", Label: "Category id", Type: "text"},
			{Name: "project_id", Label: "Project id", Type: "text"},
		},
		List: func() ([]Row, error) {
			images, err := svc.List(nil)
			if err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(images))
			for _, img := range images {
				source := "upload"
				if img.URL != "" {
					source = img.URL
				}
				project := ""
				if img.ProjectID != nil {
					project = strconv.FormatUint(uint64(*img.ProjectID), 10)
				}
				rows = append(rows, Row{ID: img.ID, Cells: []string{img.Name, source, project}})
			}
			return rows, nil
		},
		Get: func(id uint) (map[string]string, error) {
			img, err := svc.GetByID(id)
			if err != nil {
				return nil, err
			}
			values := map[string]string{
				"name": img.Name,
				"url":  img.URL,
			}
			if img.ImageCategoryID != nil {
				values["image_category_id"] = strconv.FormatUint(uint64(*img.ImageCategoryID), 10)
			}
			if img.ProjectID != nil {
				values["project_id"] = strconv.FormatUint(uint64(*img.ProjectID), 10)
			}
			return values, nil
		},
		Create: func(_ *models.User, form map[string]string, files map[string][]byte) error {
			categoryID, err := parseOptionalFormID(form, "image_category_id")
			if err != nil {
				return err
			}
			projectID, err := parseOptionalFormID(form, "project_id")
			if err != nil {
				return err
			}
			_, err = svc.Create(services.ImageInput{
				Name:            form["name"],
				URL:             form["url"],
				FileData:        files["file"],
				ImageCategoryID: categoryID,
				ProjectID:       projectID,
			})
			return err
		},
		Update: func(id uint, form map[string]string, files map[string][]byte) error {
			update := services.ImageUpdate{}
			if v := form["name"]; v != "" {
				update.Name = &v
			}
			if v := form["url"]; v != "" {
				update.URL = &v
			}
			update.FileData = files["file"]
			categoryID, err := parseOptionalFormID(form, "image_category_id")
			if err != nil {
				return err
			}
			update.ImageCategoryID = categoryID
			projectID, err := parseOptionalFormID(form, "project_id")
			if err != nil {
				return err
			}
			update.ProjectID = projectID
			_, err = svc.Update(id, update)
			return err
		},
		Delete: func(id uint) error {
			_, err := svc.Delete(id)
			return err
		},
	}
}

func skillView(db *gorm.DB) *View {
	svc := services.NewSkillService(db)
	return &View{
		Slug:    "skills",
		Title:   "Skills",
		Columns: []string{"Name", "Category", "Proficiency"},
		Fields: []Field{
			{Name: "skill_name", Label: "Name", Type: "text", Required: true},
			{Name: "skill_category_id", Label: "Category id", Type: "text", Required: true},
			{Name: "proficiency_level", Label: "Proficiency", Type: "select", Options: models.ProficiencyLevels},
			{Name: "user_id", Label: "Owner id", Type: "text"},
		},
		List: func() ([]Row, error) {
			skills, err := svc.List(nil)
			if err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(skills))
			for _, s := range skills {
				category := ""
				if s.SkillCategory != nil {
					category = s.SkillCategory.Name
				}
				rows = append(rows, Row{ID: s.ID, Cells: []string{s.SkillName, category, s.ProficiencyLevel}})
			}
			return rows, nil
		},
		Get: func(id uint) (map[string]string, error) {
			s, err := svc.GetByID(id)
			if err != nil {
				return nil, err
			}
			return map[string]string{
				"skill_name":        s.SkillName,
				"skill_category_id": strconv.FormatUint(uint64(s.SkillCategoryID), 10),
				"proficiency_level": s.ProficiencyLevel,
				"user_id":           strconv.FormatUint(uint64(s.UserID), 10),
			}, nil
		},
		Create: func(user *models.User, form map[string]string, _ map[string][]byte) error {
			owner, err := ownerID(user, form)
			if err != nil {
				return err
			}
			categoryID, err := parseFormID(form, "skill_category_id")
			if err != nil {
				return err
			}
			_, err = svc.Create(services.SkillInput{
				UserID:           owner,
				SkillCategoryID:  categoryID,
				SkillName:        form["skill_name"],
				ProficiencyLevel: form["proficiency_level"],
			})
			return err
		},
		Update: func(id uint, form map[string]string, _ map[string][]byte) error {
			update := services.SkillUpdate{}
			if v := form["skill_name"]; v != "" {
				update.SkillName = &v
			}
			if v := form["proficiency_level"]; v != "" {
				update.ProficiencyLevel = &v
			}
			categoryID, err := parseOptionalFormID(form, "skill_category_id")
			if err != nil {
				return err
			}
			update.SkillCategoryID = categoryID
			_, err = svc.Update(id, update)
			return err
		},
		Delete: func(id uint) error {
			_, err := svc.Delete(id)
			return err
		},
	}
}

func experienceView(db *gorm.DB) *View {
	svc := services.NewExperienceService(db)
	return &View{
		Slug:    "experiences",
		Title:   "Experiences",
		Columns: []string{"Company", "Role", "Start", "End"},
		Fields: []Field{
			{Name: "company_name", Label: "Company", Type: "text", Required: true},
			{Name: "role", Label: "Role", Type: "text", Required: true},
			{Name: "start_date", Label: "Start date", Type: "date"},
			{Name: "end_date", Label: "End date", Type: "date"},
			{Name: "clear_end_date", Label: "Clear end date", Type: "checkbox"},
			{Name: "description", Label: "Description", Type: "textarea"},
			{Name: "user_id", Label: "Owner id", Type: "text"},
		},
		List: func() ([]Row, error) {
			experiences, err := svc.List()
			if err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(experiences))
			for _, e := range experiences {
				rows = append(rows, Row{ID: e.ID, Cells: []string{e.CompanyName, e.Role, formatDate(e.StartDate), formatDate(e.EndDate)}})
			}
			return rows, nil
		},
		Get: func(id uint) (map[string]string, error) {
			e, err := svc.GetByID(id)
			if err != nil {
				return nil, err
			}
			return map[string]string{
				"company_name": e.CompanyName,
				"role":         e.Role,
				"start_date":   formatDate(e.StartDate),
				"end_date":     formatDate(e.EndDate),
				"description":  e.Description,
				"user_id":      strconv.FormatUint(uint64(e.UserID), 10),
			}, nil
		},
		Create: func(user *models.User, form map[string]string, _ map[string][]byte) error {
			owner, err := ownerID(user, form)
			if err != nil {
				return err
			}
			start, err := parseFormDate(form, "start_date")
			if err != nil {
				return err
			}
			end, err := parseFormDate(form, "end_date")
			if err != nil {
				return err
			}
			_, err = svc.Create(services.ExperienceInput{
				UserID:      owner,
				CompanyName: form["company_name"],
				Role:        form["role"],
				StartDate:   start,
				EndDate:     end,
				Description: form["description"],
			})
			return err
		},
		Update: func(id uint, form map[string]string, _ map[string][]byte) error {
			update := services.ExperienceUpdate{}
			if v := form["company_name"]; v != "" {
				update.CompanyName = &v
			}
			if v := form["role"]; v != "" {
				update.Role = &v
			}
			if v := form["description"]; v != "" {
				update.Description = &v
			}
			start, err := parseFormDate(form, "start_date")
			if err != nil {
				return err
			}
			update.StartDate = start
			end, err := parseFormDate(form, "end_date")
			if err != nil {
				return err
			}
			update.EndDate = end
			update.ClearEndDate = form["clear_end_date"] == "true"
			_, err = svc.Update(id, update)
			return err
		},
		Delete: func(id uint) error {
			_, err := svc.Delete(id)
			return err
		},
	}
}

func certificationView(db *gorm.DB) *View {
	svc := services.NewCertificationService(db)
	return &View{
		Slug:    "certifications",
		Title:   "Certifications",
		Columns: []string{"Name", "Issuer", "Issued"},
		Fields: []Field{
			{Name: "name", Label: "Name", Type: "text", Required: true},
			{Name: "issuing_organization", Label: "Issuer", Type: "text", Required: true},
			{Name: "issue_date", Label: "Issue date", Type: "date"},
			{Name: "clear_issue_date", Label: "Clear issue date", Type: "checkbox"},
			{Name: "credential_id", Label: "Credential id", Type: "text"},
			{Name: "credential_url", Label: "Credential URL", Type: "text"},
			{Name: "skills_acquired", Label: "Skills (comma separated)", Type: "text"},
			{Name: "user_id", Label: "Owner id", Type: "text"},
		},
		List: func() ([]Row, error) {
			certifications, err := svc.List()
			if err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(certifications))
			for _, cert := range certifications {
				rows = append(rows, Row{ID: cert.ID, Cells: []string{cert.Name, cert.IssuingOrganization, formatDate(cert.IssueDate)}})
			}
			return rows, nil
		},
		Get: func(id uint) (map[string]string, error) {
			cert, err := svc.GetByID(id)
			if err != nil {
				return nil, err
			}
			return map[string]string{
				"name":                 cert.Name,
				"issuing_organization": cert.IssuingOrganization,
				"issue_date":           formatDate(cert.IssueDate),
				"credential_id":        cert.CredentialID,
				"credential_url":       cert.CredentialURL,
				"skills_acquired":      cert.SkillsAcquired,
				"user_id":              strconv.FormatUint(uint64(cert.UserID), 10),
			}, nil
		},
		Create: func(user *models.User, form map[string]string, _ map[string][]byte) error {
			owner, err := ownerID(user, form)
			if err != nil {
				return err
			}
			issued, err := parseFormDate(form, "issue_date")
			if err != nil {
				return err
			}
			_, err = svc.Create(services.CertificationInput{
				UserID:              owner,
				Name:                form["name"],
				IssuingOrganization: form["issuing_organization"],
				IssueDate:           issued,
				CredentialID:        form["credential_id"],
				CredentialURL:       form["credential_url"],
				SkillsAcquired:      services.SplitSkills(form["skills_acquired"]),
			})
			return err
		},
		Update: func(id uint, form map[string]string, _ map[string][]byte) error {
			update := services.CertificationUpdate{}
			if v := form["name"]; v != "" {
				update.Name = &v
			}
			if v := form["issuing_organization"]; v != "" {
				update.IssuingOrganization = &v
			}
			if v := form["credential_id"]; v != "" {
				update.CredentialID = &v
			}
			if v := form["credential_url"]; v != "" {
				update.CredentialURL = &v
			}
			if v := form["skills_acquired"]; v != "" {
				skills := services.SplitSkills(v)
				update.SkillsAcquired = &skills
			}
			issued, err := parseFormDate(form, "issue_date")
			if err != nil {
				return err
			}
			update.IssueDate = issued
			update.ClearIssueDate = form["clear_issue_date"] == "true"
			_, err = svc.Update(id, update)
			return err
		},
		Delete: func(id uint) error {
			_, err := svc.Delete(id)
			return err
		},
	}
}

func resumeView(db *gorm.DB) *View {
	svc := services.NewResumeService(db)
	return &View{
		Slug:    "resumes",
		Title:   "Resumes",
		Columns: []string{"Link", "Added"},
		Fields: []Field{
			{Name: "link", Label: "Link", Type: "text", Required: true},
			{Name: "user_id", Label: "Owner id", Type: "text"},
		},
		List: func() ([]Row, error) {
			resumes, err := svc.List()
			if err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(resumes))
			for _, resume := range resumes {
				rows = append(rows, Row{ID: resume.ID, Cells: []string{resume.Link, resume.CreatedAt.Format("2006-01-02")}})
			}
			return rows, nil
		},
		Get: func(id uint) (map[string]string, error) {
			resume, err := svc.GetByID(id)
			if err != nil {
				return nil, err
			}
			return map[string]string{
				"link":    resume.Link,
				"user_id": strconv.FormatUint(uint64(resume.UserID), 10),
			}, nil
		},
		Create: func(user *models.User, form map[string]string, _ map[string][]byte) error {
			owner, err := ownerID(user, form)
			if err != nil {
				return err
			}
			_, err = svc.Create(services.ResumeInput{UserID: owner, Link: form["link"]})
			return err
		},
		Update: func(id uint, form map[string]string, _ map[string][]byte) error {
			_, err := svc.Update(id, form["link"])
			return err
		},
		Delete: func(id uint) error {
			_, err := svc.Delete(id)
			return err
		},
	}
}

// contactMessageView is read-only: messages are evidence of what a visitor
// actually sent.
func contactMessageView(db *gorm.DB) *View {
	svc := services.NewContactService(db)
	return &View{
		Slug:    "messages",
		Title:   "Contact messages",
		Columns: []string{"Name", "Email", "Category", "Message"},
		List: func() ([]Row, error) {
			messages, err := svc.List()
			if err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(messages))
			for _, message := range messages {
				preview := message.Message
				if len(preview) > 80 {
					preview = preview[:80] + "…"
				}
				rows = append(rows, Row{ID: message.ID, Cells: []string{message.Name, message.Email, message.Category, preview}})
			}
			return rows, nil
		},
		Get: func(id uint) (map[string]string, error) {
			message, err := svc.GetByID(id)
			if err != nil {
				return nil, err
			}
			return map[string]string{
				"name":     message.Name,
				"email":    message.Email,
				"category": message.Category,
				"message":  message.Message,
			}, nil
		},
	}
}

// categoryView builds the minimal name-only view shared by the three
// category tables. The model argument just anchors the queries to a table.
func categoryView(db *gorm.DB, slug, title string, model interface{}) *View {
	type namedRow struct {
		ID   uint
		Name string
	}
	return &View{
		Slug:    slug,
		Title:   title,
		Columns: []string{"Name"},
		Fields: []Field{
			{Name: "name", Label: "Name", Type: "text", Required: true},
		},
		List: func() ([]Row, error) {
			var categories []namedRow
			if err := db.Model(model).Order("id").Find(&categories).Error; err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(categories))
			for _, category := range categories {
				rows = append(rows, Row{ID: category.ID, Cells: []string{category.Name}})
			}
			return rows, nil
		},
		Get: func(id uint) (map[string]string, error) {
			var category namedRow
			if err := db.Model(model).Where("id = ?", id).Take(&category).Error; err != nil {
				return nil, err
			}
			return map[string]string{"name": category.Name}, nil
		},
		Create: func(_ *models.User, form map[string]string, _ map[string][]byte) error {
			name := strings.TrimSpace(form["name"])
			if name == "" {
				return fmt.Errorf("name is required")
			}
			return db.Model(model).Create(map[string]interface{}{"name": name}).Error
		},
		Update: func(id uint, form map[string]string, _ map[string][]byte) error {
			name := strings.TrimSpace(form["name"])
			if name == "" {
				return fmt.Errorf("name is required")
			}
			return db.Model(model).Where("id = ?", id).Update("name", name).Error
		},
		Delete: func(id uint) error {
			return db.Where("id = ?", id).Delete(model).Error
		},
	}
}
