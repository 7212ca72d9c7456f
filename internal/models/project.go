// ABOUTME: Project payload accepted by the admin API
// ABOUTME: Validates required fields and converts to a storable Document
package models

// ProjectDescription is the narrative part of a project.
type ProjectDescription struct {
	Title              string `json:"title,omitempty"`
	Overview           string `json:"overview,omitempty"`
	Problem            string `json:"problem,omitempty"`
	Solution           string `json:"solution,omitempty"`
	Impact             string `json:"impact,omitempty"`
	DatasetDescription any    `json:"datasetDescription,omitempty"`
	DashboardInfo      string `json:"dashboardInfo,omitempty"`
}

// Project is the create/update body for /api/v1/projects.
// The stored embedding is managed server-side and never accepted here.
type Project struct {
	Slug         string             `json:"slug"`
	Date         string             `json:"date"`
	Title        string             `json:"title"`
	Description  ProjectDescription `json:"description"`
	Technologies []string           `json:"technologies"`
	Features     []string           `json:"features"`
	GithubURL    string             `json:"githubUrl"`
	ReportURL    string             `json:"ReportUrl,omitempty"`
	DemoURL      string             `json:"demoUrl,omitempty"`
	YoutubeURL   string             `json:"youtubeUrl,omitempty"`
	Images       []string           `json:"images,omitempty"`
}

// Normalize fills the slug from the title when the client left it blank.
func (p *Project) Normalize() {
	if p.Slug == "" {
		p.Slug = GenerateSlug(p.Title)
	}
}

func (p *Project) Validate() error {
	if err := required("title", p.Title); err != nil {
		return err
	}
	if err := required("slug", p.Slug); err != nil {
		return err
	}
	if len(p.Technologies) == 0 {
		return &ValidationError{Field: "technologies", Message: "must list at least one technology"}
	}
	if p.GithubURL != "" {
		if err := absoluteURL("githubUrl", p.GithubURL); err != nil {
			return err
		}
	}
	return nil
}

// ToDocument renders every field so an update clears the ones left out.
func (p *Project) ToDocument() Document {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	var images any
	if len(p.Images) > 0 {
		images = p.Images
	}
	return Document{
		"slug":         p.Slug,
		"date":         p.Date,
		"title":        p.Title,
		"description":  p.Description.toDocument(),
		"technologies": p.Technologies,
		"features":     features,
		"githubUrl":    p.GithubURL,
		"ReportUrl":    optional(p.ReportURL),
		"demoUrl":      optional(p.DemoURL),
		"youtubeUrl":   optional(p.YoutubeURL),
		"images":       images,
	}
}

func (d ProjectDescription) toDocument() any {
	doc := Document{}
	for k, v := range map[string]string{
		"title":         d.Title,
		"overview":      d.Overview,
		"problem":       d.Problem,
		"solution":      d.Solution,
		"impact":        d.Impact,
		"dashboardInfo": d.DashboardInfo,
	} {
		if v != "" {
			doc[k] = v
		}
	}
	if d.DatasetDescription != nil {
		doc["datasetDescription"] = d.DatasetDescription
	}
	if len(doc) == 0 {
		return nil
	}
	return doc
}
