// ABOUTME: Portfolio owner identity injected into the chat prompt
// ABOUTME: Built from PORTFOLIO_* variables and optionally overlaid by a YAML file
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Persona is the identity the chat assistant speaks as.
type Persona struct {
	Name      string      `yaml:"name"`
	Title     string      `yaml:"title"`
	Tagline   string      `yaml:"tagline"`
	Location  string      `yaml:"location"`
	Expertise []string    `yaml:"expertise"`
	Social    SocialLinks `yaml:"social"`
}

// SocialLinks are optional; empty entries are left out of the prompt.
type SocialLinks struct {
	YouTubeURL     string `yaml:"youtube_url"`
	YouTubeChannel string `yaml:"youtube_channel"`
	LinkedInURL    string `yaml:"linkedin_url"`
	GitHubURL      string `yaml:"github_url"`
	TwitterURL     string `yaml:"twitter_url"`
	Email          string `yaml:"email"`
	WebsiteURL     string `yaml:"website_url"`
}

// PersonaFromEnv reads the persona from PORTFOLIO_* variables.
func PersonaFromEnv() Persona {
	return Persona{
		Name:      getEnv("PORTFOLIO_OWNER_NAME", "Portfolio Owner"),
		Title:     getEnv("PORTFOLIO_OWNER_TITLE", "Software Developer"),
		Tagline:   getEnv("PORTFOLIO_TAGLINE", "Building solutions that matter"),
		Location:  getEnv("PORTFOLIO_LOCATION", "Earth"),
		Expertise: getEnvList("PORTFOLIO_EXPERTISE", []string{"Software Development", "Web Development"}),
		Social: SocialLinks{
			YouTubeURL:     os.Getenv("PORTFOLIO_YOUTUBE_URL"),
			YouTubeChannel: os.Getenv("PORTFOLIO_YOUTUBE_CHANNEL"),
			LinkedInURL:    os.Getenv("PORTFOLIO_LINKEDIN_URL"),
			GitHubURL:      os.Getenv("PORTFOLIO_GITHUB_URL"),
			TwitterURL:     os.Getenv("PORTFOLIO_TWITTER_URL"),
			Email:          os.Getenv("PORTFOLIO_EMAIL"),
			WebsiteURL:     os.Getenv("PORTFOLIO_WEBSITE_URL"),
		},
	}
}

// LoadPersonaFile overlays the fields present in a YAML file onto base.
func LoadPersonaFile(path string, base Persona) (Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Persona{}, fmt.Errorf("failed to read persona file: %w", err)
	}
	p := base
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Persona{}, fmt.Errorf("failed to parse persona file %s: %w", path, err)
	}
	return p, nil
}

// ExpertiseText joins the expertise list for the prompt.
func (p Persona) ExpertiseText() string {
	if len(p.Expertise) == 0 {
		return "Software Development"
	}
	return strings.Join(p.Expertise, ", ")
}

// SocialLinksText renders one markdown bullet per configured link.
func (p Persona) SocialLinksText() string {
	s := p.Social
	var lines []string
	if s.YouTubeURL != "" {
		label := "YouTube"
		if s.YouTubeChannel != "" {
			label = fmt.Sprintf("YouTube (%s)", s.YouTubeChannel)
		}
		lines = append(lines, fmt.Sprintf("- **%s:** %s (videos and walkthroughs)", label, s.YouTubeURL))
	}
	if s.LinkedInURL != "" {
		lines = append(lines, fmt.Sprintf("- **LinkedIn:** %s (let's connect professionally)", s.LinkedInURL))
	}
	if s.GitHubURL != "" {
		lines = append(lines, fmt.Sprintf("- **GitHub:** %s (check out my code)", s.GitHubURL))
	}
	if s.TwitterURL != "" {
		lines = append(lines, fmt.Sprintf("- **Twitter/X:** %s (follow along)", s.TwitterURL))
	}
	if s.Email != "" {
		lines = append(lines, fmt.Sprintf("- **Email:** %s (reach out directly)", s.Email))
	}
	if s.WebsiteURL != "" {
		lines = append(lines, fmt.Sprintf("- **Website:** %s", s.WebsiteURL))
	}
	if len(lines) == 0 {
		return "No social links configured."
	}
	return strings.Join(lines, "\n")
}
