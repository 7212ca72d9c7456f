// ABOUTME: Turns retrieved documents into narrative context blocks for the prompt
// ABOUTME: Pure functions; missing fields are skipped and an empty set yields a placeholder
package rag

import (
	"fmt"
	"strings"

	"github.com/harper/portfolio-backend/internal/models"
)

const (
	NoProjectsText     = "No specific projects to reference right now. If asked about projects, share that you have various projects on your GitHub and invite them to explore."
	NoCertificatesText = "No specific certifications to reference right now. If asked about learning, share your commitment to continuous growth and self-directed learning."
)

const blockSeparator = "---"

// FormatProjects renders one block per titled project.
func FormatProjects(docs []models.Document) string {
	var blocks []string
	for _, doc := range docs {
		if block, ok := formatProject(doc); ok {
			blocks = append(blocks, block)
		}
	}
	if len(blocks) == 0 {
		return NoProjectsText
	}
	return strings.Join(blocks, "\n\n")
}

// FormatCertificates renders one block per named certificate.
func FormatCertificates(docs []models.Document) string {
	var blocks []string
	for _, doc := range docs {
		if block, ok := formatCertificate(doc); ok {
			blocks = append(blocks, block)
		}
	}
	if len(blocks) == 0 {
		return NoCertificatesText
	}
	return strings.Join(blocks, "\n\n")
}

func formatProject(doc models.Document) (string, bool) {
	title, ok := doc.String("title")
	if !ok {
		return "", false
	}

	lines := []string{fmt.Sprintf("**%s**", title)}
	if date, ok := doc.String("date"); ok {
		lines = append(lines, fmt.Sprintf("*Built: %s*", date))
	}
	if techs := doc.Strings("technologies"); len(techs) > 0 {
		lines = append(lines, "Tech used: "+strings.Join(techs, ", "))
	}
	if problem, ok := doc.String("description.problem"); ok {
		lines = append(lines, "The problem I wanted to solve: "+problem)
	}
	if overview, ok := doc.String("description.overview"); ok {
		lines = append(lines, "What it does: "+overview)
	}
	if solution, ok := doc.String("description.solution"); ok {
		lines = append(lines, "How I solved it: "+solution)
	}

	var links []string
	if github, ok := doc.String("githubUrl"); ok {
		links = append(links, "GitHub: "+github)
	}
	if demo, ok := doc.String("demoUrl"); ok {
		links = append(links, "Live demo: "+demo)
	}
	if report, ok := doc.String("ReportUrl"); ok {
		links = append(links, "Report: "+report)
	}
	if len(links) > 0 {
		lines = append(lines, "Links: "+strings.Join(links, " | "))
	}

	lines = append(lines, blockSeparator)
	return strings.Join(lines, "\n"), true
}

func formatCertificate(doc models.Document) (string, bool) {
	name, ok := doc.String("name")
	if !ok {
		return "", false
	}

	lines := []string{fmt.Sprintf("**%s**", name)}
	if issuer, ok := doc.String("issuer"); ok {
		lines = append(lines, "From: "+issuer)
	}
	if date, ok := doc.String("issue_date"); ok {
		lines = append(lines, "Completed: "+date)
	}
	if link, ok := doc.String("link"); ok {
		lines = append(lines, "Verify: "+link)
	}

	lines = append(lines, blockSeparator)
	return strings.Join(lines, "\n"), true
}
