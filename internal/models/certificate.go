// ABOUTME: Certificate payloads accepted by the admin API
// ABOUTME: Create derives the slug from the name; update leaves the slug alone
package models

// Certificate is the create body for /api/v1/certificates.
type Certificate struct {
	Name      string `json:"name"`
	Issuer    string `json:"issuer"`
	Link      string `json:"link"`
	IssueDate string `json:"issue_date,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
}

// Slug is derived from the certificate name.
func (c *Certificate) Slug() string {
	return GenerateSlug(c.Name)
}

func (c *Certificate) Validate() error {
	if err := required("name", c.Name); err != nil {
		return err
	}
	if c.Slug() == "" {
		return &ValidationError{Field: "name", Message: "must contain at least one letter or digit"}
	}
	if err := required("issuer", c.Issuer); err != nil {
		return err
	}
	return absoluteURL("link", c.Link)
}

// ToDocument includes the generated slug.
func (c *Certificate) ToDocument() Document {
	doc := c.UpdateDocument()
	doc["slug"] = c.Slug()
	return doc
}

// UpdateDocument is the $set body for an update; slug is not part of it.
func (c *Certificate) UpdateDocument() Document {
	return Document{
		"name":       c.Name,
		"issuer":     c.Issuer,
		"link":       c.Link,
		"issue_date": optional(c.IssueDate),
		"image_url":  optional(c.ImageURL),
	}
}
