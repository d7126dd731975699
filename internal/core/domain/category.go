package domain

import "fmt"

// Category represents one treatment modality (specialty). Its identity is
// the slug derived from the name. The practice count for a category is
// derived by the catalog, never stored here.
type Category struct {
	// Slug is the URL identifier.
	Slug string

	// Name is the display name.
	Name string

	// Description is free-form text about the modality.
	Description string

	// RelatedConditions is free-form text listing conditions treated.
	RelatedConditions string
}

// CategoryFromRecord builds a Category from a canonical record, deriving
// the slug from the name when absent.
func CategoryFromRecord(r Record) Category {
	c := Category{
		Name:              r.Text(FieldCategoryName),
		Description:       r.Text(FieldCategoryDescription),
		RelatedConditions: r.Text(FieldCategoryConditions),
		Slug:              r.Text(FieldCategorySlug),
	}
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	return c
}

// Path is the canonical route for the category page.
func (c Category) Path() string {
	return fmt.Sprintf("/specialty/%s/", c.Slug)
}
