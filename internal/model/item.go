package model

import "strings"

type Item struct {
	BaseModel
	Code             string         `db:"code" json:"code"`
	Description      string         `db:"description" json:"description"`
	DescriptionLower string         `db:"description_lower" json:"-"`
	LongDescription  *string        `db:"long_description" json:"long_description"` // Nullable
	Categories       []ItemCategory `db:"-" json:"categories"`
}

// SetDescription keeps the lower-cased copy used for ordering and prefix
// search in step with the description.
func (i *Item) SetDescription(description string) {
	i.Description = description
	i.DescriptionLower = strings.ToLower(description)
}
