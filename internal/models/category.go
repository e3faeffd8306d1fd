// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// ContentType selects the view rendered for a navigable node.
type ContentType string

const (
	ContentTypeHome        ContentType = "HOME"
	ContentTypeFiles       ContentType = "FILES"
	ContentTypeDashboard   ContentType = "DASHBOARD"
	ContentTypeChatbot     ContentType = "CHATBOT"
	ContentTypeAdminConfig ContentType = "ADMIN_CONFIG"
)

// ContentTypes is the full set of allowed content types.
var ContentTypes = []ContentType{
	ContentTypeHome,
	ContentTypeFiles,
	ContentTypeDashboard,
	ContentTypeChatbot,
	ContentTypeAdminConfig,
}

// IsValid reports whether t is one of the known content types.
func (t ContentType) IsValid() bool {
	for _, ct := range ContentTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// SubCategory is a terminal navigation node inside a Category.
type SubCategory struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	ContentType ContentType `json:"content_type"`
	Description string      `json:"description,omitempty"`
}

// Category is a top-level navigation node. A non-nil SubCategories slice
// (even an empty one) makes the category an expandable group; a nil slice
// makes it a directly navigable leaf.
type Category struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	ContentType   ContentType   `json:"content_type,omitempty"`
	Description   string        `json:"description,omitempty"`
	Icon          string        `json:"icon,omitempty"`
	SubCategories []SubCategory `json:"sub_categories"`
}

// IsGroup reports whether the category renders as an expandable group.
func (c *Category) IsGroup() bool {
	return c.SubCategories != nil
}

// FindSub returns the subcategory with the given id, or nil.
func (c *Category) FindSub(id string) *SubCategory {
	for i := range c.SubCategories {
		if c.SubCategories[i].ID == id {
			return &c.SubCategories[i]
		}
	}
	return nil
}

// Clone returns a deep copy that preserves the nil/empty distinction of
// SubCategories.
func (c Category) Clone() Category {
	out := c
	if c.SubCategories != nil {
		out.SubCategories = make([]SubCategory, len(c.SubCategories))
		copy(out.SubCategories, c.SubCategories)
	}
	return out
}
