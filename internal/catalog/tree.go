// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog implements the category tree: the ordered set of
// navigable categories and their subcategories, the edit operations an
// administrator applies to a working copy, and loading and saving the
// whole tree as one document.
package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"terolib/internal/models"
)

// ReservedID is the navigation id of the admin configuration view. It is
// never part of the tree.
const ReservedID = "admin-control"

// NewSubCategoryTitle is the placeholder title of a freshly added subcategory.
const NewSubCategoryTitle = "قسم فرعي جديد"

var (
	ErrInvalidIndex = errors.New("catalog: index out of range")
	ErrDuplicateID  = errors.New("catalog: duplicate id")
	ErrReservedID   = errors.New("catalog: reserved id")
	ErrInvalidNode  = errors.New("catalog: invalid node")
)

// Tree is the ordered top-level sequence of categories.
type Tree []models.Category

// Clone returns a deep copy of the tree.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for i, c := range t {
		out[i] = c.Clone()
	}
	return out
}

// Find returns the category with the given id, or nil.
func (t Tree) Find(id string) *models.Category {
	for i := range t {
		if t[i].ID == id {
			return &t[i]
		}
	}
	return nil
}

// ScopeIDs returns every id that can own file records: each leaf
// category and each subcategory, in tree order.
func (t Tree) ScopeIDs() []string {
	var ids []string
	for _, c := range t {
		if !c.IsGroup() {
			ids = append(ids, c.ID)
			continue
		}
		for _, s := range c.SubCategories {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// BindIcons re-resolves every category's icon from the static table.
func (t Tree) BindIcons() {
	for i := range t {
		t[i].Icon = IconFor(t[i].ID)
	}
}

// Validate checks the structural invariants: top-level ids are unique and
// never the reserved id, subcategory ids are unique within their parent,
// and every id is non-empty with a known content type where one is set.
func (t Tree) Validate() error {
	seen := make(map[string]bool, len(t))
	for _, c := range t {
		if c.ID == "" {
			return fmt.Errorf("%w: category with empty id", ErrInvalidNode)
		}
		if c.ID == ReservedID {
			return fmt.Errorf("%w: %s", ErrReservedID, c.ID)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
		seen[c.ID] = true

		if c.ContentType != "" && !c.ContentType.IsValid() {
			return fmt.Errorf("%w: category %s has content type %q", ErrInvalidNode, c.ID, c.ContentType)
		}
		if !c.IsGroup() && c.ContentType == "" {
			return fmt.Errorf("%w: leaf category %s has no content type", ErrInvalidNode, c.ID)
		}

		subs := make(map[string]bool, len(c.SubCategories))
		for _, s := range c.SubCategories {
			if s.ID == "" {
				return fmt.Errorf("%w: subcategory of %s with empty id", ErrInvalidNode, c.ID)
			}
			if subs[s.ID] {
				return fmt.Errorf("%w: %s/%s", ErrDuplicateID, c.ID, s.ID)
			}
			subs[s.ID] = true
			if !s.ContentType.IsValid() {
				return fmt.Errorf("%w: subcategory %s/%s has content type %q", ErrInvalidNode, c.ID, s.ID, s.ContentType)
			}
		}
	}
	return nil
}

func (t Tree) category(ci int) (*models.Category, error) {
	if ci < 0 || ci >= len(t) {
		return nil, fmt.Errorf("%w: category %d", ErrInvalidIndex, ci)
	}
	return &t[ci], nil
}

func (t Tree) sub(ci, si int) (*models.SubCategory, error) {
	c, err := t.category(ci)
	if err != nil {
		return nil, err
	}
	if si < 0 || si >= len(c.SubCategories) {
		return nil, fmt.Errorf("%w: subcategory %d of category %d", ErrInvalidIndex, si, ci)
	}
	return &c.SubCategories[si], nil
}

// UpdateCategoryTitle replaces the title of the category at ci. Titles
// are not required to be unique.
func (t Tree) UpdateCategoryTitle(ci int, title string) error {
	c, err := t.category(ci)
	if err != nil {
		return err
	}
	c.Title = title
	return nil
}

// UpdateSubCategoryTitle replaces the title of subcategory si of category ci.
func (t Tree) UpdateSubCategoryTitle(ci, si int, title string) error {
	s, err := t.sub(ci, si)
	if err != nil {
		return err
	}
	s.Title = title
	return nil
}

// UpdateDescription writes text to subcategory *si of category ci, or to
// the category itself when si is nil.
func (t Tree) UpdateDescription(ci int, si *int, text string) error {
	if si == nil {
		c, err := t.category(ci)
		if err != nil {
			return err
		}
		c.Description = text
		return nil
	}
	s, err := t.sub(ci, *si)
	if err != nil {
		return err
	}
	s.Description = text
	return nil
}

// AddSubCategory appends a FILES subcategory with a fresh id and the
// placeholder title to category ci and returns it. A leaf category
// becomes a group.
func (t Tree) AddSubCategory(ci int) (models.SubCategory, error) {
	c, err := t.category(ci)
	if err != nil {
		return models.SubCategory{}, err
	}
	sub := models.SubCategory{
		ID:          newSubCategoryID(),
		Title:       NewSubCategoryTitle,
		ContentType: models.ContentTypeFiles,
	}
	if c.SubCategories == nil {
		c.SubCategories = []models.SubCategory{}
	}
	c.SubCategories = append(c.SubCategories, sub)
	return sub, nil
}

// RemoveSubCategory deletes subcategory si of category ci. Removing the
// last child leaves an empty group; the category does not revert to a
// leaf. File records owned by the removed id are left in place.
func (t Tree) RemoveSubCategory(ci, si int) error {
	if _, err := t.sub(ci, si); err != nil {
		return err
	}
	c := &t[ci]
	subs := make([]models.SubCategory, 0, len(c.SubCategories)-1)
	subs = append(subs, c.SubCategories[:si]...)
	subs = append(subs, c.SubCategories[si+1:]...)
	c.SubCategories = subs
	return nil
}

// newSubCategoryID returns a unique, time-ordered id.
func newSubCategoryID() string {
	return "custom-" + uuid.Must(uuid.NewV7()).String()
}
