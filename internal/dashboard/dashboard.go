// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package dashboard assembles the data behind the home view and the
// analytics dashboard. Headline figures and chart series are fixed
// reference data; document counts and recent files come from the
// resource registry.
package dashboard

import (
	"context"
	"fmt"

	"terolib/internal/catalog"
	"terolib/internal/models"
)

// RecentLimit is how many files the home view lists.
const RecentLimit = 5

// Files is the part of the resource registry the dashboard reads.
type Files interface {
	List(ctx context.Context, scope string) ([]models.FileItem, error)
	Count(ctx context.Context, scopes []string) (int, error)
}

// QuickLink is a shortcut on the home view, resolved against the current
// tree so it can be navigated directly.
type QuickLink struct {
	Title         string `json:"title"`
	CategoryID    string `json:"category_id"`
	SubCategoryID string `json:"sub_category_id,omitempty"`
	Color         string `json:"color"`
}

// Home is the payload of the HOME view.
type Home struct {
	Stats      []models.Stat     `json:"stats"`
	QuickLinks []QuickLink       `json:"quick_links"`
	Recent     []models.FileItem `json:"recent"`
}

// Analytics is the payload of the DASHBOARD view.
type Analytics struct {
	Stats         []models.Stat          `json:"stats"`
	Monthly       []models.ActivityPoint `json:"monthly"`
	Distribution  []models.Share         `json:"distribution"`
	LiveDocuments int                    `json:"live_documents"`
}

// Service builds view payloads.
type Service struct {
	files Files
}

// New creates a dashboard service reading from files.
func New(files Files) *Service {
	return &Service{files: files}
}

// Home returns the home view for tree. Quick links whose target no longer
// exists in tree are left out.
func (s *Service) Home(ctx context.Context, tree catalog.Tree) (Home, error) {
	h := Home{
		Stats:      append([]models.Stat(nil), quickStats...),
		QuickLinks: resolveLinks(tree),
		Recent:     []models.FileItem{},
	}

	for _, scope := range tree.ScopeIDs() {
		if len(h.Recent) >= RecentLimit {
			break
		}
		items, err := s.files.List(ctx, scope)
		if err != nil {
			return Home{}, fmt.Errorf("list %s: %w", scope, err)
		}
		for _, it := range items {
			if len(h.Recent) == RecentLimit {
				break
			}
			h.Recent = append(h.Recent, it)
		}
	}
	return h, nil
}

// Analytics returns the dashboard view for tree.
func (s *Service) Analytics(ctx context.Context, tree catalog.Tree) (Analytics, error) {
	n, err := s.files.Count(ctx, tree.ScopeIDs())
	if err != nil {
		return Analytics{}, fmt.Errorf("count documents: %w", err)
	}
	return Analytics{
		Stats:         append([]models.Stat(nil), dashboardStats...),
		Monthly:       append([]models.ActivityPoint(nil), monthly...),
		Distribution:  append([]models.Share(nil), distribution...),
		LiveDocuments: n,
	}, nil
}

func resolveLinks(tree catalog.Tree) []QuickLink {
	out := make([]QuickLink, 0, len(quickLinks))
	for _, l := range quickLinks {
		cat, sub, ok := locate(tree, l.id)
		if !ok {
			continue
		}
		out = append(out, QuickLink{Title: l.title, CategoryID: cat, SubCategoryID: sub, Color: l.color})
	}
	return out
}

// locate finds id as a top-level category or as a subcategory.
func locate(tree catalog.Tree, id string) (cat, sub string, ok bool) {
	if tree.Find(id) != nil {
		return id, "", true
	}
	for _, c := range tree {
		for _, s := range c.SubCategories {
			if s.ID == id {
				return c.ID, s.ID, true
			}
		}
	}
	return "", "", false
}
