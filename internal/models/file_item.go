// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// FileType identifies the kind of resource a FileItem points at.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDoc  FileType = "doc"
	FileTypeXLS  FileType = "xls"
	FileTypePPT  FileType = "ppt"
	FileTypeLink FileType = "link"
)

// FileItem is a resource record owned by exactly one scope id. It holds
// metadata and a URL only; there is no binary content behind it.
type FileItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Date     string   `json:"date"`
	Size     string   `json:"size"`
	Type     FileType `json:"type"`
	URL      string   `json:"url"`
	Category string   `json:"category,omitempty"`
}
