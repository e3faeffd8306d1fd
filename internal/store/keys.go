// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

// DefaultPrefix namespaces every key the portal writes.
const DefaultPrefix = "tero_"

// Fixed document keys (before the product prefix is applied).
const (
	KeyCategories = "categories"
	KeyTheme      = "theme"
	KeyAdminPass  = "admin_pass"

	filesKeyPrefix   = "files_"
	lastModKeyPrefix = "last_mod_"
)

// FilesKey is the key of the file list owned by a scope id.
func FilesKey(scopeID string) string {
	return filesKeyPrefix + scopeID
}

// LastModKey is the key of the last-modified stamp of a scope id.
func LastModKey(scopeID string) string {
	return lastModKeyPrefix + scopeID
}

// FilesKeyPrefix is the common prefix of every per-scope file list key.
func FilesKeyPrefix() string {
	return filesKeyPrefix
}
