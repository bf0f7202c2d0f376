package site

import (
	"fmt"
	"regexp"
	"strings"
)

/*
	Slug helpers
	------------
	- Responsible ONLY for generating URL-safe slugs and building
	  public storefront paths.
	- No entity logic here.
*/

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug generates a URL-safe base slug from a display name.
// Example: "Jane Doe" -> "jane-doe"
func MakeSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "item"
	}
	return base
}

// UniqueSlug appends a numeric suffix when the base slug is taken.
// exists reports whether a candidate is already in use.
func UniqueSlug(name string, exists func(string) bool) string {
	base := MakeSlug(name)
	if !exists(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !exists(candidate) {
			return candidate
		}
	}
}

// PublicPath builds the storefront path for an entity.
// Example: ("artists", "jane-doe") -> "/artists/jane-doe"
func PublicPath(entity, slug string) string {
	return "/" + entity + "/" + slug
}
