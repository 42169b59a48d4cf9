// Package catalog holds the skill and social platform lookup tables that
// drive icon, label, and URL resolution, plus the category organizer.
//
// A Catalog is immutable once built. Default returns the built-in tables;
// Parse and Load build one from YAML of the same shape as catalog.yaml.
// Every lookup has a fallback, so unknown identifiers never fail.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-profilemd/internal/yamlutil"
)

//go:embed catalog.yaml
var builtin []byte

// Sentinel errors for catalog loading.
var (
	ErrCatalogNotFound = errors.New("catalog file not found")
	ErrCatalogParse    = errors.New("failed to parse catalog")
	ErrCatalogInvalid  = errors.New("invalid catalog")
)

// Template placeholders substituted at lookup time.
const (
	placeholderID       = "{id}"
	placeholderPlatform = "{platform}"
	placeholderUsername = "{username}"
)

// Normalization is a username rewrite applied before URL substitution.
type Normalization string

const (
	// TrimSlashes removes leading and trailing "/" from the username.
	TrimSlashes Normalization = "trim-slashes"
	// StripAt removes every leading "@" from the username.
	StripAt Normalization = "strip-at"
)

func (n Normalization) apply(username string) string {
	switch n {
	case TrimSlashes:
		return strings.Trim(username, "/")
	case StripAt:
		return strings.TrimLeft(username, "@")
	default:
		return username
	}
}

// Category is a named, ordered bucket of skill identifiers.
type Category struct {
	ID     string   `yaml:"id"`
	Name   string   `yaml:"name"`
	Skills []string `yaml:"skills"`
}

// Validate implements validation.Validatable.
func (c Category) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Name, validation.Required),
	)
}

// Platform describes how to link to and draw one social platform.
type Platform struct {
	URL       string          `yaml:"url"`
	Icon      string          `yaml:"icon"`
	Normalize []Normalization `yaml:"normalize,omitempty"`
}

// Validate implements validation.Validatable.
func (p Platform) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.URL, validation.Required),
		validation.Field(&p.Normalize, validation.Each(validation.In(TrimSlashes, StripAt))),
	)
}

// Group is one non-empty category in organizer output.
type Group struct {
	ID     string
	Name   string
	Skills []string
}

type skillTables struct {
	IconFallback string            `yaml:"iconFallback"`
	Names        map[string]string `yaml:"names"`
	Icons        map[string]string `yaml:"icons"`
}

type platformTables struct {
	URLFallback  string              `yaml:"urlFallback"`
	IconFallback string              `yaml:"iconFallback"`
	Entries      map[string]Platform `yaml:"entries"`
}

type document struct {
	Skills     skillTables    `yaml:"skills"`
	Categories []Category     `yaml:"categories"`
	Platforms  platformTables `yaml:"platforms"`
}

func (d *document) validate() error {
	err := validation.Errors{
		"skills.iconFallback":    validation.Validate(d.Skills.IconFallback, validation.Required),
		"platforms.urlFallback":  validation.Validate(d.Platforms.URLFallback, validation.Required),
		"platforms.iconFallback": validation.Validate(d.Platforms.IconFallback, validation.Required),
		"platforms.entries":      validation.Validate(d.Platforms.Entries),
		"categories":             validation.Validate(d.Categories, validation.Required),
	}.Filter()
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(d.Categories))
	for _, c := range d.Categories {
		if seen[c.ID] {
			return fmt.Errorf("categories: duplicate id %q", c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

func (d *document) catalog() *Catalog {
	return &Catalog{
		skills:     d.Skills,
		categories: d.Categories,
		platforms:  d.Platforms,
	}
}

// Catalog resolves skill and platform identifiers to display data.
type Catalog struct {
	skills     skillTables
	categories []Category
	platforms  platformTables
}

var loadDefault = sync.OnceValue(func() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in tables are invalid: %v", err))
	}
	return c
})

// Default returns the built-in catalog. The value is shared and must not be modified.
func Default() *Catalog {
	return loadDefault()
}

// Parse builds a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yamlutil.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogParse, err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogInvalid, err)
	}
	return doc.catalog(), nil
}

// Load reads and parses the catalog file at path.
func Load(path string) (*Catalog, error) {
	var doc document
	if err := yamlutil.ReadFileStrict(path, &doc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrCatalogParse, path, err)
	}
	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCatalogInvalid, path, err)
	}
	return doc.catalog(), nil
}

// DisplayName returns the curated label for a skill, or the identifier with
// its first character upper-cased.
func (c *Catalog) DisplayName(id string) string {
	if name, ok := c.skills.Names[id]; ok {
		return name
	}
	r, size := utf8.DecodeRuneInString(id)
	if size == 0 {
		return id
	}
	return string(unicode.ToUpper(r)) + id[size:]
}

// IconURL returns the icon URL for a skill.
func (c *Catalog) IconURL(id string) string {
	if icon, ok := c.skills.Icons[id]; ok {
		return icon
	}
	return strings.ReplaceAll(c.skills.IconFallback, placeholderID, id)
}

// PlatformProfileURL returns the profile URL for username on platform.
// An empty username yields a URL ending in the platform's path prefix.
func (c *Catalog) PlatformProfileURL(platform, username string) string {
	p, ok := c.platforms.Entries[platform]
	if !ok {
		return strings.NewReplacer(
			placeholderPlatform, platform,
			placeholderUsername, username,
		).Replace(c.platforms.URLFallback)
	}
	for _, n := range p.Normalize {
		username = n.apply(username)
	}
	return strings.ReplaceAll(p.URL, placeholderUsername, username)
}

// PlatformIconURL returns the icon URL for a platform.
func (c *Catalog) PlatformIconURL(platform string) string {
	if p, ok := c.platforms.Entries[platform]; ok && p.Icon != "" {
		return p.Icon
	}
	return c.platforms.IconFallback
}

// Categories returns a copy of the category definitions in display order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{
			ID:     cat.ID,
			Name:   cat.Name,
			Skills: append([]string(nil), cat.Skills...),
		}
	}
	return out
}

// Skills returns every skill identifier with a curated name, sorted.
func (c *Catalog) Skills() []string {
	return slices.Sorted(maps.Keys(c.skills.Names))
}

// Platforms returns every known platform identifier, sorted.
func (c *Catalog) Platforms() []string {
	return slices.Sorted(maps.Keys(c.platforms.Entries))
}

// OrganizeByCategory buckets skills into categories in display order.
// Within a category, skills keep their input order. Empty categories are
// omitted and skills matching no category are dropped. A skill listed in
// several categories appears in each.
func (c *Catalog) OrganizeByCategory(skills []string) []Group {
	var groups []Group
	for _, cat := range c.categories {
		members := make(map[string]struct{}, len(cat.Skills))
		for _, s := range cat.Skills {
			members[s] = struct{}{}
		}

		var matched []string
		for _, s := range skills {
			if _, ok := members[s]; ok {
				matched = append(matched, s)
			}
		}
		if len(matched) > 0 {
			groups = append(groups, Group{ID: cat.ID, Name: cat.Name, Skills: matched})
		}
	}
	return groups
}
