package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	profilemd "github.com/alnah/go-profilemd"
)

// ErrUnknownTable is returned for a catalog table name other than
// skills, platforms, or categories.
var ErrUnknownTable = errors.New("unknown catalog table")

// Catalog table names.
const (
	tableSkills     = "skills"
	tablePlatforms  = "platforms"
	tableCategories = "categories"
)

var catalogTables = []string{tableSkills, tablePlatforms, tableCategories}

// exampleUsername fills platform URL templates in listings.
const exampleUsername = "username"

type skillEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type platformEntry struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Icon string `json:"icon"`
}

type categoryEntry struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// catalogListing is the JSON shape of the catalog command.
type catalogListing struct {
	Skills     []skillEntry    `json:"skills,omitempty"`
	Platforms  []platformEntry `json:"platforms,omitempty"`
	Categories []categoryEntry `json:"categories,omitempty"`
}

// runCatalog prints the lookup tables in use.
func runCatalog(args []string, env *Environment) error {
	f := &catalogFlags{}
	positional, err := parseFlagSet(newCatalogFlagSet(f), args, env.Stderr, printCatalogUsage)
	if err != nil {
		return err
	}
	env.useCommonFlags(&f.common)

	tables := catalogTables
	if len(positional) > 0 {
		tables = nil
		for _, name := range positional {
			name = strings.ToLower(name)
			if !isCatalogTable(name) {
				return fmt.Errorf("%w: %q (must be one of %s)", ErrUnknownTable, name, strings.Join(catalogTables, ", "))
			}
			tables = append(tables, name)
		}
	}

	cfg, err := resolveConfig(&f.common, env)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c := profilemd.DefaultCatalog()
	if cfg.Catalog.Path != "" {
		if c, err = profilemd.LoadCatalog(cfg.Catalog.Path); err != nil {
			return err
		}
	}

	listing := buildListing(c, tables)
	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	}
	return printListing(env.Stdout, listing)
}

func isCatalogTable(name string) bool {
	for _, t := range catalogTables {
		if name == t {
			return true
		}
	}
	return false
}

func buildListing(c *profilemd.Catalog, tables []string) *catalogListing {
	listing := &catalogListing{}
	for _, table := range tables {
		switch table {
		case tableSkills:
			for _, id := range c.Skills() {
				listing.Skills = append(listing.Skills, skillEntry{
					ID:   id,
					Name: c.DisplayName(id),
					Icon: c.IconURL(id),
				})
			}
		case tablePlatforms:
			for _, id := range c.Platforms() {
				listing.Platforms = append(listing.Platforms, platformEntry{
					ID:   id,
					URL:  c.PlatformProfileURL(id, exampleUsername),
					Icon: c.PlatformIconURL(id),
				})
			}
		case tableCategories:
			for _, cat := range c.Categories() {
				listing.Categories = append(listing.Categories, categoryEntry{
					ID:     cat.ID,
					Name:   cat.Name,
					Skills: cat.Skills,
				})
			}
		}
	}
	return listing
}

// printListing writes the tables as aligned columns.
func printListing(w io.Writer, l *catalogListing) error {
	st := newStyles(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	sections := 0

	section := func(title string) {
		if sections > 0 {
			fmt.Fprintln(tw)
		}
		sections++
		fmt.Fprintln(tw, st.heading.Render(title))
	}

	if len(l.Skills) > 0 {
		section("Skills")
		for _, s := range l.Skills {
			fmt.Fprintf(tw, "%s\t%s\n", s.ID, s.Name)
		}
	}
	if len(l.Platforms) > 0 {
		section("Platforms")
		for _, p := range l.Platforms {
			fmt.Fprintf(tw, "%s\t%s\n", p.ID, p.URL)
		}
	}
	if len(l.Categories) > 0 {
		section("Categories")
		for _, c := range l.Categories {
			fmt.Fprintf(tw, "%s\t%s\n", c.Name, strings.Join(c.Skills, ", "))
		}
	}

	return tw.Flush()
}
