package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	profilemd "github.com/alnah/go-profilemd"
)

func TestRunCatalog_JSON(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	if err := runCatalog([]string{"--json"}, env); err != nil {
		t.Fatalf("runCatalog() error = %v", err)
	}

	var got catalogListing
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}

	if len(got.Skills) == 0 || len(got.Platforms) == 0 || len(got.Categories) == 0 {
		t.Fatalf("expected every table, got %d skills, %d platforms, %d categories",
			len(got.Skills), len(got.Platforms), len(got.Categories))
	}

	var python *skillEntry
	for i := range got.Skills {
		if got.Skills[i].ID == "python" {
			python = &got.Skills[i]
		}
	}
	if python == nil || python.Name != "Python" || python.Icon == "" {
		t.Errorf("python entry = %+v", python)
	}

	for _, p := range got.Platforms {
		if p.ID == "github" && p.URL != "https://github.com/"+exampleUsername {
			t.Errorf("github URL = %q", p.URL)
		}
	}

	if got.Categories[0].ID != "programming" {
		t.Errorf("first category = %q, want programming", got.Categories[0].ID)
	}
}

func TestRunCatalog_SelectedTables(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	if err := runCatalog([]string{"PLATFORMS", "--json"}, env); err != nil {
		t.Fatalf("runCatalog() error = %v", err)
	}

	var got catalogListing
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got.Skills) != 0 || len(got.Categories) != 0 {
		t.Errorf("only platforms should be listed, got %+v", got)
	}
	if len(got.Platforms) == 0 {
		t.Error("platforms should be listed")
	}
}

func TestRunCatalog_Text(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	if err := runCatalog(nil, env); err != nil {
		t.Fatalf("runCatalog() error = %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"Skills", "Platforms", "Categories", "Python", "Programming Languages"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Index(out, "Skills") > strings.Index(out, "Platforms") {
		t.Error("skills should be listed before platforms")
	}
}

func TestRunCatalog_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown table", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv()
		err := runCatalog([]string{"fonts"}, env)
		if !errors.Is(err, ErrUnknownTable) {
			t.Errorf("error = %v, want ErrUnknownTable", err)
		}
	})

	t.Run("missing catalog file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfgPath := writeFile(t, dir, "profilemd.yaml", "catalog:\n  path: "+filepath.Join(dir, "gone.yaml")+"\n")

		env, _, _ := testEnv()
		err := runCatalog([]string{"--config", cfgPath}, env)
		if !errors.Is(err, profilemd.ErrCatalogNotFound) {
			t.Errorf("error = %v, want ErrCatalogNotFound", err)
		}
	})
}
