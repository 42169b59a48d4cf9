// Package profile defines the profile record consumed by the render pipeline
// and decodes it from YAML or JSON files.
package profile

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-profilemd/internal/yamlutil"
)

// Sentinel errors for profile loading.
var (
	ErrProfileNotFound = errors.New("profile file not found")
	ErrProfileParse    = errors.New("failed to parse profile")
)

// Profile is the form data a README is generated from.
// Keys are camelCase so the JSON snapshot kept by the web form decodes as-is.
type Profile struct {
	Name     string `yaml:"name" json:"name"`
	Title    string `yaml:"title" json:"title"`
	Bio      string `yaml:"bio" json:"bio"`
	Pronouns string `yaml:"pronouns" json:"pronouns"`
	Email    string `yaml:"email" json:"email"`

	CurrentWork          string `yaml:"currentWork" json:"currentWork"`
	CurrentWorkLink      string `yaml:"currentWorkLink,omitempty" json:"currentWorkLink,omitempty"`
	LookingToCollaborate string `yaml:"lookingToCollaborate" json:"lookingToCollaborate"`
	CollaborateLink      string `yaml:"collaborateLink,omitempty" json:"collaborateLink,omitempty"`
	AskMeAbout           string `yaml:"askMeAbout" json:"askMeAbout"`
	CurrentlyLearning    string `yaml:"currentlyLearning,omitempty" json:"currentlyLearning,omitempty"`
	AskAbout             string `yaml:"askAbout,omitempty" json:"askAbout,omitempty"`
	FunFact              string `yaml:"funFact" json:"funFact"`
	BlogPlatform         string `yaml:"blogPlatform,omitempty" json:"blogPlatform,omitempty"`
	ResumeLink           string `yaml:"resumeLink,omitempty" json:"resumeLink,omitempty"`

	Skills      []string     `yaml:"skills" json:"skills"`
	SocialLinks []SocialLink `yaml:"socialLinks" json:"socialLinks"`
	Projects    []Project    `yaml:"projects" json:"projects"`

	GithubUsername     string `yaml:"githubUsername" json:"githubUsername"`
	ShowGithubStats    bool   `yaml:"showGithubStats" json:"showGithubStats"`
	ShowTopLanguages   bool   `yaml:"showTopLanguages" json:"showTopLanguages"`
	ShowStreakStats    bool   `yaml:"showStreakStats" json:"showStreakStats"`
	ShowGithubTrophies bool   `yaml:"showGithubTrophies,omitempty" json:"showGithubTrophies,omitempty"`
	ShowVisitorCount   bool   `yaml:"showVisitorCount,omitempty" json:"showVisitorCount,omitempty"`
}

// SocialLink is one platform account.
type SocialLink struct {
	Platform string `yaml:"platform" json:"platform"`
	Username string `yaml:"username" json:"username"`
}

// Project is a featured project entry.
type Project struct {
	Name         string   `yaml:"name" json:"name"`
	Description  string   `yaml:"description" json:"description"`
	Link         string   `yaml:"link" json:"link"`
	Technologies []string `yaml:"technologies" json:"technologies"`
}

// AnyStats reports whether at least one GitHub statistics embed is enabled.
func (p *Profile) AnyStats() bool {
	return p.ShowGithubStats || p.ShowTopLanguages || p.ShowStreakStats ||
		p.ShowGithubTrophies || p.ShowVisitorCount
}

// Parse decodes a profile from YAML or JSON. Unknown keys are rejected.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yamlutil.UnmarshalStrict(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileParse, err)
	}
	return &p, nil
}

// Load reads and decodes the profile file at path.
func Load(path string) (*Profile, error) {
	var p Profile
	if err := yamlutil.ReadFileStrict(path, &p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrProfileParse, path, err)
	}
	return &p, nil
}
