package pipeline

import (
	"fmt"
	"strings"

	"github.com/alnah/go-profilemd/internal/catalog"
	"github.com/alnah/go-profilemd/internal/profile"
)

// Stat service URL templates. %[1]s is the GitHub username.
const (
	statsURL      = "https://github-readme-stats.vercel.app/api?username=%[1]s&show_icons=true&theme=dark"
	topLangsURL   = "https://github-readme-stats.vercel.app/api/top-langs/?username=%[1]s&layout=compact&theme=dark"
	streakURL     = "https://github-readme-streak-stats.herokuapp.com/?user=%[1]s&theme=dark"
	trophiesURL   = "https://github-profile-trophy.vercel.app/?username=%[1]s&theme=darkhub"
	visitorsURL   = "https://visitor-badge.laobi.icu/badge?page_id=%[1]s.%[1]s"
	iconDimension = `width="40" height="40"`
)

// Greeting returns the header text for name.
func Greeting(name string) string {
	return "Hi 👋, I'm " + strings.TrimSpace(name)
}

// EnsureScheme returns "" for an empty link, the link unchanged when it
// already has an http or https scheme, and the link prefixed with https://
// otherwise.
func EnsureScheme(link string) string {
	if link == "" {
		return ""
	}
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	return "https://" + link
}

// MarkdownRenderer produces the canonical Markdown document for a profile.
// Every other output format is derived from its result.
type MarkdownRenderer struct {
	catalog *catalog.Catalog
}

// NewMarkdownRenderer creates a MarkdownRenderer resolving skills and
// platforms through c. A nil c uses catalog.Default.
func NewMarkdownRenderer(c *catalog.Catalog) *MarkdownRenderer {
	if c == nil {
		c = catalog.Default()
	}
	return &MarkdownRenderer{catalog: c}
}

// Render returns the Markdown for p. Sections are emitted in fixed order and
// only when their fields are set; blocks are separated by one blank line.
func (r *MarkdownRenderer) Render(p *profile.Profile) string {
	var b strings.Builder

	r.writeHeader(&b, p)
	r.writeBio(&b, p)
	r.writeAbout(&b, p)
	r.writeSocial(&b, p)
	r.writeSkills(&b, p)
	r.writeStats(&b, p)
	r.writeProjects(&b, p)

	return b.String()
}

func (r *MarkdownRenderer) writeHeader(b *strings.Builder, p *profile.Profile) {
	fmt.Fprintf(b, "<h1 align=\"center\">%s</h1>\n\n", Greeting(p.Name))
	if title, ok := present(p.Title); ok {
		fmt.Fprintf(b, "<h3 align=\"center\">%s</h3>\n\n", title)
	}
}

func (r *MarkdownRenderer) writeBio(b *strings.Builder, p *profile.Profile) {
	bio, ok := present(p.Bio)
	if !ok {
		return
	}
	b.WriteString("## 📖 Bio:\n\n")
	b.WriteString(bio + "\n\n")
}

// aboutLine is one gated line of the "About me" block.
type aboutLine struct {
	value  string
	link   string
	format func(value, link string) string
}

func (r *MarkdownRenderer) aboutLines(p *profile.Profile) []aboutLine {
	bold := func(prefix string) func(string, string) string {
		return func(v, link string) string {
			line := prefix + "**" + v + "**"
			if link != "" {
				line += " - [Link](" + link + ")"
			}
			return line
		}
	}

	return []aboutLine{
		{value: p.CurrentWork, link: p.CurrentWorkLink, format: bold("🔭 I'm currently working on ")},
		{value: p.LookingToCollaborate, link: p.CollaborateLink, format: bold("👯 I'm looking to collaborate on ")},
		{value: p.AskMeAbout, format: bold("🤝 I'm looking for help with ")},
		{value: p.CurrentlyLearning, format: bold("🌱 I'm currently learning ")},
		{value: p.AskAbout, format: bold("💬 Ask me about ")},
		{value: p.FunFact, format: bold("⚡ Fun fact: ")},
		{value: p.BlogPlatform, format: func(v, _ string) string {
			return "📝 I write articles on [My Blog](" + EnsureScheme(v) + ")"
		}},
		{value: p.ResumeLink, format: func(v, _ string) string {
			return "📄 My resume: [View Resume](" + EnsureScheme(v) + ")"
		}},
		{value: p.Pronouns, format: bold("😄 Pronouns: ")},
		{value: p.Email, format: func(v, _ string) string {
			return "📫 How to reach me: [" + v + "](mailto:" + v + ")"
		}},
	}
}

func (r *MarkdownRenderer) writeAbout(b *strings.Builder, p *profile.Profile) {
	var lines []string
	for _, l := range r.aboutLines(p) {
		v, ok := present(l.value)
		if !ok {
			continue
		}
		link, _ := present(l.link)
		lines = append(lines, l.format(v, EnsureScheme(link)))
	}
	if len(lines) == 0 {
		return
	}

	b.WriteString("## 🚀 About me:\n\n")
	for _, line := range lines {
		b.WriteString(line + "\n\n")
	}
}

func (r *MarkdownRenderer) writeSocial(b *strings.Builder, p *profile.Profile) {
	if len(p.SocialLinks) == 0 {
		return
	}
	b.WriteString("## 🌐 Connect with me:\n")
	for _, l := range p.SocialLinks {
		fmt.Fprintf(b, `<a href="%s" target="_blank"><img src="%s" alt="%s" %s /></a> `,
			r.catalog.PlatformProfileURL(l.Platform, l.Username),
			r.catalog.PlatformIconURL(l.Platform),
			l.Platform,
			iconDimension,
		)
	}
	b.WriteString("\n\n")
}

func (r *MarkdownRenderer) writeSkills(b *strings.Builder, p *profile.Profile) {
	if len(p.Skills) == 0 {
		return
	}
	groups := r.catalog.OrganizeByCategory(p.Skills)
	if len(groups) == 0 {
		return
	}

	b.WriteString("## 🛠️ Languages and Tools:\n\n")
	for _, g := range groups {
		fmt.Fprintf(b, "### %s\n", g.Name)
		for _, s := range g.Skills {
			fmt.Fprintf(b, `<img src="%s" alt="%s" %s/> `,
				r.catalog.IconURL(s), r.catalog.DisplayName(s), iconDimension)
		}
		b.WriteString("\n\n")
	}
}

func (r *MarkdownRenderer) writeStats(b *strings.Builder, p *profile.Profile) {
	if !p.AnyStats() {
		return
	}

	user := p.GithubUsername
	b.WriteString("## 📊 GitHub Statistics:\n\n")
	embeds := []struct {
		on   bool
		alt  string
		tmpl string
	}{
		{p.ShowGithubStats, strings.TrimSpace(p.Name) + "'s GitHub stats", statsURL},
		{p.ShowTopLanguages, "Top Languages", topLangsURL},
		{p.ShowStreakStats, "GitHub Streak", streakURL},
		{p.ShowGithubTrophies, "GitHub Trophies", trophiesURL},
		{p.ShowVisitorCount, "Visitor Count", visitorsURL},
	}
	for _, e := range embeds {
		if e.on {
			fmt.Fprintf(b, "![%s](%s)\n\n", e.alt, fmt.Sprintf(e.tmpl, user))
		}
	}
}

func (r *MarkdownRenderer) writeProjects(b *strings.Builder, p *profile.Profile) {
	if len(p.Projects) == 0 {
		return
	}

	b.WriteString("## 💼 Featured Projects:\n\n")
	for _, proj := range p.Projects {
		fmt.Fprintf(b, "### [%s](%s)\n", proj.Name, EnsureScheme(proj.Link))
		b.WriteString(proj.Description + "\n")
		if len(proj.Technologies) > 0 {
			b.WriteString("**Technologies:** " + strings.Join(proj.Technologies, ", ") + "\n")
		}
		b.WriteString("\n")
	}
}

// present returns the trimmed value and whether it is non-empty.
func present(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}
