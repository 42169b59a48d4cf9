//go:build bench

package pipeline

import (
	"fmt"
	"testing"

	"github.com/alnah/go-profilemd/internal/catalog"
	"github.com/alnah/go-profilemd/internal/profile"
)

// sizedProfile returns fullProfile with n catalog skills and n projects.
func sizedProfile(n int) *profile.Profile {
	p := fullProfile()
	skills := catalog.Default().Skills()
	p.Skills = nil
	p.Projects = nil
	for i := 0; i < n; i++ {
		p.Skills = append(p.Skills, skills[i%len(skills)])
		p.Projects = append(p.Projects, profile.Project{
			Name:         fmt.Sprintf("engine-%d", i),
			Description:  "Difference tables with **carry** and `loops`.",
			Link:         fmt.Sprintf("example.com/engine/%d", i),
			Technologies: []string{"Go", "Python"},
		})
	}
	return p
}

var benchSizes = []int{1, 10, 50, 200}

func BenchmarkMarkdownRenderer(b *testing.B) {
	r := NewMarkdownRenderer(nil)

	for _, n := range benchSizes {
		p := sizedProfile(n)
		b.Run(fmt.Sprintf("items_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = r.Render(p)
			}
		})
	}
}

func BenchmarkHTMLConverter(b *testing.B) {
	md := NewMarkdownRenderer(nil)
	themes := map[string]string{"default": "", "inline": "body { color: teal; }"}

	for theme, css := range themes {
		c := NewHTMLConverter(css)
		for _, n := range benchSizes {
			doc := md.Render(sizedProfile(n))
			b.Run(fmt.Sprintf("%s/items_%d", theme, n), func(b *testing.B) {
				b.ReportAllocs()
				for b.Loop() {
					_ = c.ToHTML(doc, "Ada Lovelace")
				}
			})
		}
	}
}

func BenchmarkHTMLConverter_Parallel(b *testing.B) {
	c := NewHTMLConverter("")
	doc := NewMarkdownRenderer(nil).Render(sizedProfile(50))

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = c.ToHTML(doc, "Ada Lovelace")
		}
	})
}

func BenchmarkTextConverter(b *testing.B) {
	doc := NewMarkdownRenderer(nil).Render(sizedProfile(50))

	for _, width := range []int{0, 40, 80} {
		c := NewTextConverter(width)
		b.Run(fmt.Sprintf("width_%d", width), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = c.ToText(doc)
			}
		})
	}
}

func BenchmarkOrganizeByCategory(b *testing.B) {
	c := catalog.Default()
	skills := sizedProfile(200).Skills

	b.ReportAllocs()
	for b.Loop() {
		_ = c.OrganizeByCategory(skills)
	}
}
