// Package site exports the catalog as a static HTML site: one page per
// pattern with the sidebar, diagram, roles and tabbed code samples.
package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/sync/errgroup"

	"patternflow/internal/catalog"
	"patternflow/internal/diagram"
	"patternflow/internal/logging"
	"patternflow/internal/navigation"
	"patternflow/internal/present"
)

// Generator writes the site into OutputDir.
type Generator struct {
	Catalog     *catalog.Catalog
	Index       *catalog.Index
	OutputDir   string
	Title       string
	Theme       string // light or dark
	Style       string // chroma style name
	MermaidURL  string
	Concurrency int
}

type pageData struct {
	SiteTitle   string
	Theme       string
	MermaidURL  string
	Header      present.Header
	Sidebar     []groupData
	Description template.HTML
	Diagram     string
	TextDiagram string
	Roles       []roleData
	Tabs        []tabData
	Prev, Next  linkData
}

type groupData struct {
	Category  catalog.Category
	Expanded  bool
	HasActive bool
	Items     []linkData
}

type linkData struct {
	Href   string
	Name   string
	Active bool
}

type roleData struct {
	Title       string
	Description string
	Icon        string
}

type tabData struct {
	Language string
	Label    string
	Active   bool
	Code     template.HTML
}

type job struct {
	file string
	view present.View
}

// Generate builds the full site and returns the number of pages written.
func (g *Generator) Generate(ctx context.Context) (int, error) {
	if g.Catalog == nil || g.Index == nil {
		return 0, fmt.Errorf("site generator needs a catalog and index")
	}
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}

	style := g.Style
	if style == "" {
		style = "github"
		if g.Theme == "dark" {
			style = "monokai"
		}
	}

	var css bytes.Buffer
	css.WriteString(cssContent)
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&css, styles.Get(style)); err != nil {
		return 0, fmt.Errorf("writing highlight css: %w", err)
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), css.Bytes(), 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return 0, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing page template: %w", err)
	}

	// The controller is single-writer, so states are collected up front and
	// the pages rendered afterwards in parallel.
	ctrl := navigation.NewController(g.Catalog, g.Index)
	var jobs []job
	for _, s := range g.Index.FlatOrdered() {
		if err := ctrl.SelectPattern(s.ID); err != nil {
			return 0, err
		}
		v, err := present.Build(g.Catalog, g.Index, ctrl.State())
		if err != nil {
			return 0, err
		}
		jobs = append(jobs, job{file: pageFile(s.ID), view: v})
		if s.ID == g.Catalog.DefaultID() {
			jobs = append(jobs, job{file: "index.html", view: v})
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	if g.Concurrency > 0 {
		eg.SetLimit(g.Concurrency)
	}
	for _, j := range jobs {
		j := j
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return g.renderPage(ctx, md, tmpl, j)
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	logging.Site("Generated %d pages into %s", len(jobs), g.OutputDir)
	return len(jobs), nil
}

func pageFile(id string) string {
	return id + ".html"
}

func (g *Generator) renderPage(ctx context.Context, md goldmark.Markdown, tmpl *template.Template, j job) error {
	v := j.view
	p, err := g.Catalog.Get(v.Header.ID)
	if err != nil {
		return err
	}

	var desc bytes.Buffer
	if err := md.Convert([]byte(v.Header.Description), &desc); err != nil {
		return fmt.Errorf("converting description of %s: %w", p.ID, err)
	}

	data := pageData{
		SiteTitle:   g.Title,
		Theme:       g.Theme,
		MermaidURL:  g.MermaidURL,
		Header:      v.Header,
		Description: template.HTML(desc.String()),
		Diagram:     v.Diagram,
		Prev:        linkData{Href: pageFile(v.Prev.ID), Name: v.Prev.Name},
		Next:        linkData{Href: pageFile(v.Next.ID), Name: v.Next.Name},
	}
	if text, err := diagram.Render(ctx, v.Diagram, diagram.Options{}); err == nil {
		data.TextDiagram = text
	} else {
		logging.SiteDebug("No text diagram for %s: %v", p.ID, err)
	}

	for _, grp := range v.Sidebar {
		gd := groupData{Category: grp.Category, Expanded: grp.Expanded, HasActive: grp.HasActive}
		for _, it := range grp.Items {
			gd.Items = append(gd.Items, linkData{Href: pageFile(it.ID), Name: it.Name, Active: it.Active})
		}
		data.Sidebar = append(data.Sidebar, gd)
	}
	for _, r := range v.Roles {
		data.Roles = append(data.Roles, roleData{Title: r.Title, Description: r.Description, Icon: present.Icon(r.Icon)})
	}
	for _, tab := range v.Tabs {
		code, err := p.CodeFor(tab.Language)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := md.Convert([]byte(fence(string(tab.Language), code)), &buf); err != nil {
			return fmt.Errorf("converting %s sample of %s: %w", tab.Language, p.ID, err)
		}
		data.Tabs = append(data.Tabs, tabData{
			Language: string(tab.Language),
			Label:    tab.Label,
			Active:   tab.Active,
			Code:     template.HTML(buf.String()),
		})
	}

	outPath := filepath.Join(g.OutputDir, j.file)
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("rendering %s: %w", j.file, err)
	}
	logging.SiteDebug("Wrote %s", outPath)
	return nil
}

// fence wraps code in a backtick fence longer than any run inside it.
func fence(lang, code string) string {
	longest, run := 0, 0
	for _, r := range code {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	f := strings.Repeat("`", max(3, longest+1))
	return f + lang + "\n" + code + "\n" + f + "\n"
}
