package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	portfolioTemplate = "portfolio.html"
	notFoundTemplate  = "not_found.html"
)

// Renderer owns the parsed template set. The same set is handed to gin for
// the dashboard pages.
type Renderer struct {
	templates  *template.Template
	rootDomain string
	protocol   string
}

type portfolioPage struct {
	Portfolio
	SiteTitle string
	RootURL   string
}

type notFoundPage struct {
	RootDomain string
	RootURL    string
}

func NewRenderer(rootDomain, protocol string) (*Renderer, error) {
	templates, err := template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Renderer{templates: templates, rootDomain: rootDomain, protocol: protocol}, nil
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"icon":     Icon,
		"iconKeys": IconKeys,
		"deref":    deref,
		"join":     strings.Join,
		"inc":      func(i int) int { return i + 1 },
	}
}

func (r *Renderer) Templates() *template.Template {
	return r.templates
}

func (r *Renderer) rootURL() string {
	return r.protocol + "://" + r.rootDomain
}

func (r *Renderer) Portfolio(w io.Writer, view Portfolio) error {
	return r.templates.ExecuteTemplate(w, portfolioTemplate, portfolioPage{
		Portfolio: view,
		SiteTitle: view.Subdomain + "." + r.rootDomain,
		RootURL:   r.rootURL(),
	})
}

// PortfolioBytes renders into memory for the page cache.
func (r *Renderer) PortfolioBytes(view Portfolio) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Portfolio(&buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) NotFound(w io.Writer) error {
	return r.templates.ExecuteTemplate(w, notFoundTemplate, notFoundPage{
		RootDomain: r.rootDomain,
		RootURL:    r.rootURL(),
	})
}
