// Package shell renders the HTML page shell shared by every generated
// page: head block, navigation, theme class, analytics snippet, and (in
// dev) the live-reload script.
package shell

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/tmheller/tmheller.dev/kit/lazycache"
)

//go:embed shell.html.tmpl
var shellTmplSrc string

var shellTmpl lazycache.Value[*template.Template]

type NavItem struct {
	Label string
	Href  string
}

// DefaultNav is the site's fixed top navigation.
var DefaultNav = []NavItem{
	{Label: "Home", Href: "/"},
	{Label: "Blog", Href: "/blog"},
	{Label: "Projects", Href: "/projects"},
	{Label: "Speaking", Href: "/speaking"},
	{Label: "Donate", Href: "/donate"},
}

type PageData struct {
	Head          template.HTML
	Nav           []NavItem
	Main          template.HTML
	HTMLClass     string
	AnalyticsID   string
	RefreshScript template.HTML
}

func Render(w io.Writer, data *PageData) error {
	tmpl, err := lazycache.GetErr(&shellTmpl, func() (*template.Template, error) {
		return template.New("shell").Parse(shellTmplSrc)
	})
	if err != nil {
		return fmt.Errorf("shell: could not parse shell template: %w", err)
	}
	if data.Nav == nil {
		data.Nav = DefaultNav
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("shell: could not render page shell: %w", err)
	}
	return nil
}
