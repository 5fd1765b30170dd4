// Package renderer renders valuations as markdown reports and charts.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/holdings"
)

//go:embed templates/*.md
var templates embed.FS

// funcs are the helpers available to every template.
var funcs = template.FuncMap{
	// cell escapes text used in a table cell.
	"cell": func(s string) string { return strings.ReplaceAll(s, "|", `\|`) },
}

// Portfolio is the list view of the open holdings.
type Portfolio struct {
	Currency string
	Holdings []holdings.Valuation // Holdings are the open ones only, in ledger order.
}

// Detail is the detail view of a single holding.
type Detail struct {
	Valuation holdings.Valuation
	Lots      []holdings.Lot
}

// HoldingsMarkdown renders the open holdings among vals.
func HoldingsMarkdown(vals []holdings.Valuation, currency string) string {
	p := Portfolio{Currency: currency}
	for _, v := range vals {
		if v.IsOpen() {
			p.Holdings = append(p.Holdings, v)
		}
	}
	partials := map[string]string{
		"holdings_title": "holdings_title.md",
		"holdings_table": "holdings_table.md",
	}
	return renderTemplate("holdings", "holdings.md", partials, p)
}

// HoldingMarkdown renders a single holding with its open FIFO lots.
func HoldingMarkdown(v holdings.Valuation, lots []holdings.Lot) string {
	partials := map[string]string{
		"holding_title":   "holding_title.md",
		"holding_figures": "holding_figures.md",
		"holding_lots":    "holding_lots.md",
	}
	return renderTemplate("holding", "holding.md", partials, Detail{Valuation: v, Lots: lots})
}

// SummaryMarkdown renders the portfolio totals.
func SummaryMarkdown(s holdings.Summary) string {
	return renderTemplate("summary", "summary.md", nil, s)
}

// ConcentrationMarkdown renders the concentration buckets as a legend table.
func ConcentrationMarkdown(buckets []holdings.Bucket) string {
	return renderTemplate("concentration", "concentration.md", nil, buckets)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
