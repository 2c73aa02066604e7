// Package report renders the bill of quantities for a cart.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/jakoblorz/go-panelcart/internal/models"
)

// Line is one panel type's row in the bill of quantities.
type Line struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Items    int    `json:"items"`
	Quantity int    `json:"quantity"`
	Tallied  int    `json:"tallied"`
}

// Report aggregates the cart by panel type. Tallied is the cumulative
// tally, which can exceed Quantity when items were removed and re-added
// under another project.
type Report struct {
	ProjectCode   string `json:"projectCode,omitempty"`
	Lines         []Line `json:"lines"`
	TotalItems    int    `json:"totalItems"`
	TotalQuantity int    `json:"totalQuantity"`
}

// Build groups items and tally entries by panel type. Known types come in
// registry order, unknown ones after them sorted by code.
func Build(projectCode string, items []models.CartItem, tally models.Tally) Report {
	lines := make(map[string]*Line)
	line := func(code string) *Line {
		key := models.TallyKey(code)
		if l, ok := lines[key]; ok {
			return l
		}
		l := &Line{Code: strings.ToUpper(code), Name: "Unknown panel"}
		if pt, ok := models.LookupPanelType(code); ok {
			l.Code = pt.Code
			l.Name = pt.Name
		}
		lines[key] = l
		return l
	}

	r := Report{ProjectCode: projectCode, Lines: []Line{}}
	for _, item := range items {
		l := line(item.Type)
		l.Items++
		l.Quantity += item.Quantity
		r.TotalItems++
		r.TotalQuantity += item.Quantity
	}
	for _, key := range tally.Keys() {
		if n := tally.Get(key); n > 0 {
			line(key).Tallied = n
		}
	}

	rank := make(map[string]int)
	for i, pt := range models.PanelTypes() {
		rank[pt.Code] = i
	}
	for _, l := range lines {
		r.Lines = append(r.Lines, *l)
	}
	sort.Slice(r.Lines, func(i, j int) bool {
		ri, iKnown := rank[r.Lines[i].Code]
		rj, jKnown := rank[r.Lines[j].Code]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown != jKnown:
			return iKnown
		default:
			return r.Lines[i].Code < r.Lines[j].Code
		}
	})

	return r
}

const textTemplate = `Bill of quantities{{ if .ProjectCode }} - project {{ .ProjectCode }}{{ end }}
{{ repeat 60 "=" }}
{{- if not .Lines }}
No panels configured.
{{- else }}
{{ printf "%-6s %-30s %5s %6s %7s" "TYPE" "NAME" "ITEMS" "QTY" "TALLY" }}
{{ repeat 60 "-" }}
{{- range .Lines }}
{{ printf "%-6s %-30s %5d %6d %7d" .Code (trunc 30 .Name) .Items .Quantity .Tallied }}
{{- end }}
{{ repeat 60 "-" }}
{{ printf "%-37s %5d %6d" "Total" .TotalItems .TotalQuantity }}
{{- end }}
`

var tmpl = template.Must(template.New("report").Funcs(sprig.TxtFuncMap()).Parse(textTemplate))

// Text renders the report as a plain-text table.
func (r Report) Text() (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

// JSON renders the report as indented JSON.
func (r Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return append(data, '\n'), nil
}
