// internal/workers/matching/notify-recommendations/templates.go
package notifyrecommendations

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"text/template"

	"volunteer-matching/internal/matching"
)

const emailSubject = "Mundësi vullnetarizmi për ju"

const smsItems = 3

var textTmpl = template.Must(template.New("text").Parse(`Përshëndetje {{.Name}},

Këto mundësi përputhen me profilin tuaj:
{{range .Items}}- {{.Title}}{{if .Organization}} ({{.Organization}}){{end}}{{if .Location}}, {{.Location}}{{end}}: {{.Score}}% përputhje
{{end}}
Faleminderit që jeni vullnetar!
`))

var htmlTmpl = htmltemplate.Must(htmltemplate.New("html").Parse(`<p>Përshëndetje {{.Name}},</p>
<p>Këto mundësi përputhen me profilin tuaj:</p>
<ul>
{{range .Items}}<li><strong>{{.Title}}</strong>{{if .Organization}} ({{.Organization}}){{end}}{{if .Location}}, {{.Location}}{{end}}: {{.Score}}% përputhje</li>
{{end}}</ul>
<p>Faleminderit që jeni vullnetar!</p>
`))

type emailData struct {
	Name  string
	Items []item
}

func toItems(recs []matching.Match, max int) []item {
	if max > 0 && len(recs) > max {
		recs = recs[:max]
	}
	items := make([]item, 0, len(recs))
	for _, m := range recs {
		it := item{Title: m.OpportunityID, Score: m.Score}
		if m.Opportunity != nil {
			if m.Opportunity.Title != "" {
				it.Title = m.Opportunity.Title
			}
			it.Organization = m.Opportunity.Organization
			it.Location = m.Opportunity.Location
		}
		items = append(items, it)
	}
	return items
}

func renderEmail(name string, items []item) (text, html string, err error) {
	if strings.TrimSpace(name) == "" {
		name = "vullnetar"
	}
	data := emailData{Name: name, Items: items}

	var tb, hb bytes.Buffer
	if err := textTmpl.Execute(&tb, data); err != nil {
		return "", "", fmt.Errorf("render text email: %w", err)
	}
	if err := htmlTmpl.Execute(&hb, data); err != nil {
		return "", "", fmt.Errorf("render html email: %w", err)
	}
	return tb.String(), hb.String(), nil
}

func renderSMS(items []item) string {
	if len(items) > smsItems {
		items = items[:smsItems]
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (%d%%)", it.Title, it.Score))
	}
	return fmt.Sprintf("Mundësi vullnetarizmi për ju: %s", strings.Join(parts, ", "))
}
