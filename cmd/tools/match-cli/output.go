// cmd/tools/match-cli/output.go
package main

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"volunteer-matching/internal/matching"

	"github.com/olekukonko/tablewriter"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	cols := make([]any, len(header))
	for i, h := range header {
		cols[i] = h
	}
	table.Header(cols...)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func writeMatches(w io.Writer, format string, matches []matching.Match) error {
	if format == "json" {
		return writeJSON(w, matches)
	}

	rows := make([][]string, 0, len(matches))
	for i, m := range matches {
		title := m.OpportunityID
		if m.Opportunity != nil && m.Opportunity.Title != "" {
			title = m.Opportunity.Title
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			m.OpportunityID,
			title,
			strconv.Itoa(m.Score),
			strings.Join(m.MatchedSkills, ", "),
			strings.Join(m.MatchingInterests, ", "),
		})
	}
	return writeTable(w, []string{"#", "ID", "Title", "Score", "Skills", "Interests"}, rows)
}
