// cmd/tools/match-cli/root.go
package main

import (
	"fmt"
	"os"

	"volunteer-matching/internal/catalog"
	"volunteer-matching/internal/matching"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type globalOptions struct {
	catalogPath string
	output      string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "match-cli",
		Short: "Score and rank volunteering opportunities offline",
		Long: `match-cli runs the matching engine against a profile file without
a Zeebe broker.

Examples:
  match-cli rank --profile ana.yaml
  match-cli score --profile ana.yaml --opportunity opp-mural
  match-cli recommend --profile ana.yaml --exclude opp-mural -o json
  match-cli activities --registry configs/activity-registry.json`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "YAML catalog file (defaults to the built-in catalog)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format (table, json)")

	root.AddCommand(
		newScoreCmd(opts),
		newRankCmd(opts),
		newRecommendCmd(opts),
		newActivitiesCmd(opts),
	)
	return root
}

func (o *globalOptions) catalog() (catalog.Catalog, error) {
	if o.catalogPath == "" {
		return catalog.NewStatic(catalog.DefaultOpportunities()), nil
	}
	return catalog.LoadFile(o.catalogPath)
}

func (o *globalOptions) validate() error {
	switch o.output {
	case "table", "json":
		return nil
	default:
		return fmt.Errorf("unknown output format %q", o.output)
	}
}

func loadProfile(path string) (*matching.Profile, error) {
	if path == "" {
		return nil, fmt.Errorf("--profile is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var p matching.Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return &p, nil
}
