// cmd/tools/match-cli/rank.go
package main

import (
	"volunteer-matching/internal/matching"

	"github.com/spf13/cobra"
)

func newRankCmd(opts *globalOptions) *cobra.Command {
	var (
		profilePath string
		limit       int
		all         bool
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank the catalog against a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			ranked, _, err := rankProfile(cmd, opts, profilePath)
			if err != nil {
				return err
			}
			if !all {
				ranked = matching.TopMatches(ranked, limit)
			}
			return writeMatches(cmd.OutOrStdout(), opts.output, ranked)
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "Volunteer profile YAML file")
	cmd.Flags().IntVar(&limit, "limit", matching.DefaultTopMatches, "Number of top matches")
	cmd.Flags().BoolVar(&all, "all", false, "Print every scored opportunity")
	return cmd
}

func rankProfile(cmd *cobra.Command, opts *globalOptions, profilePath string) ([]matching.Match, *matching.Profile, error) {
	profile, err := loadProfile(profilePath)
	if err != nil {
		return nil, nil, err
	}
	cat, err := opts.catalog()
	if err != nil {
		return nil, nil, err
	}
	opps, err := cat.List(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	ranked, err := matching.Rank(profile, opps)
	if err != nil {
		return nil, nil, err
	}
	return ranked, profile, nil
}
