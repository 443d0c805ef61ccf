// cmd/tools/match-cli/recommend.go
package main

import (
	"volunteer-matching/internal/matching"

	"github.com/spf13/cobra"
)

func newRecommendCmd(opts *globalOptions) *cobra.Command {
	var (
		profilePath string
		count       int
		top         int
		exclude     []string
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Pick exploration recommendations for a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			ranked, profile, err := rankProfile(cmd, opts, profilePath)
			if err != nil {
				return err
			}
			recs, err := matching.Recommend(profile, ranked, matching.RecommendOptions{
				Count:      count,
				TopN:       top,
				ExcludeIDs: exclude,
			})
			if err != nil {
				return err
			}
			return writeMatches(cmd.OutOrStdout(), opts.output, recs)
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "Volunteer profile YAML file")
	cmd.Flags().IntVar(&count, "count", matching.DefaultRecommendations, "Number of recommendations")
	cmd.Flags().IntVar(&top, "top", matching.DefaultTopMatches, "Size of the top-match list recommendations must not repeat")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Additional opportunity ids to leave out")
	return cmd
}
