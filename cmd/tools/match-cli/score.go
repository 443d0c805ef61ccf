// cmd/tools/match-cli/score.go
package main

import (
	"fmt"
	"strconv"
	"strings"

	"volunteer-matching/internal/matching"

	"github.com/spf13/cobra"
)

func newScoreCmd(opts *globalOptions) *cobra.Command {
	var profilePath, opportunityID string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one opportunity against a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			profile, err := loadProfile(profilePath)
			if err != nil {
				return err
			}
			cat, err := opts.catalog()
			if err != nil {
				return err
			}
			opp, err := cat.Get(cmd.Context(), opportunityID)
			if err != nil {
				return fmt.Errorf("opportunity %q: %w", opportunityID, err)
			}

			match, err := matching.Aggregate(profile, opp)
			if err != nil {
				return err
			}

			if opts.output == "json" {
				return writeJSON(cmd.OutOrStdout(), match)
			}
			return writeTable(cmd.OutOrStdout(), []string{"Category", "Score", "Notes"}, [][]string{
				{"skills", strconv.Itoa(match.Details.SkillScore), "matched: " + strings.Join(match.MatchedSkills, ", ")},
				{"interests", strconv.Itoa(match.Details.InterestScore), strings.Join(match.MatchingInterests, ", ")},
				{"availability", strconv.Itoa(match.Details.AvailabilityScore), opp.TimeRequirements},
				{"location", strconv.Itoa(match.Details.LocationScore), opp.Location},
				{"total", strconv.Itoa(match.Score), "missing: " + strings.Join(match.MissingSkills, ", ")},
			})
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "Volunteer profile YAML file")
	cmd.Flags().StringVar(&opportunityID, "opportunity", "", "Opportunity id")
	_ = cmd.MarkFlagRequired("opportunity")
	return cmd
}
