// cmd/tools/match-cli/activities.go
package main

import (
	"fmt"
	"strconv"
	"strings"

	"volunteer-matching/internal/common/validation"
	"volunteer-matching/pkg/registry"

	"github.com/spf13/cobra"
)

func newActivitiesCmd(opts *globalOptions) *cobra.Command {
	var (
		registryPath string
		check        bool
	)

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "List the task types in the activity registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			reg, err := registry.LoadRegistry(registryPath)
			if err != nil {
				return err
			}
			if check {
				if err := reg.Validate(); err != nil {
					return fmt.Errorf("registry validation failed: %w", err)
				}
				if _, err := validation.NewSchemaValidator(reg); err != nil {
					return fmt.Errorf("registry validation failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities.\n", len(reg.Activities))
				return nil
			}
			if opts.output == "json" {
				return writeJSON(cmd.OutOrStdout(), reg.Activities)
			}

			rows := make([][]string, 0, len(reg.Activities))
			for _, a := range reg.Activities {
				rows = append(rows, []string{
					a.TaskType,
					a.DisplayName,
					a.Timeout,
					strconv.Itoa(a.Retries),
					strings.Join(a.ErrorCodes, ", "),
				})
			}
			return writeTable(cmd.OutOrStdout(), []string{"Task type", "Name", "Timeout", "Retries", "Errors"}, rows)
		},
	}

	cmd.Flags().StringVar(&registryPath, "registry", "configs/activity-registry.json", "Activity registry file")
	cmd.Flags().BoolVar(&check, "check", false, "Validate the registry and compile every schema")
	return cmd
}
