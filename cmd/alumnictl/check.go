package main

import (
	"fmt"

	"github.com/psu-oas/alumni-dashboard/apps/api/internal/business/alumni"
	"github.com/spf13/cobra"
)

func newCheckSourceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check-source",
		Short: "Report the configured stats source and check that both bodies are readable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source: %s\n", a.cfg.StatsSource)

			src, closeFn, err := a.open(ctx, a.cfg, a.logger)
			if err != nil {
				return fmt.Errorf("open %s source: %w", a.cfg.StatsSource, err)
			}
			defer closeFn()

			orgBody, err := src.OrgCounts(ctx)
			if err != nil {
				return fmt.Errorf("org counts: %w", err)
			}
			records, err := alumni.DecodeOrgPayload(orgBody)
			if err != nil {
				return fmt.Errorf("org counts: %w", err)
			}
			fmt.Fprintf(out, "org counts: %d bytes, %d faculty records\n", len(orgBody), len(records))

			locationBody, err := src.LocationCounts(ctx)
			if err != nil {
				return fmt.Errorf("location counts: %w", err)
			}
			payload, err := alumni.DecodeLocationPayload(locationBody)
			if err != nil {
				return fmt.Errorf("location counts: %w", err)
			}
			fmt.Fprintf(out, "location counts: %d bytes, %d provinces\n", len(locationBody), len(payload.LocationCounts))
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}
