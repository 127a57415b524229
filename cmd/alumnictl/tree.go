package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "tree org|geo",
		Short:     "Fetch once and print the tree as indented JSON",
		ValidArgs: treeKinds,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, closeFn, err := a.service(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			if args[0] == "org" {
				tree, err := svc.OrgTree(ctx)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), tree)
			}
			tree, err := svc.LocationTree(ctx)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), tree)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
