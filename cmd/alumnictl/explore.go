package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/psu-oas/alumni-dashboard/apps/api/internal/business/drilldown"
	"github.com/spf13/cobra"
)

// Both trees are explored two levels deep: campus → faculty → major and
// province → district → subdistrict.
const exploreMaxDepth = 2

type countedNode[N any] interface {
	drilldown.Node[N]
	NodeCount() int64
}

func newExploreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explore org|geo",
		Short: "Fetch once, then drill into the tree with ls, select <name>, back, reset, state, quit",
		Long: `Fetch once, then drill into the tree interactively. Commands read from stdin:

  ls             print the displayed level
  select <name>  descend into <name>, or highlight it at the deepest level
  back           go up one level
  reset          return to the top level
  state          print the drill-down state as JSON
  quit           exit`,
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
				return runExplore(cmd.InOrStdin(), cmd.OutOrStdout(), tree, "Alumni by campus")
			}
			tree, err := svc.LocationTree(ctx)
			if err != nil {
				return err
			}
			return runExplore(cmd.InOrStdin(), cmd.OutOrStdout(), tree.Children, tree.Name)
		},
	}
}

// runExplore drives a drilldown.View from line commands until quit or EOF.
func runExplore[N countedNode[N]](in io.Reader, out io.Writer, roots []N, rootTitle string) error {
	view := drilldown.New(roots, exploreMaxDepth)
	printLevel(out, view, rootTitle)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		verb, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch verb {
		case "":
			continue
		case "ls":
			printLevel(out, view, rootTitle)
		case "select":
			if arg == "" {
				fmt.Fprintln(out, "usage: select <name>")
				continue
			}
			if err := view.Select(arg); err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			printLevel(out, view, rootTitle)
		case "back":
			view.Back()
			printLevel(out, view, rootTitle)
		case "reset":
			view.Reset()
			printLevel(out, view, rootTitle)
		case "state":
			if err := writeJSON(out, view.State()); err != nil {
				return err
			}
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(out, "unknown command %q\n", verb)
		}
	}
	return scanner.Err()
}

func printLevel[N countedNode[N]](out io.Writer, view *drilldown.View[N], rootTitle string) {
	fmt.Fprintf(out, "== %s ==\n", view.Title(rootTitle))
	for _, n := range view.Display() {
		marker := " "
		if n.NodeName() == view.Highlighted() {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %s (%d)\n", marker, n.NodeName(), n.NodeCount())
	}
}
