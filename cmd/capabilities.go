package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/calverra/workdeck/internal/server"
)

func newCapabilitiesCmd() *cobra.Command {
	var (
		mutatingOnly bool
	)

	cmd := &cobra.Command{
		Use:   "capabilities",
		Short: "List the capability catalog",
		Long: `List every capability in the catalog with its slug, kind and description.

Mutating capabilities are the ones withheld when the MCP server runs with
--read-only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCapabilities(mutatingOnly)
		},
	}

	cmd.Flags().BoolVar(&mutatingOnly, "mutating", false, "Only list mutating capabilities")

	return cmd
}

func runCapabilities(mutatingOnly bool) error {
	ctx := context.Background()
	serverContext, err := server.NewServerContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		_ = serverContext.Shutdown()
	}()

	descriptors := serverContext.Registry().All()
	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].Slug < descriptors[j].Slug
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tKIND\tDESCRIPTION")

	count := 0
	for _, desc := range descriptors {
		if mutatingOnly && !desc.Mutating {
			continue
		}
		kind := "read"
		if desc.Mutating {
			kind = "mutating"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", desc.Slug, kind, desc.Description)
		count++
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d capabilities\n", count)
	return nil
}
