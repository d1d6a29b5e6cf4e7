package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calverra/workdeck/internal/capability"
	"github.com/calverra/workdeck/internal/server"
)

func newGenerateDocsCmd() *cobra.Command {
	var (
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "generate-docs",
		Short: "Generate capability catalog documentation",
		Long: `Generate markdown documentation for every capability in the catalog.
This command introspects the registered capabilities and outputs their
documentation in markdown format, ensuring the documentation is always
accurate and in sync with the actual implementations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateDocs(outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runGenerateDocs(outputFile string) error {
	// No credentials needed; unlinked accounts fall back to offline backends.
	ctx := context.Background()
	serverContext, err := server.NewServerContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		_ = serverContext.Shutdown()
	}()

	markdown := generateCatalogMarkdown(serverContext.Registry().All())

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(markdown), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Documentation written to: %s\n", outputFile)
	} else {
		fmt.Print(markdown)
	}

	return nil
}

func generateCatalogMarkdown(descriptors []capability.Descriptor) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Capability Catalog Reference\n\n")
	sb.WriteString("This document provides a complete reference of all capabilities available through workdeck, both as MCP tools and to the planning loop.\n\n")
	sb.WriteString("**Note:** This documentation is automatically generated from the capability definitions.\n\n")

	byCategory := groupByCategory(descriptors)

	// Table of contents
	sb.WriteString("## Table of Contents\n\n")
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		anchor := strings.ToLower(strings.ReplaceAll(category, " ", "-"))
		sb.WriteString(fmt.Sprintf("- [%s](#%s)\n", category, anchor))
	}
	sb.WriteString("\n")

	// Multi-account support note
	sb.WriteString("## Multi-Account Support\n\n")
	sb.WriteString("Every capability accepts an optional `account` parameter to specify which Google account to use:\n\n")
	sb.WriteString("- **Default behavior:** If `account` is not specified, the `default` account is used\n")
	sb.WriteString("- **Multiple accounts:** You can manage multiple Google accounts (e.g., `work`, `personal`)\n")
	sb.WriteString("- **Per-call specification:** Each invocation can use a different account\n\n")

	for _, category := range categories {
		descs := byCategory[category]
		sort.Slice(descs, func(i, j int) bool {
			return descs[i].Slug < descs[j].Slug
		})

		sb.WriteString(fmt.Sprintf("## %s\n\n", category))

		for _, desc := range descs {
			sb.WriteString(generateCapabilityMarkdown(desc))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func groupByCategory(descriptors []capability.Descriptor) map[string][]capability.Descriptor {
	categories := make(map[string][]capability.Descriptor)

	for _, desc := range descriptors {
		category := categoryFromSlug(desc.Slug)
		categories[category] = append(categories[category], desc)
	}

	return categories
}

func categoryFromSlug(slug string) string {
	prefix, _, _ := strings.Cut(slug, "_")
	switch prefix {
	case "GMAIL":
		return "Gmail"
	case "GOOGLECALENDAR":
		return "Google Calendar"
	case "GOOGLEDRIVE":
		return "Google Drive"
	case "GOOGLETASKS":
		return "Google Tasks"
	case "GOOGLEDOCS":
		return "Google Docs"
	case "GOOGLESHEETS":
		return "Google Sheets"
	case "GOOGLESLIDES":
		return "Google Slides"
	case "GOOGLEFORMS":
		return "Google Forms"
	case "GOOGLECHAT":
		return "Google Chat"
	case "GOOGLESEARCH":
		return "Workspace Search"
	default:
		return "Other"
	}
}

func generateCapabilityMarkdown(desc capability.Descriptor) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("### %s\n\n", desc.Slug))

	if desc.Description != "" {
		sb.WriteString(fmt.Sprintf("%s\n\n", desc.Description))
	}

	if desc.Mutating {
		sb.WriteString("**Mutating:** this capability modifies data and is withheld in read-only mode.\n\n")
	}

	if len(desc.Schema.Fields) > 0 {
		sb.WriteString("**Arguments:**\n")
		for _, field := range desc.Schema.Fields {
			sb.WriteString(generateFieldMarkdown(field))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func generateFieldMarkdown(field capability.Field) string {
	var sb strings.Builder

	requiredStr := "optional"
	if field.Required {
		requiredStr = "required"
	}

	sb.WriteString(fmt.Sprintf("- `%s` (%s, %s): ", field.Name, field.Type, requiredStr))

	if field.Description != "" {
		sb.WriteString(field.Description)
	} else {
		sb.WriteString(fmt.Sprintf("%s parameter", field.Type))
	}

	if len(field.EnumValues) > 0 {
		sb.WriteString(fmt.Sprintf(" One of: `%s`.", strings.Join(field.EnumValues, "`, `")))
	}
	if field.Default != nil {
		sb.WriteString(fmt.Sprintf(" Defaults to `%v`.", field.Default))
	}

	sb.WriteString("\n")
	return sb.String()
}
