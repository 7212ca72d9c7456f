// ABOUTME: CLI command to list projects or certificates
// ABOUTME: Prints a table by default or the raw documents with --format json
package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/harper/portfolio-backend/internal/models"
	"github.com/harper/portfolio-backend/internal/storage"
	"github.com/spf13/cobra"
)

// NewListCmd creates list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <projects|certificates>",
		Short: "List projects or certificates",
		Long: `List the documents in one collection.

Examples:
  portfolio list projects
  portfolio list certificates
  portfolio list projects --format json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: collections,
		RunE:      runList,
	}

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	collection := args[0]
	if err := validateCollection(collection); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, _, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	docs, err := store.List(cmd.Context(), collection)
	if err != nil {
		return fmt.Errorf("listing %s: %w", collection, err)
	}

	if outputFormat == "json" {
		if docs == nil {
			docs = []models.Document{}
		}
		return writeJSON(cmd.OutOrStdout(), docs)
	}

	if len(docs) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No %s found\n", collection)
		}
		return nil
	}

	printTable(cmd, collection, docs)
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d %s\n", len(docs), collection)
	}
	return nil
}

func printTable(cmd *cobra.Command, collection string, docs []models.Document) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	if collection == storage.CollectionCertificates {
		fmt.Fprintf(w, "SLUG\tNAME\tISSUER\tISSUED\n")
		fmt.Fprintf(w, "----\t----\t------\t------\n")
		for _, doc := range docs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				truncate(field(doc, "slug"), 30),
				truncate(field(doc, "name"), 40),
				truncate(field(doc, "issuer"), 25),
				field(doc, "issue_date"))
		}
		return
	}

	fmt.Fprintf(w, "SLUG\tTITLE\tDATE\tTECHNOLOGIES\n")
	fmt.Fprintf(w, "----\t-----\t----\t------------\n")
	for _, doc := range docs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			truncate(field(doc, "slug"), 30),
			truncate(field(doc, "title"), 40),
			field(doc, "date"),
			truncate(strings.Join(doc.Strings("technologies"), ", "), 40))
	}
}

func field(doc models.Document, key string) string {
	if v, ok := doc.String(key); ok {
		return v
	}
	return "-"
}
