// ABOUTME: Embed command backfills document embeddings for vector search
// ABOUTME: Embeds only documents missing a vector unless --force is given
package commands

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harper/portfolio-backend/internal/rag"
	"github.com/spf13/cobra"
)

var embedForce bool

// NewEmbedCmd creates the embed command
func NewEmbedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embed [projects|certificates]",
		Short: "Compute embeddings for stored documents",
		Long: `Compute embeddings for stored documents so vector search can find them.

With no argument both collections are processed. Documents that
already have an embedding are skipped unless --force is set.

Examples:
  portfolio embed
  portfolio embed projects
  portfolio embed certificates --force`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: collections,
		RunE:      runEmbed,
	}

	cmd.Flags().BoolVar(&embedForce, "force", false, "Re-embed documents that already have a vector")

	return cmd
}

type embedResult struct {
	Collection string `json:"collection"`
	Indexed    int    `json:"indexed"`
	Error      string `json:"error,omitempty"`
}

func runEmbed(cmd *cobra.Command, args []string) error {
	targets := collections
	if len(args) == 1 {
		if err := validateCollection(args[0]); err != nil {
			return err
		}
		targets = []string{args[0]}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	store, _, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	embedder, _, err := newProvider(ctx, cfg)
	if err != nil {
		return err
	}
	indexer := rag.NewIndexer(embedder, store, cfg.EmbeddingTimeout)

	var results []embedResult
	failed := false
	for _, collection := range targets {
		n, err := indexer.Backfill(ctx, collection, embedForce)
		res := embedResult{Collection: collection, Indexed: n}
		if err != nil {
			failed = true
			res.Error = err.Error()
			log.Error("embedding backfill had failures", "collection", collection, "err", err)
		}
		results = append(results, res)
	}

	if outputFormat == "json" {
		if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	} else if !quiet {
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: embedded %d document(s)\n", r.Collection, r.Indexed)
		}
	}

	if failed {
		return fmt.Errorf("some documents could not be embedded")
	}
	return nil
}
