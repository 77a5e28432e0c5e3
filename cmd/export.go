package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"shopctl/internal/catalog"
	"shopctl/internal/export"
	"shopctl/internal/imaging"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export catalog snapshots to Parquet or JSONL",
	}

	cmd.AddCommand(newExportSnapshotCmd())
	cmd.AddCommand(newExportInspectCmd())

	return cmd
}

func newExportSnapshotCmd() *cobra.Command {
	var output string
	var category string
	var imagesDir string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "snapshot <products|offers>",
		Short: "Fetch a catalog list and write it to a file",
		Example: `  # Export all products to parquet
  shopctl export snapshot products --output products.parquet

  # Export one category as JSONL
  shopctl export snapshot products --output pants.jsonl --category pants`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind catalog.Kind
			switch args[0] {
			case "products":
				kind = catalog.KindProduct
			case "offers":
				kind = catalog.KindOffer
			default:
				return fmt.Errorf("unknown entity kind: %s (expected products or offers)", args[0])
			}
			schema, err := catalog.SchemaFor(kind)
			if err != nil {
				return err
			}

			_, _, client, err := newSession()
			if err != nil {
				return err
			}

			slog.Info("Fetching catalog", "kind", kind)
			lc := catalog.NewListController(client, schema)
			lc.SetCategory(category)
			if out := lc.Fetch(cmd.Context()); out.Kind.Failed() {
				return fmt.Errorf("failed to fetch %ss: %w", kind, outcomeErr(out))
			}

			entities := lc.Filtered()
			rows := export.Flatten(kind, entities)
			if err := export.Write(output, rows); err != nil {
				return err
			}
			fmt.Printf("Wrote %d rows to %s\n", len(rows), output)

			if imagesDir != "" {
				urls := make([]string, 0, len(entities))
				for _, e := range entities {
					urls = append(urls, e.ImageURL(client.BaseURL()))
				}
				slog.Info("Downloading stored images", "count", len(urls), "dir", imagesDir)
				results := imaging.NewFetcher().DownloadAll(cmd.Context(), urls, imagesDir, concurrency)
				var failed int
				for _, r := range results {
					if r.Error != nil {
						failed++
					}
				}
				fmt.Printf("Downloaded %d images to %s (%d failed)\n", len(results)-failed, imagesDir, failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "catalog.parquet", "Output file (.parquet, .jsonl, or .json)")
	cmd.Flags().StringVar(&category, "category", "", "Only export entities in this category")
	cmd.Flags().StringVar(&imagesDir, "images", "", "Also download stored entity images to this directory")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Parallel image downloads")

	return cmd
}

func newExportInspectCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect <file.parquet>",
		Short: "Print rows from a previous Parquet export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := export.Read(args[0])
			if err != nil {
				return err
			}

			shown := rows
			if limit > 0 && limit < len(rows) {
				shown = rows[:limit]
			}
			for _, r := range shown {
				line := fmt.Sprintf("%-8s %s  %s", r.Kind, r.ID, r.Name)
				if r.Discount > 0 {
					line += fmt.Sprintf("  %.2f -> %.2f (-%d%%)", r.OldPrice, r.NewPrice, r.Discount)
				} else if r.Price > 0 {
					line += fmt.Sprintf("  %.2f", r.Price)
				}
				fmt.Println(line)
			}
			fmt.Printf("%d rows (%d shown)\n", len(rows), len(shown))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of rows to print (0 for all)")

	return cmd
}
