package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"shopctl/internal/catalog"
	"shopctl/internal/imaging"
)

// draftFlags collects the field flags shared by the add and update
// subcommands. Only the flags the schema declares are registered.
type draftFlags struct {
	name        string
	price       string
	oldPrice    string
	newPrice    string
	category    string
	description string
	stock       string
	sizes       []string
	colors      []string
	imagePath   string
}

func (df *draftFlags) register(cmd *cobra.Command, schema catalog.Schema) {
	cmd.Flags().StringVar(&df.name, "name", "", "Entity name")
	if schema.Has(catalog.FieldPrice) {
		cmd.Flags().StringVar(&df.price, "price", "", "Price")
	}
	if schema.Has(catalog.FieldOldPrice) {
		cmd.Flags().StringVar(&df.oldPrice, "old-price", "", "Price before the discount")
		cmd.Flags().StringVar(&df.newPrice, "new-price", "", "Discounted price (must be below old price)")
	}
	if schema.Has(catalog.FieldCategory) {
		cmd.Flags().StringVar(&df.category, "category", "", "Category ("+strings.Join(catalog.Categories, ", ")+")")
	}
	if schema.Has(catalog.FieldDescription) {
		cmd.Flags().StringVar(&df.description, "description", "", "Description (defaults to the name)")
	}
	if schema.Has(catalog.FieldStock) {
		cmd.Flags().StringVar(&df.stock, "stock", "", "Stock count")
	}
	cmd.Flags().StringSliceVar(&df.sizes, "sizes", nil, "Sizes, e.g. --sizes S,M,L")
	cmd.Flags().StringSliceVar(&df.colors, "colors", nil, "Colors, e.g. --colors black,white")
	cmd.Flags().StringVar(&df.imagePath, "image", "", "Path to the image file")
}

// apply copies set flags onto the draft. Unset flags leave the draft
// untouched so update can start from the fetched entity.
func (df *draftFlags) apply(cmd *cobra.Command, d *catalog.Draft) error {
	if cmd.Flags().Changed("name") {
		d.Name = df.name
	}
	if cmd.Flags().Changed("price") {
		d.Price = df.price
	}
	if cmd.Flags().Changed("old-price") {
		d.OldPrice = df.oldPrice
	}
	if cmd.Flags().Changed("new-price") {
		d.NewPrice = df.newPrice
	}
	if cmd.Flags().Changed("category") {
		d.Category = df.category
	}
	if cmd.Flags().Changed("description") {
		d.Description = df.description
	}
	if cmd.Flags().Changed("stock") {
		d.Stock = df.stock
	}
	if cmd.Flags().Changed("sizes") {
		d.Sizes = catalog.NewSet(df.sizes...)
	}
	if cmd.Flags().Changed("colors") {
		d.Colors = catalog.NewSet(df.colors...)
	}
	if df.imagePath != "" {
		asset, err := loadImage(df.imagePath)
		if err != nil {
			return err
		}
		d.SetImage(asset)
	}
	return nil
}

// loadImage runs a file through the acceptance and compression pipeline
// exactly the way the console form does on selection.
func loadImage(path string) (*imaging.Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	asset, err := imaging.Accept(path, data, "", imaging.SourcePicker)
	if err != nil {
		return nil, fmt.Errorf("image rejected: %w", err)
	}
	compressed, err := imaging.Compress(asset)
	if err != nil {
		return nil, fmt.Errorf("failed to compress image: %w", err)
	}
	return compressed, nil
}

func newEntityCmd(kind catalog.Kind) *cobra.Command {
	schema, _ := catalog.SchemaFor(kind)
	plural := string(kind) + "s"

	cmd := &cobra.Command{
		Use:   plural,
		Short: fmt.Sprintf("Manage %s in the catalog", plural),
	}

	cmd.AddCommand(newListCmd(schema))
	cmd.AddCommand(newAddCmd(schema))
	cmd.AddCommand(newUpdateCmd(schema))
	cmd.AddCommand(newDeleteCmd(schema))

	return cmd
}

func newListCmd(schema catalog.Schema) *cobra.Command {
	var category string
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch and print the " + string(schema.Kind) + " list",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := newSession()
			if err != nil {
				return err
			}

			lc := catalog.NewListController(client, schema)
			lc.SetCategory(category)
			if out := lc.Fetch(cmd.Context()); out.Kind.Failed() {
				return fmt.Errorf("failed to fetch %ss: %w", schema.Kind, outcomeErr(out))
			}
			return printEntities(lc.Filtered(), output)
		},
	}

	if schema.Has(catalog.FieldCategory) {
		cmd.Flags().StringVar(&category, "category", "", "Only show entities in this category")
	}
	cmd.Flags().StringVar(&output, "output", "text", "Output format (text, json, or yaml)")

	return cmd
}

func printEntities(entities []catalog.Entity, output string) error {
	switch output {
	case "json":
		data, err := json.MarshalIndent(entities, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode entities: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(entities)
		if err != nil {
			return fmt.Errorf("failed to encode entities: %w", err)
		}
		fmt.Print(string(data))
	case "text":
		for _, e := range entities {
			line := fmt.Sprintf("%s  %s", e.ID, e.Name)
			if e.OldPrice > 0 && e.NewPrice > 0 {
				line += fmt.Sprintf("  %.2f -> %.2f", e.OldPrice, e.NewPrice)
				if pct, ok := catalog.Discount(e.OldPrice, e.NewPrice); ok {
					line += fmt.Sprintf(" (-%d%%)", pct)
				}
			} else if e.Price > 0 {
				line += fmt.Sprintf("  %.2f", e.Price)
			}
			if e.Category != "" {
				line += "  [" + e.Category + "]"
			}
			fmt.Println(line)
		}
		fmt.Printf("%d total\n", len(entities))
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
	return nil
}

func newAddCmd(schema catalog.Schema) *cobra.Command {
	var df draftFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new " + string(schema.Kind),
		Example: fmt.Sprintf(`  shopctl %ss add --name "Slim jeans" --sizes S,M,L --colors black --image ./jeans.jpg`, schema.Kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := newSession()
			if err != nil {
				return err
			}

			d := catalog.NewDraft(schema)
			if err := df.apply(cmd, d); err != nil {
				return err
			}

			out := client.Create(cmd.Context(), d)
			if err := outcomeErr(out); err != nil {
				return fmt.Errorf("create failed: %w", err)
			}
			fmt.Println(out.Message)
			return nil
		},
	}

	df.register(cmd, schema)
	return cmd
}

func newUpdateCmd(schema catalog.Schema) *cobra.Command {
	var df draftFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an existing " + string(schema.Kind),
		Long: `Update an existing entity. The current record is fetched first so
unset flags keep their stored values; pass only the fields to change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := newSession()
			if err != nil {
				return err
			}
			id := args[0]

			lc := catalog.NewListController(client, schema)
			if out := lc.Fetch(cmd.Context()); out.Kind.Failed() {
				return fmt.Errorf("failed to fetch current record: %w", outcomeErr(out))
			}
			entity, ok := lc.Find(id)
			if !ok {
				return fmt.Errorf("no %s with id %s", schema.Kind, id)
			}

			d := catalog.DraftFromEntity(schema, entity, client.BaseURL())
			if err := df.apply(cmd, d); err != nil {
				return err
			}

			out := client.Update(cmd.Context(), d, id)
			if err := outcomeErr(out); err != nil {
				return fmt.Errorf("update failed: %w", err)
			}
			fmt.Println(out.Message)
			return nil
		},
	}

	df.register(cmd, schema)
	return cmd
}

func newDeleteCmd(schema catalog.Schema) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + string(schema.Kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, client, err := newSession()
			if err != nil {
				return err
			}
			id := args[0]

			if !yes {
				fmt.Printf("Delete %s %s? This cannot be undone. [y/N] ", schema.Kind, id)
				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				if strings.ToLower(strings.TrimSpace(answer)) != "y" {
					fmt.Println("Aborted")
					return nil
				}
			}

			out := client.Delete(cmd.Context(), schema, id, catalog.Confirm())
			if err := outcomeErr(out); err != nil {
				return fmt.Errorf("delete failed: %w", err)
			}
			fmt.Println(out.Message)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}
