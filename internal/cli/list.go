package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/GriffinCanCode/unitconv/backend/internal/providers/conversion"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var (
	listFormat   string
	listQuantity string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available conversions",
	Long: `Lists every conversion with its parameter, units and inverse.
Output formats: table, json, yaml, toml.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table, json, yaml, toml)")
	listCmd.Flags().StringVarP(&listQuantity, "quantity", "q", "", "only list conversions of this quantity")
	rootCmd.AddCommand(listCmd)
}

// catalogDocument wraps the list so TOML has a top-level table
type catalogDocument struct {
	Conversions []conversion.Conversion `json:"conversions" yaml:"conversions" toml:"conversions"`
}

func runList(cmd *cobra.Command, _ []string) error {
	entries := conversion.Catalog()
	if listQuantity != "" {
		entries = conversion.ByQuantity(conversion.Quantity(listQuantity))
		if len(entries) == 0 {
			return fmt.Errorf("unknown quantity: %s", listQuantity)
		}
	}

	doc := catalogDocument{Conversions: entries}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(listFormat) {
	case "table", "":
		return outputListTable(cmd, entries)
	case "json":
		data, err = json.MarshalIndent(doc, "", "  ")
	case "yaml", "yml":
		data, err = yaml.Marshal(doc)
	case "toml":
		data, err = toml.Marshal(doc)
	default:
		return fmt.Errorf("unsupported format: %s", listFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal conversions: %w", err)
	}

	cmd.Print(strings.TrimRight(string(data), "\n") + "\n")
	return nil
}

func outputListTable(cmd *cobra.Command, entries []conversion.Conversion) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tQUANTITY\tFROM\tTO\tINVERSE")
	for _, c := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Quantity, c.From, c.To, c.Inverse)
	}
	return w.Flush()
}
