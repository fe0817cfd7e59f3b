package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/GriffinCanCode/unitconv/backend/internal/client"
	"github.com/GriffinCanCode/unitconv/backend/internal/grpc"
	"github.com/GriffinCanCode/unitconv/backend/internal/providers/conversion"
	"github.com/GriffinCanCode/unitconv/backend/internal/types"
	"github.com/spf13/cobra"
)

var (
	convertRemote string
	convertGRPC   string
	convertJSON   bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [conversion] [value]",
	Short: "Convert a value",
	Long: `Applies one conversion to a value, e.g. "unitconv convert celsius_to_fahrenheit 100".
Runs in-process unless --remote or --grpc names a server.
Use "--" before negative values: unitconv convert -- celsius_to_fahrenheit -40`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertRemote, "remote", "", "base URL of a unitconv HTTP server")
	convertCmd.Flags().StringVar(&convertGRPC, "grpc", "", "address of a unitconv gRPC server")
	convertCmd.Flags().BoolVar(&convertJSON, "json", false, "output result as JSON")
	convertCmd.MarkFlagsMutuallyExclusive("remote", "grpc")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	conv, ok := conversion.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown conversion: %s", args[0])
	}

	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: must be a number", args[1])
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	out, err := convertWith(ctx, conv, value)
	if err != nil {
		return err
	}

	if convertJSON {
		return outputConvertJSON(cmd, conv, value, out)
	}
	cmd.Printf("%s %s = %s %s\n", formatNumber(value), conv.From, formatNumber(out), conv.To)
	return nil
}

// convertWith dispatches to the in-process provider, HTTP or gRPC
func convertWith(ctx context.Context, conv conversion.Conversion, value float64) (float64, error) {
	switch {
	case convertRemote != "":
		opts := client.DefaultOptions()
		opts.Timeout = timeout
		return client.New(convertRemote, opts).ConvertValue(ctx, conv.ID, value)

	case convertGRPC != "":
		c, err := grpc.NewClient(convertGRPC, grpc.ClientOptions{})
		if err != nil {
			return 0, err
		}
		defer c.Close()
		return c.Convert(ctx, conv.ID, value)

	default:
		result, err := executeLocal(ctx, conv.ToolID(), map[string]interface{}{"value": value})
		if err != nil {
			return 0, err
		}
		out, ok := types.Number(result.Data["result"])
		if !ok {
			return 0, fmt.Errorf("conversion returned no numeric result")
		}
		return out, nil
	}
}

func outputConvertJSON(cmd *cobra.Command, conv conversion.Conversion, value, out float64) error {
	result := (&types.Result{Success: true, Data: map[string]interface{}{
		"conversion": conv.ID,
		"from":       conv.From,
		"to":         conv.To,
		"input":      value,
		"result":     out,
	}}).JSONSafe()

	data, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
