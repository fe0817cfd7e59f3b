package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/GriffinCanCode/unitconv/backend/internal/providers/conversion"
	"github.com/GriffinCanCode/unitconv/backend/internal/types"
	"github.com/spf13/cobra"
)

var roundtripTolerance float64

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip [conversion] [value]",
	Short: "Check a conversion against its inverse",
	Long: `Applies a conversion and then its inverse and reports whether the original
value is restored within the tolerance (absolute or relative).`,
	Args: cobra.ExactArgs(2),
	RunE: runRoundtrip,
}

func init() {
	roundtripCmd.Flags().Float64Var(&roundtripTolerance, "tolerance", conversion.DefaultTolerance, "accepted absolute or relative error")
	rootCmd.AddCommand(roundtripCmd)
}

func runRoundtrip(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: must be a number", args[1])
	}

	result, err := executeLocal(context.Background(), conversion.ToolRoundTrip, map[string]interface{}{
		"conversion": args[0],
		"value":      value,
		"tolerance":  roundtripTolerance,
	})
	if err != nil {
		return err
	}

	converted, _ := types.Number(result.Data["converted"])
	restored, _ := types.Number(result.Data["restored"])
	ok, _ := result.Data["ok"].(bool)

	cmd.Printf("%s -> %s -> %s\n", formatNumber(value), formatNumber(converted), formatNumber(restored))
	if !ok {
		return fmt.Errorf("roundtrip of %s drifted beyond tolerance %g", args[0], roundtripTolerance)
	}
	cmd.Println("ok")
	return nil
}
