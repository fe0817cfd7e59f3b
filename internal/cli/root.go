package cli

import (
	"time"

	"github.com/spf13/cobra"
)

// version is set at build time via SetVersion
var version = "dev"

var timeout time.Duration

var rootCmd = &cobra.Command{
	Use:   "unitconv",
	Short: "Convert between common units",
	Long: `unitconv evaluates fixed-constant unit conversions (temperature, currency,
length, mass, speed, energy, power) locally or against a running unitconv server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "timeout for remote calls")
}

// SetVersion sets the version reported by `unitconv version`
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
