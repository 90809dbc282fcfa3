// Package main provides the CLI entrypoint for signature-resolver.
//
// signature-resolver reads a YAML declaration file describing a type lattice
// and mapper declarations, and:
//   - Validates the file structurally (check)
//   - Builds the candidate pool of a mapper declaration (pool)
//   - Resolves call shapes against that pool (resolve)
//   - Imports Go packages into a lattice for inspection (lattice)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"signature-resolver/internal/config"
)

// Version is set at build time.
var Version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "signature-resolver",
		Short:         "Resolve mapping method signatures against a declaration graph",
		Long:          `signature-resolver selects, among the methods of a mapper and the mappers it uses, the ones able to serve a given call shape`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "path to "+config.FileName+" (default: searched upwards from the working directory)")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().String("format", "text", "output format (text|yaml)")
	root.PersistentFlags().Int("workers", 0, "max parallel call resolutions (0=auto)")
	root.PersistentFlags().Bool("strict", false, "fail when retrieval reports errors")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newPoolCmd())
	root.AddCommand(newResolveCmd())
	root.AddCommand(newLatticeCmd())

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		errColor := color.New(color.FgRed, color.Bold)
		errColor.Fprint(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
