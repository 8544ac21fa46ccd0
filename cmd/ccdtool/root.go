package main

import (
	"github.com/spf13/cobra"

	"github.com/ZaparooProject/go-ccd"
)

const appVersion = "0.1.0"

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ccdtool",
		Short: "Inspect, verify and extract CloneCD disc images",
		Long: `ccdtool works with CloneCD disc images (.ccd + .img + .sub).

Images can be given as a path to the .ccd file, or as a path into a ZIP, 7z or
RAR archive holding the set:
  ccdtool info game.ccd
  ccdtool info games.7z/Disc 1/game.ccd
  ccdtool verify *.ccd sets.zip`,
		Version:      appVersion,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "print extra diagnostics")
	root.PersistentFlags().Bool("memcache", false, "load image files fully into memory")

	root.AddCommand(newInfoCmd(), newVerifyCmd(), newReadCmd(), newExtractCmd())
	return root
}

// openImage opens the image named by path using the persistent flags.
func openImage(cmd *cobra.Command, path string, opts ...ccd.Option) (*ccd.Image, error) {
	memcache, err := cmd.Flags().GetBool("memcache")
	if err != nil {
		return nil, err //nolint:wrapcheck // flag lookup cannot fail for registered flags
	}
	opts = append(opts, ccd.WithMemoryCache(memcache))
	return ccd.OpenPath(path, opts...) //nolint:wrapcheck // errors already carry context
}

// verbosef prints only when --verbose is set.
func verbosef(cmd *cobra.Command, format string, args ...any) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cmd.PrintErrf(format, args...)
	}
}
