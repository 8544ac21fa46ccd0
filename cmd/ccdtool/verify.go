package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// verifyResult is the outcome of opening one image.
type verifyResult struct {
	err     error
	sectors int64
	checked int
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <image>...",
		Short: "Validate images and their subchannel data",
		Long: `Open each image with full validation: TOC, file sizes and the Q subchannel
scan. Images are checked concurrently. The exit status is non-zero if any image
fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, _ := cmd.Flags().GetInt("jobs")
			if jobs < 1 {
				jobs = 1
			}

			results := make([]verifyResult, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(jobs)

			for i, path := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err //nolint:wrapcheck // cancellation
					}
					im, err := openImage(cmd, path)
					if err != nil {
						results[i].err = err
						return nil
					}
					results[i].sectors = im.SectorCount()
					results[i].checked = im.CheckedSubQ()
					results[i].err = im.Close()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return fmt.Errorf("verify: %w", err)
			}

			failed := 0
			for i, path := range args {
				r := results[i]
				if r.err != nil {
					failed++
					cmd.Printf("FAIL %s: %v\n", path, r.err)
					continue
				}
				cmd.Printf("OK   %s\n", path)
				verbosef(cmd, "     %d sectors, %d Q blocks checked\n", r.sectors, r.checked)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d images failed verification", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().IntP("jobs", "j", runtime.NumCPU(), "number of images to check at once")
	return cmd
}
