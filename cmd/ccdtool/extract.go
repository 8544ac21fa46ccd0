package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ZaparooProject/go-ccd"
	"github.com/ZaparooProject/go-ccd/audio"
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Write one track to a file",
		Long: `Write one track to a file. Audio tracks are encoded as FLAC; data tracks
are written as raw 2352-byte sectors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, _ := cmd.Flags().GetUint8("track")
			output, _ := cmd.Flags().GetString("output")

			im, err := openImage(cmd, args[0])
			if err != nil {
				return err
			}
			defer func() { _ = im.Close() }()

			toc := im.TOC()
			start, end, ok := toc.TrackSpan(track)
			if !ok {
				return fmt.Errorf("track %d not on disc (tracks %d-%d)", track, toc.FirstTrack, toc.LastTrack)
			}
			end = min(end, int32(im.SectorCount())) //nolint:gosec // sector counts of real images fit

			file, err := os.Create(output) //nolint:gosec // Path from user input is expected
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			w := bufio.NewWriter(file)

			if toc.Tracks[track].IsData() {
				err = writeRaw(w, im, start, end)
			} else {
				err = audio.WriteFLAC(cmd.Context(), w, im, start, end)
			}
			if err == nil {
				err = w.Flush()
			}
			if closeErr := file.Close(); err == nil && closeErr != nil {
				err = fmt.Errorf("close output: %w", closeErr)
			}
			if err != nil {
				_ = os.Remove(output)
				return err
			}

			verbosef(cmd, "wrote sectors %d-%d\n", start, end-1)
			cmd.Printf("Track %d written to %s\n", track, output)
			return nil
		},
	}

	cmd.Flags().Uint8P("track", "t", 1, "track number")
	cmd.Flags().StringP("output", "o", "", "output file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// writeRaw copies the sector data of [start, end) to w.
func writeRaw(w *bufio.Writer, im *ccd.Image, start, end int32) error {
	buf := make([]byte, ccd.RawSectorSize)
	for lba := start; lba < end; lba++ {
		if err := im.ReadRawSector(buf, lba); err != nil {
			return err //nolint:wrapcheck // already names the sector
		}
		if _, err := w.Write(buf[:ccd.SectorSize]); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
