package main

import (
	"encoding/hex"

	"github.com/spf13/cobra"

	"github.com/ZaparooProject/go-ccd"
	"github.com/ZaparooProject/go-ccd/subchannel"
)

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <image>",
		Short: "Hex dump one raw sector with its subchannel data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lba, _ := cmd.Flags().GetInt32("lba")

			im, err := openImage(cmd, args[0], ccd.WithoutSubQCheck())
			if err != nil {
				return err
			}
			defer func() { _ = im.Close() }()

			buf := make([]byte, ccd.RawSectorSize)
			if err := im.ReadRawSector(buf, lba); err != nil {
				return err //nolint:wrapcheck // already names the sector
			}

			cmd.Print(hex.Dump(buf))

			flat := make([]byte, subchannel.Size)
			subchannel.Deinterleave(flat, buf[ccd.SectorSize:])
			q := subchannel.Q(flat)
			if !subchannel.QChecksumValid(q) {
				cmd.Printf("Q: bad checksum\n")
				return nil
			}
			if subchannel.ADR(q) != subchannel.ADRPosition {
				cmd.Printf("Q: mode %d\n", subchannel.ADR(q))
				return nil
			}
			pos, err := subchannel.DecodePosition(q)
			if err != nil {
				cmd.Printf("Q: %v\n", err)
				return nil
			}
			cmd.Printf("Q: track %d index %d relative %s absolute %s\n",
				pos.Track, pos.Index, pos.Relative, pos.Absolute)
			return nil
		},
	}

	cmd.Flags().Int32("lba", 0, "sector to read")
	return cmd
}
