package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ZaparooProject/go-ccd"
	"github.com/ZaparooProject/go-ccd/iso9660"
	"github.com/ZaparooProject/go-ccd/subchannel"
)

// trackReport describes one track for output.
type trackReport struct {
	Volume  *iso9660.Volume `json:"volume,omitempty" yaml:"volume,omitempty"`
	Type    string          `json:"type" yaml:"type"`
	Start   string          `json:"start" yaml:"start"`
	ISRC    string          `json:"isrc,omitempty" yaml:"isrc,omitempty"`
	Indexes []ccd.Index     `json:"indexes,omitempty" yaml:"indexes,omitempty"`
	LBA     int32           `json:"lba" yaml:"lba"`
	Length  int32           `json:"length" yaml:"length"`
	Number  uint8           `json:"number" yaml:"number"`
	ADR     uint8           `json:"adr" yaml:"adr"`
	Control uint8           `json:"control" yaml:"control"`
	Mode    uint8           `json:"mode" yaml:"mode"`
}

// imageReport describes a whole image for output.
type imageReport struct {
	Path        string        `json:"path" yaml:"path"`
	Tracks      []trackReport `json:"tracks" yaml:"tracks"`
	Info        ccd.Info      `json:"info" yaml:"info"`
	Sectors     int64         `json:"sectors" yaml:"sectors"`
	CheckedSubQ int           `json:"checkedSubQ" yaml:"checkedSubQ"`
	LeadoutLBA  int32         `json:"leadoutLba" yaml:"leadoutLba"`
	FirstTrack  uint8         `json:"firstTrack" yaml:"firstTrack"`
	LastTrack   uint8         `json:"lastTrack" yaml:"lastTrack"`
	DiscType    uint8         `json:"discType" yaml:"discType"`
}

func buildReport(path string, im *ccd.Image) imageReport {
	toc := im.TOC()
	report := imageReport{
		Path:        path,
		Info:        im.Info(),
		Sectors:     im.SectorCount(),
		CheckedSubQ: im.CheckedSubQ(),
		LeadoutLBA:  toc.Leadout().LBA,
		FirstTrack:  toc.FirstTrack,
		LastTrack:   toc.LastTrack,
		DiscType:    toc.DiscType,
	}

	for n := toc.FirstTrack; n != 0 && n <= toc.LastTrack && n < ccd.LeadoutTrack; n++ {
		start, end, _ := toc.TrackSpan(n)
		track := toc.Tracks[n]
		tr := trackReport{
			Number:  n,
			Type:    "audio",
			LBA:     start,
			Start:   subchannel.MSFFromLBA(start).String(),
			Length:  end - start,
			ADR:     track.ADR,
			Control: track.Control,
		}
		if track.IsData() {
			tr.Type = "data"
			if end-start > iso9660.PVDBlock {
				tr.Volume, _ = iso9660.ReadVolume(im, start, ccd.RawSectorSize)
			}
		}
		if layout, ok := im.TrackLayout(n); ok {
			tr.Mode = layout.Mode
			tr.ISRC = layout.ISRC
			tr.Indexes = layout.Indexes
		}
		report.Tracks = append(report.Tracks, tr)
	}

	return report
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <image>",
		Short: "Print the table of contents of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			fast, _ := cmd.Flags().GetBool("fast")

			var opts []ccd.Option
			if fast {
				opts = append(opts, ccd.WithoutSubQCheck())
			}
			im, err := openImage(cmd, args[0], opts...)
			if err != nil {
				return err
			}
			defer func() { _ = im.Close() }()

			return writeReport(cmd.OutOrStdout(), format, buildReport(args[0], im))
		},
	}

	cmd.Flags().StringP("format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().Bool("fast", false, "skip the Q subchannel scan")
	return cmd
}

func writeReport(w io.Writer, format string, report imageReport) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return enc.Close() //nolint:wrapcheck // flush only
	case "text":
		writeText(w, report)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeText(w io.Writer, r imageReport) {
	_, _ = fmt.Fprintf(w, "Image: %s\n", r.Path)
	_, _ = fmt.Fprintf(w, "Sectors: %d\n", r.Sectors)
	_, _ = fmt.Fprintf(w, "Disc type: %#02x\n", r.DiscType)
	_, _ = fmt.Fprintf(w, "Tracks: %d-%d\n", r.FirstTrack, r.LastTrack)
	if r.Info.Catalog != "" {
		_, _ = fmt.Fprintf(w, "Catalog: %s\n", r.Info.Catalog)
	}
	_, _ = fmt.Fprintf(w, "Checked Q blocks: %d\n\n", r.CheckedSubQ)

	_, _ = fmt.Fprintln(w, "  #  Type   Start     LBA       Length")
	for _, t := range r.Tracks {
		_, _ = fmt.Fprintf(w, " %2d  %-5s  %s  %-8d  %d\n", t.Number, t.Type, t.Start, t.LBA, t.Length)
		if t.Volume != nil {
			_, _ = fmt.Fprintf(w, "     volume %q system %q\n", t.Volume.VolumeID, t.Volume.SystemID)
		}
	}
	_, _ = fmt.Fprintf(w, " LO         %s  %d\n", subchannel.MSFFromLBA(r.LeadoutLBA), r.LeadoutLBA)
}
