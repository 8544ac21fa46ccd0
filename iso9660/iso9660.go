// Package iso9660 reads the primary volume descriptor of an ISO9660 data track
// from raw 2352-byte sectors.
package iso9660

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrPVDNotFound     = errors.New("primary volume descriptor not found")
	ErrNoSync          = errors.New("sector has no sync pattern")
	ErrUnsupportedMode = errors.New("unsupported sector mode")
)

// Raw sector geometry.
const (
	RawSectorSize = 2352
	BlockSize     = 2048

	// PVDBlock is the block of the primary volume descriptor, relative to the
	// start of the track.
	PVDBlock = 16
)

// PVD magic word: 0x01 followed by "CD001"
var pvdMagicWord = []byte{0x01, 'C', 'D', '0', '0', '1'}

var syncPattern = []byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}

// SectorReader reads one raw sector. buf is at least RawSectorSize bytes plus
// whatever trailer the reader appends.
type SectorReader interface {
	ReadRawSector(buf []byte, lba int32) error
}

// Volume holds the identifiers of a primary volume descriptor.
type Volume struct {
	SystemID       string `json:"systemId,omitempty" yaml:"systemId,omitempty"`
	VolumeID       string `json:"volumeId,omitempty" yaml:"volumeId,omitempty"`
	PublisherID    string `json:"publisherId,omitempty" yaml:"publisherId,omitempty"`
	DataPreparerID string `json:"dataPreparerId,omitempty" yaml:"dataPreparerId,omitempty"`
	ApplicationID  string `json:"applicationId,omitempty" yaml:"applicationId,omitempty"`
	Created        string `json:"created,omitempty" yaml:"created,omitempty"`
	Blocks         uint32 `json:"blocks" yaml:"blocks"`
	SectorMode     uint8  `json:"sectorMode" yaml:"sectorMode"`
}

// ReadVolume reads the primary volume descriptor of the data track starting at
// trackStart. bufSize is the buffer size r needs for one read.
func ReadVolume(r SectorReader, trackStart int32, bufSize int) (*Volume, error) {
	buf := make([]byte, max(bufSize, RawSectorSize))
	if err := r.ReadRawSector(buf, trackStart+PVDBlock); err != nil {
		return nil, fmt.Errorf("read PVD sector: %w", err)
	}

	mode, data, err := UserData(buf[:RawSectorSize])
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, pvdMagicWord) {
		return nil, ErrPVDNotFound
	}

	return parsePVD(data, mode), nil
}

// UserData returns the mode and the 2048-byte user data of a raw mode 1 or
// mode 2 form 1 sector.
func UserData(sector []byte) (mode uint8, data []byte, err error) {
	if len(sector) < RawSectorSize || !bytes.Equal(sector[:len(syncPattern)], syncPattern) {
		return 0, nil, ErrNoSync
	}

	mode = sector[15]
	switch mode {
	case 1:
		return mode, sector[16 : 16+BlockSize], nil
	case 2:
		return mode, sector[24 : 24+BlockSize], nil
	default:
		return mode, nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, mode)
	}
}

func parsePVD(pvd []byte, mode uint8) *Volume {
	return &Volume{
		SystemID:       field(pvd, 8, 40),
		VolumeID:       field(pvd, 40, 72),
		Blocks:         binary.LittleEndian.Uint32(pvd[80:84]),
		PublisherID:    field(pvd, 318, 446),
		DataPreparerID: field(pvd, 446, 574),
		ApplicationID:  field(pvd, 574, 702),
		Created:        formatDate(field(pvd, 813, 829)),
		SectorMode:     mode,
	}
}

func field(pvd []byte, start, end int) string {
	return strings.Trim(string(pvd[start:end]), " \x00")
}

// formatDate formats a YYYYMMDDHHMMSSCC creation date as
// YYYY-MM-DD-HH-MM-SS-CC.
func formatDate(date string) string {
	if len(date) < 4 {
		return date
	}

	result := date[:4]
	for i := 4; i < len(date); i += 2 {
		end := min(i+2, len(date))
		result += "-" + date[i:end]
	}
	return result
}
