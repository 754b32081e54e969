package recordio

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownFormat is returned for an unrecognized format name.
	ErrUnknownFormat = errors.New("unknown record format")
	// ErrUnknownCompression is returned for an unrecognized compression name.
	ErrUnknownCompression = errors.New("unknown compression")
	// ErrMalformed is returned when input does not match its format.
	ErrMalformed = errors.New("malformed record")
	// ErrNoMeasurements is returned for b8 records without measurements,
	// which would encode every sample as zero bytes.
	ErrNoMeasurements = errors.New("b8 format needs at least one measurement")
)

// Format selects the per-sample encoding.
type Format uint8

const (
	Format01 Format = iota
	FormatB8
	FormatHits
)

var formatNames = [...]string{
	Format01:   "01",
	FormatB8:   "b8",
	FormatHits: "hits",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", f)
}

// ParseFormat resolves a format name.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if strings.EqualFold(name, n) {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Compression selects the stream compression.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

var compressionNames = [...]string{
	CompressionNone: "none",
	CompressionZstd: "zstd",
	CompressionLZ4:  "lz4",
}

func (c Compression) String() string {
	if int(c) < len(compressionNames) {
		return compressionNames[c]
	}
	return fmt.Sprintf("Compression(%d)", c)
}

// ParseCompression resolves a compression name. The empty string means none.
func ParseCompression(name string) (Compression, error) {
	if name == "" {
		return CompressionNone, nil
	}
	for c, n := range compressionNames {
		if strings.EqualFold(name, n) {
			return Compression(c), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
}
