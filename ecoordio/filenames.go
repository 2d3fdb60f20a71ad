package ecoordio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Format is the serialization format identified by a file's format
// extension token.
type Format int

const (
	FormatJSON Format = iota
	FormatCSV
)

// Compression is the compression codec identified by a file's trailing
// extension token, if present.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionZstd
)

var (
	ErrNoFileName           = errors.New("ecoordio: path has no file name")
	ErrNoFileExtension      = errors.New("ecoordio: file name has no extension")
	ErrMultipleFiles        = errors.New("ecoordio: basename matches more than one candidate file")
	errInvalidFileExtension = "ecoordio: unrecognized file extension %q"
)

// ErrInvalidFileExtension is returned when a token following the
// `.ecoord.` marker in a file name is not a recognized format or
// compression identifier.
type ErrInvalidFileExtension struct {
	Extension string
}

func (e *ErrInvalidFileExtension) Error() string {
	return fmt.Sprintf(errInvalidFileExtension, e.Extension)
}

// ParsedFileName is the result of decomposing an `<basename>.ecoord.<format>[.<compression>]`
// file name.
type ParsedFileName struct {
	Basename    string
	Format      Format
	Compression Compression
}

// ParseFileName decomposes name's extension tokens following the
// `.ecoord.` marker, detecting compression from the final token first
// and then the format from the token preceding it.
func ParseFileName(name string) (ParsedFileName, error) {
	base := filepath.Base(name)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return ParsedFileName{}, ErrNoFileName
	}

	const marker = ".ecoord."
	idx := strings.Index(base, marker)
	if idx < 0 {
		return ParsedFileName{}, ErrNoFileExtension
	}

	basename := base[:idx]
	tokens := strings.Split(base[idx+len(marker):], ".")
	if len(tokens) == 0 || tokens[0] == "" {
		return ParsedFileName{}, ErrNoFileExtension
	}

	compression := CompressionNone
	formatToken := tokens[0]
	if len(tokens) >= 2 {
		last := tokens[len(tokens)-1]
		if last == "zst" {
			compression = CompressionZstd
			formatToken = strings.Join(tokens[:len(tokens)-1], ".")
		} else {
			formatToken = strings.Join(tokens, ".")
		}
	}

	var format Format
	switch formatToken {
	case "json":
		format = FormatJSON
	case "csv":
		format = FormatCSV
	default:
		return ParsedFileName{}, &ErrInvalidFileExtension{Extension: formatToken}
	}

	return ParsedFileName{Basename: basename, Format: format, Compression: compression}, nil
}

// BuildFileName composes the compound extension for basename given
// format and compression.
func BuildFileName(basename string, format Format, compression Compression) string {
	formatToken := "json"
	if format == FormatCSV {
		formatToken = "csv"
	}

	name := basename + ".ecoord." + formatToken
	if compression == CompressionZstd {
		name += ".zst"
	}
	return name
}

// FindByBasename searches dir for exactly one file whose name matches
// basename across every permitted format/compression combination,
// returning ErrMultipleFiles if more than one candidate matches.
func FindByBasename(dir, basename string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parsed, err := ParseFileName(entry.Name())
		if err != nil {
			continue
		}
		if parsed.Basename == basename {
			matches = append(matches, filepath.Join(dir, entry.Name()))
		}
	}

	switch len(matches) {
	case 0:
		return "", ErrNoFileName
	case 1:
		return matches[0], nil
	default:
		return "", ErrMultipleFiles
	}
}
