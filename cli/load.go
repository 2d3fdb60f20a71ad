package cli

import (
	"os"

	"github.com/tum-gis/ecoord/ecoordio"
	"github.com/tum-gis/ecoord/frame"
)

func loadTree(path string) (*frame.Tree, error) {
	parsed, err := ecoordio.ParseFileName(path)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	data := raw
	if parsed.Compression == ecoordio.CompressionZstd {
		data, err = ecoordio.DecompressZstd(raw)
		if err != nil {
			return nil, err
		}
	}

	switch parsed.Format {
	case ecoordio.FormatJSON:
		return ecoordio.DecodeTree(data)
	case ecoordio.FormatCSV:
		edges, err := ecoordio.DecodeSamples(data)
		if err != nil {
			return nil, err
		}
		return frame.NewTree(edges, nil)
	default:
		return nil, ecoordio.ErrNoFileExtension
	}
}

func writeTree(path string, tree *frame.Tree, pretty bool) error {
	data, err := ecoordio.EncodeTree(tree, pretty)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
