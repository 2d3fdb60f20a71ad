package ecoordio

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// CompressZstd frames data as a standalone zstd stream.
func CompressZstd(data []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer encoder.Close()
	return encoder.EncodeAll(data, nil), nil
}

// DecompressZstd reverses CompressZstd.
func DecompressZstd(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()
	return decoder.DecodeAll(data, nil)
}

// ReadAllMaybeCompressed decompresses r's contents if compression
// indicates zstd framing, otherwise returns them verbatim.
func ReadAllMaybeCompressed(r io.Reader, compression Compression) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if compression == CompressionZstd {
		return DecompressZstd(raw)
	}
	return raw, nil
}
