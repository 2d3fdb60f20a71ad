package ecoordio

import (
	"bytes"
	"testing"

	"go.viam.com/test"
)

func TestCompressDecompressZstdRoundTrips(t *testing.T) {
	original := []byte(`{"edges":[],"frames":[]}`)

	compressed, err := CompressZstd(original)
	test.That(t, err, test.ShouldBeNil)

	decompressed, err := DecompressZstd(compressed)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bytes.Equal(decompressed, original), test.ShouldBeTrue)
}

func TestReadAllMaybeCompressedPassesThroughUncompressed(t *testing.T) {
	original := []byte("plain")
	out, err := ReadAllMaybeCompressed(bytes.NewReader(original), CompressionNone)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bytes.Equal(out, original), test.ShouldBeTrue)
}
