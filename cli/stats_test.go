package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestStatsActionPrintsEdgeWindows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.ecoord.json")
	doc := `{"edges":[{"type":"static","parent_frame_id":"map","child_frame_id":"base_link","transform":{"translation":{"x":0,"y":0,"z":0},"rotation":{"x":0,"y":0,"z":0,"w":1}}}],"frames":[]}`
	test.That(t, os.WriteFile(path, []byte(doc), 0o644), test.ShouldBeNil)

	app := NewApp("test")
	var out bytes.Buffer
	app.Writer = &out

	err := app.Run([]string{"ecoord", "stats", "--ecoord-file-path", path})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, "map->base_link: static")
}

func TestStatsActionPrintsDynamicEdgeInterpolationAndExtrapolation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.ecoord.json")
	doc := `{"edges":[{"type":"dynamic","parent_frame_id":"map","child_frame_id":"vehicle","interpolation":"linear","extrapolation":"constant","samples":[` +
		`{"timestamp":{"sec":0,"nanosec":0},"transform":{"translation":{"x":0,"y":0,"z":0},"rotation":{"x":0,"y":0,"z":0,"w":1}}},` +
		`{"timestamp":{"sec":1,"nanosec":0},"transform":{"translation":{"x":1,"y":0,"z":0},"rotation":{"x":0,"y":0,"z":0,"w":1}}}` +
		`]}],"frames":[]}`
	test.That(t, os.WriteFile(path, []byte(doc), 0o644), test.ShouldBeNil)

	app := NewApp("test")
	var out bytes.Buffer
	app.Writer = &out

	err := app.Run([]string{"ecoord", "stats", "--ecoord-file-path", path})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, "interpolation=linear")
	test.That(t, out.String(), test.ShouldContainSubstring, "extrapolation=constant")
	test.That(t, out.String(), test.ShouldContainSubstring, "2 samples")
}
