package ecoordio

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/tum-gis/ecoord/frame"
)

var (
	// ErrTimestampDefinedTwice is returned when a CSV row supplies both
	// the single `timestamp` column and the `timestamp_sec`/`timestamp_nanosec` pair.
	ErrTimestampDefinedTwice = errors.New("ecoordio: row defines both timestamp and timestamp_sec/timestamp_nanosec")
	// ErrNoTimestamp is returned when a (parent,child) group has more
	// than one row but some row in the group lacks a timestamp.
	ErrNoTimestamp = errors.New("ecoordio: multi-row group has a row without a timestamp")
)

var csvHeader = []string{
	"parent_frame_id", "child_frame_id",
	"timestamp", "timestamp_sec", "timestamp_nanosec",
	"translation_x", "translation_y", "translation_z",
	"rotation_x", "rotation_y", "rotation_z", "rotation_w",
}

type csvRow struct {
	parent, child frame.FrameId
	hasTimestamp  bool
	timestamp     time.Time
	transform     frame.Transform
}

func newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = len(csvHeader)
	return reader
}

func newCSVWriter(w io.Writer) *csv.Writer {
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	return writer
}

func formatOptionalFloat(v float64, set bool) string {
	if !set {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// EncodeSamples writes every edge as one or more CSV rows: a single
// untimed row (empty timestamp columns) for Static edges, one row per
// sample for Dynamic edges.
func EncodeSamples(edges []frame.Edge) ([]byte, error) {
	var buf bytes.Buffer
	writer := newCSVWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, e := range edges {
		switch edge := e.(type) {
		case *frame.StaticEdge:
			row := []string{
				string(edge.Parent), string(edge.Child),
				"", "", "",
				formatOptionalFloat(edge.Transform.Translation.X, true),
				formatOptionalFloat(edge.Transform.Translation.Y, true),
				formatOptionalFloat(edge.Transform.Translation.Z, true),
				formatOptionalFloat(edge.Transform.Rotation.X(), true),
				formatOptionalFloat(edge.Transform.Rotation.Y(), true),
				formatOptionalFloat(edge.Transform.Rotation.Z(), true),
				formatOptionalFloat(edge.Transform.Rotation.W(), true),
			}
			if err := writer.Write(row); err != nil {
				return nil, err
			}
		case *frame.DynamicEdge:
			for _, s := range edge.Samples {
				row := []string{
					string(edge.Parent), string(edge.Child),
					"",
					strconv.FormatInt(s.Timestamp.Unix(), 10),
					strconv.FormatInt(int64(s.Timestamp.Nanosecond()), 10),
					formatOptionalFloat(s.Transform.Translation.X, true),
					formatOptionalFloat(s.Transform.Translation.Y, true),
					formatOptionalFloat(s.Transform.Translation.Z, true),
					formatOptionalFloat(s.Transform.Rotation.X(), true),
					formatOptionalFloat(s.Transform.Rotation.Y(), true),
					formatOptionalFloat(s.Transform.Rotation.Z(), true),
					formatOptionalFloat(s.Transform.Rotation.W(), true),
				}
				if err := writer.Write(row); err != nil {
					return nil, err
				}
			}
		default:
			return nil, errUnknownEdgeType
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSamples reads the `;`-delimited tabular dialect and groups rows
// sharing a (parent,child) pair into a single edge: a Static edge for a
// lone untimed row, otherwise a Dynamic edge with the default Step
// interpolation and Constant extrapolation (the same methods a JSON
// dynamic edge without those fields decodes to).
func DecodeSamples(data []byte) ([]frame.Edge, error) {
	reader := newCSVReader(bytes.NewReader(data))

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	type groupKey struct{ parent, child frame.FrameId }
	order := make([]groupKey, 0)
	groups := make(map[groupKey][]csvRow)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row, err := parseCSVRow(record, columns)
		if err != nil {
			return nil, err
		}

		key := groupKey{parent: row.parent, child: row.child}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	edges := make([]frame.Edge, 0, len(order))
	for _, key := range order {
		rows := groups[key]
		if len(rows) == 1 && !rows[0].hasTimestamp {
			edge, err := frame.NewStaticEdge(key.parent, key.child, rows[0].transform)
			if err != nil {
				return nil, err
			}
			edges = append(edges, edge)
			continue
		}

		samples := make([]frame.TimedTransform, len(rows))
		for i, r := range rows {
			if !r.hasTimestamp {
				return nil, ErrNoTimestamp
			}
			samples[i] = frame.TimedTransform{Timestamp: r.timestamp, Transform: r.transform}
		}
		edge, err := frame.NewDynamicEdge(key.parent, key.child, frame.InterpolationStep, frame.ExtrapolationConstant, samples)
		if err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}

	return edges, nil
}

func parseCSVRow(record []string, columns map[string]int) (csvRow, error) {
	get := func(name string) string { return record[columns[name]] }

	parent := frame.FrameId(get("parent_frame_id"))
	child := frame.FrameId(get("child_frame_id"))

	timestampCombined := get("timestamp")
	timestampSec := get("timestamp_sec")
	timestampNanosec := get("timestamp_nanosec")

	hasCombined := timestampCombined != ""
	hasSplit := timestampSec != "" || timestampNanosec != ""
	if hasCombined && hasSplit {
		return csvRow{}, ErrTimestampDefinedTwice
	}

	var hasTimestamp bool
	var timestamp time.Time
	switch {
	case hasCombined:
		seconds, err := strconv.ParseFloat(timestampCombined, 64)
		if err != nil {
			return csvRow{}, err
		}
		whole := int64(seconds)
		frac := seconds - float64(whole)
		timestamp = time.Unix(whole, int64(frac*1e9)).UTC()
		hasTimestamp = true
	case hasSplit:
		sec, err := strconv.ParseInt(timestampSec, 10, 64)
		if err != nil {
			return csvRow{}, err
		}
		nanosec, err := strconv.ParseInt(timestampNanosec, 10, 64)
		if err != nil {
			return csvRow{}, err
		}
		timestamp = time.Unix(sec, nanosec).UTC()
		hasTimestamp = true
	}

	parseFloat := func(name string) (float64, error) { return strconv.ParseFloat(get(name), 64) }

	tx, err := parseFloat("translation_x")
	if err != nil {
		return csvRow{}, err
	}
	ty, err := parseFloat("translation_y")
	if err != nil {
		return csvRow{}, err
	}
	tz, err := parseFloat("translation_z")
	if err != nil {
		return csvRow{}, err
	}
	rx, err := parseFloat("rotation_x")
	if err != nil {
		return csvRow{}, err
	}
	ry, err := parseFloat("rotation_y")
	if err != nil {
		return csvRow{}, err
	}
	rz, err := parseFloat("rotation_z")
	if err != nil {
		return csvRow{}, err
	}
	rw, err := parseFloat("rotation_w")
	if err != nil {
		return csvRow{}, err
	}

	transform := frame.NewTransform(
		vectorFromSerde(vectorSerde{X: tx, Y: ty, Z: tz}),
		frame.NewUnitQuaternion(rx, ry, rz, rw),
	)

	return csvRow{parent: parent, child: child, hasTimestamp: hasTimestamp, timestamp: timestamp, transform: transform}, nil
}
