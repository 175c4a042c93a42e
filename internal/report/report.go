// Package report renders resolved surfaces.
package report

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/coulomb/internal/field"
)

var separator = strings.Repeat("-", 37)

// Reporter writes every electron of a result in generation order.
type Reporter interface {
	Report(w io.Writer, res *field.Result) error
}

func New(format string) (Reporter, error) {
	switch format {
	case "", "text":
		return Text{}, nil
	case "json":
		return JSON{}, nil
	case "csv":
		return CSV{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", field.ErrInvalidConfiguration, format)
	}
}

// Text is the reference layout: a separator line before each electron and
// one after the last.
type Text struct{}

func (Text) Report(w io.Writer, res *field.Result) error {
	bw := bufio.NewWriter(w)
	for _, p := range res.Surface {
		fmt.Fprintln(bw, separator)
		fmt.Fprintf(bw, "Electron at (%.4f, %.4f):\n    Net Force: %.10G Newtons\n    Angle: %.3f°\n",
			p.X, p.Y, p.Fnet, p.Angle)
	}
	fmt.Fprintln(bw, separator)
	return bw.Flush()
}

type ParticleRecord struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Fx    float64 `json:"fx"`
	Fy    float64 `json:"fy"`
	Fnet  float64 `json:"fnet"`
	Angle float64 `json:"angle"`
}

type ExportData struct {
	Electrons int                `json:"electrons"`
	Pairs     int64              `json:"pairs"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
	Particles []ParticleRecord   `json:"particles"`
}

func Records(s field.Surface) []ParticleRecord {
	out := make([]ParticleRecord, len(s))
	for i, p := range s {
		out[i] = ParticleRecord{Index: i, X: p.X, Y: p.Y, Fx: p.Fx, Fy: p.Fy, Fnet: p.Fnet, Angle: p.Angle}
	}
	return out
}

type JSON struct{}

func (JSON) Report(w io.Writer, res *field.Result) error {
	data := ExportData{
		Electrons: len(res.Surface),
		Pairs:     res.Pairs,
		Metrics:   res.Metrics,
		Particles: Records(res.Surface),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

var CSVHeader = []string{"index", "x", "y", "fx", "fy", "fnet", "angle"}

type CSV struct{}

func (CSV) Report(w io.Writer, res *field.Result) error {
	return WriteCSV(w, Records(res.Surface))
}

func WriteCSV(w io.Writer, records []ParticleRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Index),
			strconv.FormatFloat(r.X, 'g', -1, 64),
			strconv.FormatFloat(r.Y, 'g', -1, 64),
			strconv.FormatFloat(r.Fx, 'g', -1, 64),
			strconv.FormatFloat(r.Fy, 'g', -1, 64),
			strconv.FormatFloat(r.Fnet, 'g', -1, 64),
			strconv.FormatFloat(r.Angle, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses what WriteCSV produces.
func ReadCSV(r io.Reader) ([]ParticleRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CSVHeader)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []ParticleRecord{}, nil
	}

	out := make([]ParticleRecord, 0, len(rows)-1)
	for line, row := range rows[1:] {
		idx, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line+1, err)
		}
		vals := make([]float64, 6)
		for k := range vals {
			if vals[k], err = strconv.ParseFloat(row[k+1], 64); err != nil {
				return nil, fmt.Errorf("row %d: %w", line+1, err)
			}
		}
		out = append(out, ParticleRecord{
			Index: idx, X: vals[0], Y: vals[1], Fx: vals[2], Fy: vals[3], Fnet: vals[4], Angle: vals[5],
		})
	}
	return out, nil
}
