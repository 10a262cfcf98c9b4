package panel

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/monument"
)

// Side is the monument side a record belongs to.
type Side int

// SideOne is the only side laid out by the demo.
const SideOne Side = 1

// MaxIndex is the largest 1-based row or number a record may carry.
const MaxIndex = 1 << 16

// Panel is one of the two physical name-listing surfaces.
type Panel int

const (
	// Upper is the upper panel. Its lines come first in the grid.
	Upper Panel = iota
	// Lower is the lower panel.
	Lower
)

// String returns the dataset spelling of the panel.
func (p Panel) String() string {
	switch p {
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	default:
		return "unknown"
	}
}

// ParsePanel maps the dataset spelling onto the closed panel set.
func ParsePanel(s string) (Panel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "upper":
		return Upper, nil
	case "lower":
		return Lower, nil
	default:
		return 0, fmt.Errorf("panel: unknown panel %q", s)
	}
}

// Record is a coerced dataset entry. Row and Number are 0-based.
type Record struct {
	Side   Side
	Panel  Panel
	Row    int
	Number int
	Name   string
}

// Slot is one position of a line. Valid is false for a hole.
type Slot struct {
	Name  string
	Valid bool
}

// Line is one row of one panel.
type Line struct {
	Panel Panel
	Row   int
	slots []Slot
}

// Slots returns the positions of the line, holes included.
func (l Line) Slots() []Slot {
	return l.slots
}

// Names returns the names of the line in position order, skipping holes.
func (l Line) Names() []string {
	names := make([]string, 0, len(l.slots))
	for _, s := range l.slots {
		if s.Valid {
			names = append(names, s.Name)
		}
	}
	return names
}

// Grid is the ordered sequence of lines: upper rows, then lower rows.
// A Grid is immutable once built.
type Grid struct {
	lines []Line
}

// Len returns the number of lines.
func (g *Grid) Len() int {
	return len(g.lines)
}

// Line returns line i.
func (g *Grid) Line(i int) Line {
	return g.lines[i]
}

// Lines returns all lines in order.
func (g *Grid) Lines() []Line {
	return g.lines
}

// rows is the sparse row -> number -> name table of one panel.
type rows map[int]map[int]string

func (r rows) set(row, number int, name string) {
	line, ok := r[row]
	if !ok {
		line = make(map[int]string)
		r[row] = line
	}
	line[number] = name
}

// lines returns the populated rows of the panel in row order. A row whose
// names are all empty is dropped.
func (r rows) lines(p Panel) []Line {
	var out []Line
	for _, row := range slices.Sorted(maps.Keys(r)) {
		names := r[row]
		slots := make([]Slot, slices.Max(slices.Collect(maps.Keys(names)))+1)
		valid := false
		for number, name := range names {
			if name != "" {
				slots[number] = Slot{Name: name, Valid: true}
				valid = true
			}
		}
		if valid {
			out = append(out, Line{Panel: p, Row: row, slots: slots})
		}
	}
	return out
}

// builder holds the two panels as separately owned tables.
type builder struct {
	upper rows
	lower rows
}

func (b *builder) panel(p Panel) rows {
	if p == Lower {
		if b.lower == nil {
			b.lower = make(rows)
		}
		return b.lower
	}
	if b.upper == nil {
		b.upper = make(rows)
	}
	return b.upper
}

func (b *builder) grid() *Grid {
	return &Grid{lines: append(b.upper.lines(Upper), b.lower.lines(Lower)...)}
}

// Parse coerces the dataset records and builds the grid.
// Records whose side is not 1 are discarded. When two records name the same
// cell the later one wins.
func Parse(ds Dataset) (*Grid, error) {
	var b builder
	skipped := 0

	for i, raw := range ds.Records {
		rec, ok, err := coerce(raw)
		if err != nil {
			return nil, monument.NewError(monument.ErrDatasetParse, fmt.Sprintf("record %d", i), err)
		}
		if !ok {
			skipped++
			continue
		}
		b.panel(rec.Panel).set(rec.Row, rec.Number, rec.Name)
	}

	g := b.grid()
	monument.Logger().Debug("panel: parsed dataset",
		"records", len(ds.Records), "skipped", skipped, "lines", g.Len())
	return g, nil
}

// coerce converts a raw record. It reports ok=false for records of other
// sides, which are not validated further.
func coerce(raw RawRecord) (Record, bool, error) {
	side, err := parseIndex(string(raw.Side))
	if err != nil || Side(side) != SideOne {
		return Record{}, false, nil
	}

	p, err := ParsePanel(string(raw.Panel))
	if err != nil {
		return Record{}, false, err
	}
	row, err := parseIndex(string(raw.Row))
	if err != nil {
		return Record{}, false, fmt.Errorf("row: %w", err)
	}
	number, err := parseIndex(string(raw.Number))
	if err != nil {
		return Record{}, false, fmt.Errorf("number: %w", err)
	}

	return Record{
		Side:   SideOne,
		Panel:  p,
		Row:    row - 1,
		Number: number - 1,
		Name:   norm.NFC.String(strings.TrimSpace(string(raw.Name))),
	}, true, nil
}

// parseIndex parses a 1-based integer in [1, MaxIndex]. Integral floats
// such as "3.0" are accepted since the dataset is exported from a spreadsheet.
func parseIndex(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || f < 1 || f > MaxIndex {
			return 0, fmt.Errorf("panel: %q is not an integer", s)
		}
		n = int(f)
	}
	if n < 1 {
		return 0, fmt.Errorf("panel: %d is not a positive index", n)
	}
	if n > MaxIndex {
		return 0, fmt.Errorf("panel: index %d exceeds %d", n, MaxIndex)
	}
	return n, nil
}
