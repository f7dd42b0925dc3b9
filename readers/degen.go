// Package readers parses geometry exports into section grids.
package readers

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/notargets/VSPBody/grid"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrComponentNotFound = errors.New("component not found")
	ErrMissingSurface    = errors.New("component has no SURFACE_NODE block")
	ErrTruncated         = errors.New("surface data truncated")
	ErrFormat            = errors.New("malformed DegenGeom record")
)

const (
	headerBody    = "BODY"
	headerSurface = "SURFACE_NODE"

	// Largest surface a SURFACE_NODE header may declare
	maxSurfaceNodes = 1 << 24
)

// Records that open a new component in a DegenGeom file
var componentHeaders = map[string]bool{
	"BODY":            true,
	"LIFTING_SURFACE": true,
	"DISK":            true,
	"MESH":            true,
}

// DegenReader reads the DegenGeom CSV export:
//
//	BODY,<name>,...
//	SURFACE_NODE,<NumI>,<NumJ>
//	x,y,z,u,w      NumI*NumJ rows, I outer, J inner
//
// Lines starting with # are comments. Only BODY components are considered.
type DegenReader struct{}

// ReadGeometry returns the caseNumber-th (1-based) BODY component whose name is
// name. An empty name matches every BODY.
func (DegenReader) ReadGeometry(name string, caseNumber int, r io.Reader) (string, *grid.SectionGrid, error) {
	if caseNumber < 1 {
		return "", nil, fmt.Errorf("case number must be at least 1, got %d", caseNumber)
	}
	cr := newCSVReader(r)

	var (
		matches   int
		component string
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			if matches == 0 {
				return "", nil, fmt.Errorf("%w: no BODY named %q", ErrComponentNotFound, name)
			}
			return "", nil, fmt.Errorf("%w: %d BODY components named %q, wanted case %d",
				ErrComponentNotFound, matches, name, caseNumber)
		}
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		if keyword(rec) != headerBody || len(rec) < 2 {
			continue
		}
		component = strings.TrimSpace(rec[1])
		if name != "" && component != name {
			continue
		}
		if matches++; matches == caseNumber {
			break
		}
	}

	ni, nj, err := findSurface(cr)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", component, err)
	}
	g, err := readSurface(cr, ni, nj)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", component, err)
	}
	return component, g, nil
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return cr
}

func keyword(rec []string) string {
	if len(rec) == 0 {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(rec[0]))
}

// findSurface skips to the SURFACE_NODE record of the current component
func findSurface(cr *csv.Reader) (ni, nj int, err error) {
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return 0, 0, ErrMissingSurface
		}
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		kw := keyword(rec)
		if componentHeaders[kw] {
			return 0, 0, ErrMissingSurface
		}
		if kw != headerSurface {
			continue
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 3 {
			return 0, 0, fmt.Errorf("%w: line %d: SURFACE_NODE needs NumI and NumJ", ErrFormat, line)
		}
		if ni, err = strconv.Atoi(strings.TrimSpace(rec[1])); err != nil {
			return 0, 0, fmt.Errorf("%w: line %d: %w", ErrFormat, line, err)
		}
		if nj, err = strconv.Atoi(strings.TrimSpace(rec[2])); err != nil {
			return 0, 0, fmt.Errorf("%w: line %d: %w", ErrFormat, line, err)
		}
		if ni <= 0 || nj <= 0 {
			return 0, 0, fmt.Errorf("%w: line %d: invalid surface size %d x %d", ErrFormat, line, ni, nj)
		}
		if ni > maxSurfaceNodes/nj {
			return 0, 0, fmt.Errorf("%w: line %d: surface size %d x %d exceeds %d nodes",
				ErrFormat, line, ni, nj, maxSurfaceNodes)
		}
		return ni, nj, nil
	}
}

func readSurface(cr *csv.Reader, ni, nj int) (*grid.SectionGrid, error) {
	g := grid.NewSectionGrid(ni, nj)
	var vals [5]float64
	for i := 1; i <= ni; i++ {
		for j := 1; j <= nj; j++ {
			rec, err := cr.Read()
			if err == io.EOF {
				return nil, fmt.Errorf("%w: expected %d nodes, got %d", ErrTruncated, ni*nj, g.Index(i, j)-1)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrFormat, err)
			}
			line, _ := cr.FieldPos(0)
			if kw := keyword(rec); componentHeaders[kw] || kw == headerSurface {
				return nil, fmt.Errorf("%w: line %d: %s record inside surface data", ErrTruncated, line, kw)
			}
			if len(rec) < 3 {
				return nil, fmt.Errorf("%w: line %d: need x,y,z, got %d fields", ErrFormat, line, len(rec))
			}
			vals = [5]float64{}
			for f := 0; f < len(rec) && f < 5; f++ {
				if vals[f], err = strconv.ParseFloat(strings.TrimSpace(rec[f]), 64); err != nil {
					return nil, fmt.Errorf("%w: line %d field %d: %w", ErrFormat, line, f+1, err)
				}
			}
			g.SetPoint(i, j, r3.Vec{X: vals[0], Y: vals[1], Z: vals[2]})
			g.SetUV(i, j, vals[3], vals[4])
		}
	}
	return g, nil
}
