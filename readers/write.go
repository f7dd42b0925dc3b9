package readers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/notargets/VSPBody/grid"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WriteDegenCSV writes g as a BODY component named name in the format read by
// DegenReader
func WriteDegenCSV(w io.Writer, name string, g *grid.SectionGrid) error {
	if _, err := fmt.Fprintf(w, "# DegenGeom Type, Name, SurfNdx, MainSurfNdx, SymCopyNdx\n"); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{headerBody, name, "0", "0", "0"}); err != nil {
		return err
	}
	if err := cw.Write([]string{headerSurface, strconv.Itoa(g.NI), strconv.Itoa(g.NJ)}); err != nil {
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "# x,y,z,u,w\n"); err != nil {
		return err
	}
	rec := make([]string, 5)
	for i := 1; i <= g.NI; i++ {
		for j := 1; j <= g.NJ; j++ {
			rec[0] = formatFloat(g.X(i, j))
			rec[1] = formatFloat(g.Y(i, j))
			rec[2] = formatFloat(g.Z(i, j))
			rec[3] = formatFloat(g.U(i, j))
			rec[4] = formatFloat(g.V(i, j))
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
