package body

// trailingEdgeRow picks the end row furthest downstream, the last on a tie
func (b *Body) trailingEdgeRow() int {
	ni := b.plate.NI
	if b.centroid[1].X > b.centroid[ni].X {
		return 1
	}
	return ni
}

// FindKuttaNodes collects the trailing edge shedding nodes and their wake seed
// positions. An open trailing edge sheds from every plate J station; a closed
// one sheds from its single pole node.
func (b *Body) FindKuttaNodes() error {
	if err := b.requireStage(Meshed, "FindKuttaNodes"); err != nil {
		return err
	}
	b.resetTo(Meshed)

	var (
		p   = b.plate
		row = b.trailingEdgeRow()
		js  []int
	)
	if b.collapsed[row] {
		js = []int{1}
	} else {
		for j := 1; j <= p.NJ; j++ {
			js = append(js, j)
		}
	}

	n := len(js)
	b.kuttaNode = make([]int, n+1)
	b.kuttaMeshNode = make([]int, n+1)
	b.wakeTrailingEdgeX = make([]float64, n+1)
	b.wakeTrailingEdgeY = make([]float64, n+1)
	b.wakeTrailingEdgeZ = make([]float64, n+1)
	for k, j := range js {
		k++
		idx := p.Index(row, j)
		b.kuttaNode[k] = idx
		b.kuttaMeshNode[k] = b.meshNode[b.geom.Index(row, j)]
		b.wakeTrailingEdgeX[k] = p.XAt(idx)
		b.wakeTrailingEdgeY[k] = p.YAt(idx)
		b.wakeTrailingEdgeZ[k] = p.ZAt(idx)
	}
	b.trailingRow = row
	b.numberOfKuttaNodes = n
	b.stage = WakeReady

	b.logf("Body %s: %d Kutta nodes on trailing edge row %d\n", b.componentName, n, row)
	return nil
}
