package field

// DefaultThreshold is the distance below which two points are linked.
const DefaultThreshold = 15

// DefaultRecomputeEvery is how many ticks pass between graph rebuilds.
const DefaultRecomputeEvery = 5

// Pair links points I and J, I < J.
type Pair struct {
	I, J int
}

// ConnectionGraph is a snapshot of the links between nearby points. Segments
// holds the endpoints of every pair as x1,y1,z1,x2,y2,z2, in Pairs order.
type ConnectionGraph struct {
	Pairs    []Pair
	Segments []float32
}

// Len returns the number of links.
func (g *ConnectionGraph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Pairs)
}

// Connect links every pair of points closer than threshold. positions is a
// flat xyz buffer. The scan compares all N(N-1)/2 pairs, which is fine for
// a few hundred points.
// TODO: bucket points into a uniform grid of threshold-sized cells if point
// counts grow past a thousand.
func Connect(positions []float32, threshold float32) *ConnectionGraph {
	n := len(positions) / 3
	limit := float64(threshold) * float64(threshold)
	graph := &ConnectionGraph{}

	for i := 0; i < n; i++ {
		xi, yi, zi := positions[i*3], positions[i*3+1], positions[i*3+2]
		for j := i + 1; j < n; j++ {
			xj, yj, zj := positions[j*3], positions[j*3+1], positions[j*3+2]
			dx := float64(xi) - float64(xj)
			dy := float64(yi) - float64(yj)
			dz := float64(zi) - float64(zj)
			if dx*dx+dy*dy+dz*dz >= limit {
				continue
			}
			graph.Pairs = append(graph.Pairs, Pair{I: i, J: j})
			graph.Segments = append(graph.Segments, xi, yi, zi, xj, yj, zj)
		}
	}

	return graph
}

// Throttle decides which ticks rebuild the graph.
type Throttle struct {
	Every int
}

// Due reports whether 1-based tick frame should recompute. Over T ticks it
// is due floor(T/Every) times. Every <= 1 means every tick.
func (t Throttle) Due(frame uint64) bool {
	if t.Every <= 1 {
		return true
	}
	return frame%uint64(t.Every) == 0
}
