package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Relative tolerance when comparing path weights summed in a different order
const pathEpsilon = 1e-9

// Graph is an undirected infrastructure graph whose nodes are line vertices.
// Node IDs follow the lexicographic (lon, lat) order of their coordinates so
// comparing IDs is the same as comparing coordinates.
type Graph struct {
	graph *simple.WeightedUndirectedGraph

	points []orb.Point
	ids    map[orb.Point]int64
	edges  int
}

func BuildGraph(lines []orb.LineString) *Graph {
	seen := map[orb.Point]bool{}
	var points []orb.Point
	for _, line := range lines {
		for _, point := range line {
			if !seen[point] {
				seen[point] = true
				points = append(points, point)
			}
		}
	}

	slices.SortFunc(points, comparePoints)

	g := &Graph{
		graph:  simple.NewWeightedUndirectedGraph(0, 0),
		points: points,
		ids:    make(map[orb.Point]int64, len(points)),
	}

	for id, point := range points {
		g.ids[point] = int64(id)
		g.graph.AddNode(simple.Node(id))
	}

	for _, line := range lines {
		for i := 0; i+1 < len(line); i++ {
			from := g.ids[line[i]]
			to := g.ids[line[i+1]]

			// zero length edge, gonum does not allow self loops either
			if from == to {
				continue
			}

			weight := planar.Distance(line[i], line[i+1])

			if existing := g.graph.WeightedEdge(from, to); existing != nil {
				if existing.Weight() <= weight {
					continue
				}
			} else {
				g.edges++
			}

			g.graph.SetWeightedEdge(g.graph.NewWeightedEdge(simple.Node(from), simple.Node(to), weight))
		}
	}

	return g
}

func (g *Graph) Len() int {
	return g.graph.Nodes().Len()
}

func (g *Graph) EdgeCount() int {
	return g.edges
}

func (g *Graph) Components() int {
	return len(topo.ConnectedComponents(g.graph))
}

// LargestComponent returns the subgraph of the biggest connected component.
// Between equally sized components the one holding the smallest coordinate wins.
func (g *Graph) LargestComponent() *Graph {
	components := topo.ConnectedComponents(g.graph)

	var best []int64
	var bestMin int64
	for _, component := range components {
		ids := make([]int64, 0, len(component))
		for _, node := range component {
			ids = append(ids, node.ID())
		}
		slices.Sort(ids)

		if best == nil || len(ids) > len(best) || (len(ids) == len(best) && ids[0] < bestMin) {
			best = ids
			bestMin = ids[0]
		}
	}

	reduced := &Graph{
		graph:  simple.NewWeightedUndirectedGraph(0, 0),
		points: g.points,
		ids:    map[orb.Point]int64{},
	}

	for _, id := range best {
		reduced.graph.AddNode(simple.Node(id))
		reduced.ids[g.points[id]] = id
	}

	for _, id := range best {
		neighbours := g.graph.From(id)
		for neighbours.Next() {
			other := neighbours.Node().ID()
			if other < id {
				continue
			}

			edge := g.graph.WeightedEdge(id, other)
			reduced.graph.SetWeightedEdge(reduced.graph.NewWeightedEdge(simple.Node(id), simple.Node(other), edge.Weight()))
			reduced.edges++
		}
	}

	return reduced
}

// Nearest snaps the point onto the closest graph node. Equal distances resolve
// to the lexicographically smallest coordinate.
func (g *Graph) Nearest(point orb.Point) (orb.Point, bool) {
	var bestID int64 = -1
	var bestDistance float64

	nodes := g.graph.Nodes()
	for nodes.Next() {
		id := nodes.Node().ID()
		distance := planar.DistanceSquared(point, g.points[id])

		if bestID == -1 || distance < bestDistance || (distance == bestDistance && id < bestID) {
			bestID = id
			bestDistance = distance
		}
	}

	if bestID == -1 {
		return orb.Point{}, false
	}

	return g.points[bestID], true
}

// ShortestPath returns the minimum weight path between two graph nodes.
// Among equally weighted paths the lexicographically smallest node sequence is used.
// The sequence is found by walking from the start along edges that stay on some
// shortest path, always taking the smallest neighbour ID.
func (g *Graph) ShortestPath(from orb.Point, to orb.Point) (orb.LineString, float64, error) {
	fromID, ok := g.ids[from]
	if !ok {
		return nil, 0, ErrNoPath
	}
	toID, ok := g.ids[to]
	if !ok {
		return nil, 0, ErrNoPath
	}

	if fromID == toID {
		return orb.LineString{from}, 0, nil
	}

	fromStart := path.DijkstraFrom(g.graph.Node(fromID), g.graph)
	total := fromStart.WeightTo(toID)
	if math.IsInf(total, 1) {
		return nil, 0, ErrNoPath
	}
	toEnd := path.DijkstraFrom(g.graph.Node(toID), g.graph)

	epsilon := pathEpsilon * math.Max(total, 1)

	ids := []int64{fromID}
	current := fromID
	for current != toID {
		// every tight edge strictly reduces the remaining distance, more steps than nodes is a bug
		if len(ids) > g.Len() {
			return nil, 0, ErrNoPath
		}

		var next int64 = -1
		neighbours := g.graph.From(current)
		for neighbours.Next() {
			candidate := neighbours.Node().ID()
			if next != -1 && candidate >= next {
				continue
			}

			weight := g.graph.WeightedEdge(current, candidate).Weight()
			if math.Abs(fromStart.WeightTo(current)+weight+toEnd.WeightTo(candidate)-total) <= epsilon {
				next = candidate
			}
		}

		if next == -1 {
			return nil, 0, ErrNoPath
		}

		ids = append(ids, next)
		current = next
	}

	line := make(orb.LineString, 0, len(ids))
	for _, id := range ids {
		line = append(line, g.points[id])
	}

	return line, total, nil
}

func comparePoints(a orb.Point, b orb.Point) int {
	switch {
	case a[0] < b[0]:
		return -1
	case a[0] > b[0]:
		return 1
	case a[1] < b[1]:
		return -1
	case a[1] > b[1]:
		return 1
	default:
		return 0
	}
}
