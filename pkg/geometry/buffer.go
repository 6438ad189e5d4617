package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

const capSegments = 12

// BufferLine returns the corridor of the given width around the segment a-b as a
// polygon with rounded ends. Coordinates are treated as planar degrees.
func BufferLine(a orb.Point, b orb.Point, size float64) orb.Polygon {
	heading := math.Atan2(b.Lat()-a.Lat(), b.Lon()-a.Lon())

	ring := make(orb.Ring, 0, 2*(capSegments+1)+1)
	ring = append(ring, arc(b, size, heading-math.Pi/2)...)
	ring = append(ring, arc(a, size, heading+math.Pi/2)...)
	ring = append(ring, ring[0])

	return orb.Polygon{ring}
}

// arc walks half a circle counter clockwise starting at the given angle
func arc(center orb.Point, radius float64, start float64) []orb.Point {
	points := make([]orb.Point, 0, capSegments+1)
	for i := 0; i <= capSegments; i++ {
		angle := start + math.Pi*float64(i)/capSegments
		points = append(points, orb.Point{
			center.Lon() + radius*math.Cos(angle),
			center.Lat() + radius*math.Sin(angle),
		})
	}
	return points
}
