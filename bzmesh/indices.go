package bzmesh

import (
	"fmt"
	"math"
)

// fold wraps a fractional coordinate into the half-open interval [0,1).
// fold(-0.25) == 0.75, fold(1.0) == 0.
func fold(x float64) float64 {
	return x - math.Floor(x)
}

// wrapIndex maps any integer onto the periodic index range [0,n).
func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}

	return i
}

// Indices maps fractional points onto the regular mesh described by divs and
// returns one integer grid index triple per point.
//
// Each coordinate is folded into [0,1), scaled by the divisions, reduced by
// the mesh shift, and rounded to the nearest node. A point whose distance to
// the nearest node exceeds the tolerance (in grid-step units) yields an
// ErrOffMesh wrapped with the offending point and its distance. Rounded
// indices that land on the periodic replica (i == n) wrap back to node 0.
//
// The empty point list is valid and returns an empty index list.
// Complexity: O(len(points)) time, O(len(points)) memory.
func Indices(points []Point, divs Divs, opts ...Option) ([][3]int, error) {
	if err := divs.validate(); err != nil {
		return nil, fmt.Errorf("bzmesh: Indices: divs %v: %w", divs, err)
	}
	o := gatherOptions(opts...)

	idx := make([][3]int, len(points))
	for ip, p := range points {
		for d := 0; d < 3; d++ {
			// Grid-unit coordinate of the point relative to node 0.
			u := fold(p[d])*float64(divs[d]) - o.shift[d]
			nearest := math.Round(u)
			if dist := math.Abs(u - nearest); dist > o.meshTol {
				return nil, fmt.Errorf("bzmesh: Indices: point %v is %.3g grid steps off the %v mesh: %w",
					p, dist, divs, ErrOffMesh)
			}
			idx[ip][d] = wrapIndex(int(nearest), divs[d])
		}
	}

	return idx, nil
}

// MeshPoints returns the fractional coordinates of every node of the regular
// mesh described by divs and shift. Points are emitted in index order (i,j,k)
// with k fastest, matching the Box memory layout: node (i,j,k) sits at
// ((i+s1)/n1, (j+s2)/n2, (k+s3)/n3).
// Complexity: O(n1*n2*n3) time and memory.
func MeshPoints(divs Divs, shift Point) []Point {
	if divs.validate() != nil {
		return nil
	}

	pts := make([]Point, 0, divs.Count())
	for i := 0; i < divs[0]; i++ {
		for j := 0; j < divs[1]; j++ {
			for k := 0; k < divs[2]; k++ {
				pts = append(pts, Point{
					(float64(i) + shift[0]) / float64(divs[0]),
					(float64(j) + shift[1]) / float64(divs[1]),
					(float64(k) + shift[2]) / float64(divs[2]),
				})
			}
		}
	}

	return pts
}
