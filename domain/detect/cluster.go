package detect

import "image"

var neighbors4 = [4]image.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Group splits candidates into maximal 4-connected clusters and keeps those
// with at least minSize members. Duplicate candidates are counted once.
// Cluster order follows the first appearance of a member in candidates.
func Group(candidates []image.Point, minSize int) [][]image.Point {
	if len(candidates) == 0 {
		return nil
	}
	set := make(map[image.Point]struct{}, len(candidates))
	for _, p := range candidates {
		set[p] = struct{}{}
	}
	visited := make(map[image.Point]struct{}, len(set))
	var out [][]image.Point
	stack := make([]image.Point, 0, 32)
	for _, start := range candidates {
		if _, seen := visited[start]; seen {
			continue
		}
		visited[start] = struct{}{}
		stack = append(stack[:0], start)
		var cluster []image.Point
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			cluster = append(cluster, p)
			for _, d := range neighbors4 {
				n := p.Add(d)
				if _, ok := set[n]; !ok {
					continue
				}
				if _, seen := visited[n]; seen {
					continue
				}
				visited[n] = struct{}{}
				stack = append(stack, n)
			}
		}
		if len(cluster) >= minSize {
			out = append(out, cluster)
		}
	}
	return out
}

// Union flattens clusters into one coordinate slice.
func Union(clusters [][]image.Point) []image.Point {
	n := 0
	for _, c := range clusters {
		n += len(c)
	}
	if n == 0 {
		return nil
	}
	out := make([]image.Point, 0, n)
	for _, c := range clusters {
		out = append(out, c...)
	}
	return out
}
