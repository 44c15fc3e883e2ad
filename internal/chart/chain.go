package chart

import "github.com/gogpu/unwrap/internal/mesh"

// connectChains merges edges sharing an endpoint into maximal vertex chains.
// A chain grows at either end; edges are considered in input order and the scan
// restarts after every attachment so that no attachable edge is missed.
func connectChains(edges []mesh.Edge) [][]int {
	used := make([]bool, len(edges))
	var chains [][]int

	for i, e := range edges {
		if used[i] {
			continue
		}
		used[i] = true
		chain := []int{e.Lo, e.Hi}

		for j := 0; j < len(edges); j++ {
			if used[j] {
				continue
			}
			f := edges[j]
			front, back := chain[0], chain[len(chain)-1]
			switch {
			case f.Has(front):
				chain = append([]int{f.Other(front)}, chain...)
			case f.Has(back):
				chain = append(chain, f.Other(back))
			default:
				continue
			}
			used[j] = true
			j = -1
		}
		chains = append(chains, chain)
	}
	return chains
}

// indexOf returns the position of v in chain, or -1.
func indexOf(chain []int, v int) int {
	for i, c := range chain {
		if c == v {
			return i
		}
	}
	return -1
}
