package plan

import (
	"errors"
	"fmt"
	"slices"
)

var errCycle = errors.New("cycle detected")

// topoSort returns node indices so that every node comes after the nodes it
// depends on. depsFn(i) yields the indices i depends on.
//
// The result is deterministic: when several nodes are ready, the smallest
// index goes first. On a cycle, the nodes that could not be ordered are
// returned along with errCycle.
func topoSort(n int, depsFn func(i int) []int) (order, stuck []int, err error) {
	if n <= 0 {
		return nil, nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		slices.Sort(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order = make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k, _ := slices.BinarySearch(ready, j)
				ready = slices.Insert(ready, k, j)
			}
		}
	}

	if len(order) != n {
		for i := range n {
			if indeg[i] > 0 {
				stuck = append(stuck, i)
			}
		}

		return nil, stuck, errCycle
	}

	return order, nil, nil
}
