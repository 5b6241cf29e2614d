package optimizer

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	// subtreesPerWorker controls how finely the top of the tree is split.
	subtreesPerWorker = 4
	maxSplitDepth     = 12
)

// subtree is an independent branch of the search: the first depth candidates
// of the branching order are decided, with include listing those taken.
type subtree struct {
	depth   int
	include []int
}

// searchParallel splits the top branching levels into subtrees and explores
// them on a bounded worker group. The incumbent is the only shared state.
func (p *problem) searchParallel(ctx context.Context, inc *incumbent, workers int) searchStats {
	tasks := p.splitTop(splitDepth(workers, len(p.order)))

	var (
		mu    sync.Mutex
		stats searchStats
	)
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for _, t := range tasks {
		g.Go(func() error {
			s := p.newSearcher(ctx, inc)
			for _, r := range t.include {
				s.include(r)
			}
			s.explore(t.depth)

			mu.Lock()
			stats.merge(s)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return stats
}

// splitDepth picks the fewest levels giving each worker several subtrees.
func splitDepth(workers, candidates int) int {
	depth := 0
	for (1<<depth) < workers*subtreesPerWorker && depth < maxSplitDepth && depth < candidates {
		depth++
	}
	return depth
}

// splitTop enumerates include/exclude prefixes of order[:depth], include first,
// dropping prefixes that already take more than the meal count.
func (p *problem) splitTop(depth int) []subtree {
	var (
		tasks []subtree
		walk  func(level int, include []int)
	)
	walk = func(level int, include []int) {
		if len(include) > p.m.MealCount {
			return
		}
		if level == depth {
			tasks = append(tasks, subtree{depth: depth, include: append([]int(nil), include...)})
			return
		}
		walk(level+1, append(include, p.order[level]))
		walk(level+1, include)
	}
	walk(0, make([]int, 0, depth))
	return tasks
}
