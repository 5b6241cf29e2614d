package optimizer

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Outcome classifies a raw search result.
type Outcome int

const (
	OutcomeOptimal Outcome = iota
	OutcomeBestEffort
	OutcomeInfeasible
	OutcomeTimeout
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOptimal:
		return "optimal"
	case OutcomeBestEffort:
		return "best_effort"
	case OutcomeInfeasible:
		return "infeasible"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// RawResult is the solver's answer before reporting.
type RawResult struct {
	Outcome Outcome
	// Selected holds candidate indices into DecisionModel.Recipes, ascending.
	Selected []int
	// Lots holds purchase lots per index of DecisionModel.Ingredients.
	Lots      []int64
	Objective int64
	// Gap is the scaled distance between the best open bound and Objective
	// when the search was interrupted.
	Gap int64

	Nodes   int64
	Pruned  int64
	Elapsed time.Duration
	Workers int
}

// Search runs branch-and-bound over recipe selections. Cancelling ctx (or its
// deadline passing) stops the search, which then returns its incumbent.
// workers > 1 explores the top of the tree in parallel.
func Search(ctx context.Context, m *DecisionModel, workers int) RawResult {
	start := time.Now()
	p := newProblem(m)
	inc := &incumbent{}

	var stats searchStats
	if workers > 1 && len(p.order) > 1 {
		stats = p.searchParallel(ctx, inc, workers)
	} else {
		workers = 1
		s := p.newSearcher(ctx, inc)
		s.explore(0)
		stats.merge(s)
	}

	res := RawResult{
		Nodes:   stats.nodes,
		Pruned:  stats.pruned,
		Workers: workers,
	}

	objective, selected, found := inc.snapshot()
	switch {
	case found && stats.stopped:
		res.Outcome = OutcomeBestEffort
		if stats.hasOpen && stats.openBound > objective {
			res.Gap = stats.openBound - objective
		}
	case found:
		res.Outcome = OutcomeOptimal
	case stats.stopped:
		res.Outcome = OutcomeTimeout
	default:
		res.Outcome = OutcomeInfeasible
	}
	if found {
		res.Selected = selected
		res.Objective = objective
		res.Lots = p.purchaseLots(selected)
	}
	res.Elapsed = time.Since(start)
	return res
}

// problem holds read-only search tables shared by all workers.
type problem struct {
	m *DecisionModel
	// order is the static branching order: |coefficient| descending, then id.
	order []int
	// pos[r] is the depth at which candidate r is decided.
	pos []int
	// byCoef lists candidates by coefficient descending, then id.
	byCoef []int
}

func newProblem(m *DecisionModel) *problem {
	n := len(m.Recipes)
	p := &problem{
		m:      m,
		order:  make([]int, n),
		pos:    make([]int, n),
		byCoef: make([]int, n),
	}
	for i := range n {
		p.order[i] = i
		p.byCoef[i] = i
	}
	// Recipes are sorted by id, so index order breaks ties by id.
	sort.SliceStable(p.order, func(a, b int) bool {
		return abs(m.Recipes[p.order[a]].Coefficient) > abs(m.Recipes[p.order[b]].Coefficient)
	})
	sort.SliceStable(p.byCoef, func(a, b int) bool {
		return m.Recipes[p.byCoef[a]].Coefficient > m.Recipes[p.byCoef[b]].Coefficient
	})
	for depth, r := range p.order {
		p.pos[r] = depth
	}
	return p
}

// purchaseLots derives the minimal lots per ingredient for a selection.
func (p *problem) purchaseLots(selected []int) []int64 {
	usage := make([]int64, len(p.m.Ingredients))
	for _, r := range selected {
		for _, u := range p.m.Recipes[r].Usage {
			usage[u.Ingredient] += u.Amount
		}
	}
	lots := make([]int64, len(usage))
	for i, amount := range usage {
		lots[i] = lotsNeeded(amount, p.m.Ingredients[i].Inventory, p.m.LotSize)
	}
	return lots
}

// incumbent is the best selection found so far. Workers only ever replace it
// with a strictly better one, so the bound only tightens.
type incumbent struct {
	found atomic.Bool
	best  atomic.Int64

	mu        sync.Mutex
	objective int64
	selected  []int
}

// offer records sel (sorted ascending) if it beats the incumbent on objective,
// or ties it with a lexicographically smaller id set.
func (inc *incumbent) offer(objective int64, sel []int) {
	inc.mu.Lock()
	defer inc.mu.Unlock()

	if inc.found.Load() {
		if objective < inc.objective {
			return
		}
		if objective == inc.objective && !lexLess(sel, inc.selected) {
			return
		}
	}
	inc.objective = objective
	inc.selected = append(inc.selected[:0], sel...)
	inc.best.Store(objective)
	inc.found.Store(true)
}

func (inc *incumbent) snapshot() (int64, []int, bool) {
	inc.mu.Lock()
	defer inc.mu.Unlock()
	if !inc.found.Load() {
		return 0, nil, false
	}
	return inc.objective, append([]int(nil), inc.selected...), true
}

// beatenBy reports whether a subtree whose best completion has objective bound
// and lexicographically smallest selection lexMin could still replace the
// incumbent. lexMin is only computed when the bound ties.
func (inc *incumbent) beatenBy(bound int64, lexMin func() []int) bool {
	if !inc.found.Load() {
		return true
	}
	best := inc.best.Load()
	if bound != best {
		return bound > best
	}
	candidate := lexMin()
	inc.mu.Lock()
	defer inc.mu.Unlock()
	if bound != inc.objective {
		return bound > inc.objective
	}
	return lexLess(candidate, inc.selected)
}

// lexLess compares two ascending candidate index lists. Candidates are sorted by
// recipe id, so this is the id-set ordering.
func lexLess(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// searcher is one worker's depth-first state. It is never shared.
type searcher struct {
	p   *problem
	m   *DecisionModel
	inc *incumbent
	ctx context.Context

	usage     []int64
	cost      int64
	objective int64
	chosen    []int

	nodes   int64
	pruned  int64
	stopped bool

	openBound int64
	hasOpen   bool
}

func (p *problem) newSearcher(ctx context.Context, inc *incumbent) *searcher {
	return &searcher{
		p:      p,
		m:      p.m,
		inc:    inc,
		ctx:    ctx,
		usage:  make([]int64, len(p.m.Ingredients)),
		chosen: make([]int, 0, p.m.MealCount),
	}
}

// explore visits the node whose decided prefix is order[:depth].
func (s *searcher) explore(depth int) {
	s.nodes++
	if s.interrupted() {
		s.recordOpen(depth)
		return
	}
	if s.cost > s.m.ScaledBudget {
		s.pruned++
		return
	}

	k := s.m.MealCount - len(s.chosen)
	if k == 0 {
		s.inc.offer(s.objective, sortedCopy(s.chosen))
		return
	}

	bound, ok := s.upperBound(depth, k)
	if !ok || s.cost+s.minCompletionCost(depth) > s.m.ScaledBudget {
		s.pruned++
		return
	}
	if !s.inc.beatenBy(bound, func() []int { return s.lexMinCompletion(depth, k) }) {
		s.pruned++
		return
	}

	r := s.p.order[depth]
	s.include(r)
	s.explore(depth + 1)
	s.remove(r)
	if s.stopped {
		s.recordOpen(depth + 1)
		return
	}
	s.explore(depth + 1)
}

func (s *searcher) interrupted() bool {
	if s.stopped {
		return true
	}
	select {
	case <-s.ctx.Done():
		s.stopped = true
		return true
	default:
		return false
	}
}

// recordOpen notes the objective bound of the unexplored node at depth, given
// the current included set.
func (s *searcher) recordOpen(depth int) {
	if s.cost > s.m.ScaledBudget {
		return
	}
	k := s.m.MealCount - len(s.chosen)
	bound, ok := s.upperBound(depth, k)
	if !ok {
		return
	}
	if !s.hasOpen || bound > s.openBound {
		s.openBound = bound
		s.hasOpen = true
	}
}

func (s *searcher) include(r int) {
	rec := &s.m.Recipes[r]
	for _, u := range rec.Usage {
		before := s.m.lotCost(u.Ingredient, s.usage[u.Ingredient])
		s.usage[u.Ingredient] += u.Amount
		s.cost += s.m.lotCost(u.Ingredient, s.usage[u.Ingredient]) - before
	}
	s.objective += rec.Coefficient
	s.chosen = append(s.chosen, r)
}

// remove undoes include(r); r must be the last included candidate.
func (s *searcher) remove(r int) {
	rec := &s.m.Recipes[r]
	for _, u := range rec.Usage {
		before := s.m.lotCost(u.Ingredient, s.usage[u.Ingredient])
		s.usage[u.Ingredient] -= u.Amount
		s.cost += s.m.lotCost(u.Ingredient, s.usage[u.Ingredient]) - before
	}
	s.objective -= rec.Coefficient
	s.chosen = s.chosen[:len(s.chosen)-1]
}

// upperBound relaxes the undecided candidates: it adds the k best coefficients
// among order[depth:] to the included objective. ok is false when fewer than k
// candidates remain.
func (s *searcher) upperBound(depth, k int) (int64, bool) {
	bound := s.objective
	if k == 0 {
		return bound, true
	}
	taken := 0
	for _, r := range s.p.byCoef {
		if s.p.pos[r] < depth {
			continue
		}
		bound += s.m.Recipes[r].Coefficient
		taken++
		if taken == k {
			return bound, true
		}
	}
	return bound, false
}

// minCompletionCost bounds the extra purchase cost of any completion from
// below: every completion includes at least one undecided candidate and cost
// never decreases as recipes are added.
func (s *searcher) minCompletionCost(depth int) int64 {
	best := int64(-1)
	for _, r := range s.p.order[depth:] {
		var extra int64
		for _, u := range s.m.Recipes[r].Usage {
			current := s.usage[u.Ingredient]
			extra += s.m.lotCost(u.Ingredient, current+u.Amount) - s.m.lotCost(u.Ingredient, current)
		}
		if best < 0 || extra < best {
			best = extra
			if best == 0 {
				break
			}
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// lexMinCompletion is the smallest id set reachable from this node: the
// included candidates plus the k smallest undecided ones.
func (s *searcher) lexMinCompletion(depth, k int) []int {
	sel := make([]int, 0, len(s.chosen)+k)
	sel = append(sel, s.chosen...)
	for r := 0; r < len(s.m.Recipes) && k > 0; r++ {
		if s.p.pos[r] >= depth {
			sel = append(sel, r)
			k--
		}
	}
	sort.Ints(sel)
	return sel
}

type searchStats struct {
	nodes     int64
	pruned    int64
	stopped   bool
	openBound int64
	hasOpen   bool
}

func (st *searchStats) merge(s *searcher) {
	st.nodes += s.nodes
	st.pruned += s.pruned
	st.stopped = st.stopped || s.stopped
	if s.hasOpen && (!st.hasOpen || s.openBound > st.openBound) {
		st.openBound = s.openBound
		st.hasOpen = true
	}
}

func sortedCopy(in []int) []int {
	out := append([]int(nil), in...)
	sort.Ints(out)
	return out
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
