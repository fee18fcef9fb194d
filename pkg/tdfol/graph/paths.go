package graph

import "sort"

// CriticalPath returns the shortest derivation chain from one formula's
// key to another's, following derivation edges, or nil when no chain
// exists. BFS guarantees minimality.
func (g *Graph) CriticalPath(from, to string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.nodes[from]; !ok {
		return nil
	}
	if _, ok := g.nodes[to]; !ok {
		return nil
	}
	if from == to {
		return []string{from}
	}

	parent := map[string]string{from: ""}
	queue := []string{from}
	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		for _, next := range sortedSet(g.out[k]) {
			if _, visited := parent[next]; visited {
				continue
			}
			parent[next] = k
			if next == to {
				var path []string
				for at := to; at != ""; at = parent[at] {
					path = append(path, at)
				}
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return path
			}
			queue = append(queue, next)
		}
	}
	return nil
}

// AllPaths enumerates every simple derivation chain from one key to
// another, up to maxLen nodes per path. A maxLen of zero means unbounded.
func (g *Graph) AllPaths(from, to string, maxLen int) [][]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.nodes[from]; !ok {
		return nil
	}
	if _, ok := g.nodes[to]; !ok {
		return nil
	}

	var paths [][]string
	onPath := map[string]struct{}{from: {}}
	var walk func(k string, path []string)
	walk = func(k string, path []string) {
		if maxLen > 0 && len(path) > maxLen {
			return
		}
		if k == to {
			paths = append(paths, append([]string(nil), path...))
			return
		}
		for _, next := range sortedSet(g.out[k]) {
			if _, cycle := onPath[next]; cycle {
				continue
			}
			onPath[next] = struct{}{}
			walk(next, append(path, next))
			delete(onPath, next)
		}
	}
	walk(from, []string{from})
	return paths
}

// TopologicalSort orders the nodes so every dependency precedes its
// dependents. A cycle yields a *CircularDependencyError.
func (g *Graph) TopologicalSort() ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	indegree := make(map[string]int, len(g.nodes))
	for k := range g.nodes {
		indegree[k] = len(g.in[k])
	}
	var ready []string
	for k, d := range indegree {
		if d == 0 {
			ready = append(ready, k)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		k := ready[0]
		ready = ready[1:]
		order = append(order, k)
		var unlocked []string
		for next := range g.out[k] {
			indegree[next]--
			if indegree[next] == 0 {
				unlocked = append(unlocked, next)
			}
		}
		sort.Strings(unlocked)
		ready = append(ready, unlocked...)
	}

	if len(order) != len(g.nodes) {
		var stuck []string
		for k, d := range indegree {
			if d > 0 {
				stuck = append(stuck, k)
			}
		}
		sort.Strings(stuck)
		return nil, &CircularDependencyError{Cycle: stuck}
	}
	return order, nil
}

// DetectCycles returns every elementary cycle reachable in the graph,
// each as a key sequence ending where it began. Unlike TopologicalSort it
// never returns an error; an acyclic graph yields an empty result.
func (g *Graph) DetectCycles() [][]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[string]int, len(g.nodes))
	var cycles [][]string
	var stack []string

	var visit func(k string)
	visit = func(k string) {
		state[k] = inProgress
		stack = append(stack, k)
		for _, next := range sortedSet(g.out[k]) {
			switch state[next] {
			case unvisited:
				visit(next)
			case inProgress:
				// Slice the cycle out of the current path.
				for i, onStack := range stack {
					if onStack == next {
						cycle := append([]string(nil), stack[i:]...)
						cycles = append(cycles, append(cycle, next))
						break
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[k] = done
	}
	for _, k := range g.sortedKeysLocked() {
		if state[k] == unvisited {
			visit(k)
		}
	}
	return cycles
}

// UnusedAxioms returns the axiom nodes with no path to any derived node,
// sorted. An axiom with no outgoing edges at all is trivially unused.
func (g *Graph) UnusedAxioms() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	reaches := make(map[string]bool, len(g.nodes))
	var visit func(k string) bool
	visit = func(k string) bool {
		if r, ok := reaches[k]; ok {
			return r
		}
		reaches[k] = false // cycle guard
		r := false
		for next := range g.out[k] {
			if g.nodes[next].Type == Derived || visit(next) {
				r = true
				break
			}
		}
		reaches[k] = r
		return r
	}

	var unused []string
	for _, k := range g.sortedKeysLocked() {
		if g.nodes[k].Type != Axiom {
			continue
		}
		if !visit(k) {
			unused = append(unused, k)
		}
	}
	return unused
}

// RedundantFormulas returns pairs of derived formulas where the first is
// transitively implied by the second's dependency closure: everything the
// first rests on, the second rests on too.
func (g *Graph) RedundantFormulas() [][2]string {
	g.mu.RLock()
	closures := make(map[string]map[string]struct{}, len(g.nodes))
	derived := []string{}
	for _, k := range g.sortedKeysLocked() {
		if g.nodes[k].Type == Derived && len(g.in[k]) > 0 {
			derived = append(derived, k)
			closures[k] = g.closureLocked(k)
		}
	}
	g.mu.RUnlock()

	var pairs [][2]string
	for _, a := range derived {
		for _, b := range derived {
			if a == b {
				continue
			}
			if covers(closures[b], closures[a]) {
				pairs = append(pairs, [2]string{a, b})
			}
		}
	}
	return pairs
}

func (g *Graph) closureLocked(start string) map[string]struct{} {
	seen := make(map[string]struct{})
	stack := []string{start}
	for len(stack) > 0 {
		k := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dep := range g.in[k] {
			if _, dup := seen[dep]; dup {
				continue
			}
			seen[dep] = struct{}{}
			stack = append(stack, dep)
		}
	}
	return seen
}

func covers(super, sub map[string]struct{}) bool {
	if len(sub) == 0 {
		return false
	}
	for k := range sub {
		if _, ok := super[k]; !ok {
			return false
		}
	}
	return true
}
