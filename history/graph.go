// SPDX-License-Identifier: MIT
//
// Graph mutation (Push, Prune) and queries (Track, HasInput, Print).

package history

// Push records a command that read inputs and wrote outputs, then prunes.
//
// Validation happens before any mutation, in this order:
//  1. outputs must be non-empty (ErrEmptyOutputs);
//  2. no output name may be empty (ErrEmptyValue, argument "outputs");
//  3. every input must have a current producer (ErrInputNotFound naming the
//     first missing file).
//
// On success each input is bound to the producer known right now, the node
// claims every output in the file index (replacing earlier producers) and
// Prune runs unconditionally. The returned pointer stays valid until the
// node is pruned.
//
// Complexity: O(len(inputs) + len(outputs)) + Prune.
func (g *Graph) Push(inputs []string, command string, outputs []string) (*Node, error) {
	if len(outputs) == 0 {
		return nil, emptyOutputs()
	}
	for _, out := range outputs {
		if out == "" {
			return nil, EmptyArgument("outputs")
		}
	}

	bound := make([]Input, 0, len(inputs))
	for _, file := range inputs {
		producer, ok := g.files[file]
		if !ok {
			return nil, inputNotFound(file)
		}
		in, err := NewInput(producer, file)
		if err != nil {
			return nil, err
		}
		bound = append(bound, in)
	}

	outs := make([]string, len(outputs))
	copy(outs, outputs)

	// ids are 0..len-1 here, so the next one is len.
	n := &Node{
		id:      len(g.nodes),
		command: command,
		outputs: outs,
		inputs:  bound,
	}
	g.nodes = append(g.nodes, n)
	for _, out := range outs {
		g.files[out] = n
	}
	g.pushed++

	g.Prune()

	return n, nil
}

// Prune discards every node that is not reachable backward from the file
// index, keeps the survivors in their relative order and renumbers them
// 0..k-1. It is the only place node IDs change. Push calls it; calling it
// directly is harmless.
//
// Complexity: Time O(V + E), Memory O(V).
func (g *Graph) Prune() {
	total := len(g.nodes)
	visited := make([]bool, total)

	var stack []*Node
	for _, root := range g.files {
		stack = mark(visited, stack, root)
	}

	kept := 0
	for i, n := range g.nodes {
		if !visited[i] {
			n.id = prunedID
			continue
		}
		n.id = kept
		g.nodes[kept] = n
		kept++
	}

	// Drop the tail references so dropped nodes can be collected.
	clear(g.nodes[kept:])
	g.nodes = g.nodes[:kept]

	if removed := total - kept; removed > 0 {
		g.pruned += uint64(removed)
		g.logger.Debug("history: pruned nodes", "removed", removed, "live", kept)
	}
}

// Track returns the ancestor closure of the current producers of files.
//
// Files are resolved in order. A file without a producer fails the whole call
// with ErrInputNotFound unless IgnoreMissing is given, in which case it is
// skipped. The result lists nodes in graph order (not discovery order) and
// contains each node once, so it does not depend on the order of files.
//
// Complexity: Time O(V + E), Memory O(V).
func (g *Graph) Track(files []string, opts ...TrackOption) ([]*Node, error) {
	var o trackOptions
	for _, opt := range opts {
		opt(&o)
	}

	visited := make([]bool, len(g.nodes))
	var stack []*Node
	for _, file := range files {
		producer, ok := g.files[file]
		if !ok {
			if o.ignoreMissing {
				continue
			}
			return nil, inputNotFound(file)
		}
		stack = mark(visited, stack, producer)
	}

	result := make([]*Node, 0)
	for i, n := range g.nodes {
		if visited[i] {
			result = append(result, n)
		}
	}
	return result, nil
}

// HasInput reports whether file currently has a producer.
// Complexity: O(1).
func (g *Graph) HasInput(file string) bool {
	_, ok := g.files[file]
	return ok
}

// Producer returns the node currently producing file.
// Complexity: O(1).
func (g *Graph) Producer(file string) (*Node, bool) {
	n, ok := g.files[file]
	return n, ok
}

// Nodes returns the live nodes in graph order. The slice is a copy.
// Complexity: O(V).
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Len returns the number of live nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Generation returns the number of successful pushes. Any cached query
// result computed at an older generation may be stale.
func (g *Graph) Generation() uint64 { return g.pushed }

// Stats returns a snapshot of sizes and lifetime counters.
// Complexity: O(V).
func (g *Graph) Stats() GraphStats {
	edges := 0
	for _, n := range g.nodes {
		edges += len(n.inputs)
	}
	return GraphStats{
		NodeCount: len(g.nodes),
		FileCount: len(g.files),
		EdgeCount: edges,
		Pushed:    g.pushed,
		Pruned:    g.pruned,
	}
}

// Print feeds every live node, in graph order, to sink and stops at the
// first error the sink returns.
//
// Errors:
//   - NullValue (argument "sink") if sink is nil.
//   - any error returned by sink.Record.
func (g *Graph) Print(sink Sink) error {
	if sink == nil {
		return NullArgument("sink")
	}
	for _, n := range g.nodes {
		if err := sink.Record(n); err != nil {
			return err
		}
	}
	return nil
}
