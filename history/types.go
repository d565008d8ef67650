// SPDX-License-Identifier: MIT
//
// This file declares Node, Input, Graph, the functional options and the
// Sink contract.

package history

import (
	"io"
	"log/slog"
)

// prunedID is the ID reported by a node that no longer belongs to a Graph.
const prunedID = -1

// Node is an immutable record of one build step.
//
// Only Graph.Push creates nodes and only Graph.Prune removes them. The ID is
// reassigned on every prune; the *Node pointer itself is the stable handle.
type Node struct {
	id      int
	command string
	outputs []string
	inputs  []Input
}

// ID returns the dense position of the node in its graph, or -1 once pruned.
func (n *Node) ID() int { return n.id }

// Pruned reports whether the node has been discarded by its graph.
func (n *Node) Pruned() bool { return n.id == prunedID }

// Command returns the command text, possibly empty.
func (n *Node) Command() string { return n.command }

// Outputs returns a copy of the declared output file names, in push order.
func (n *Node) Outputs() []string {
	out := make([]string, len(n.outputs))
	copy(out, n.outputs)
	return out
}

// Inputs returns a copy of the input bindings, in push order.
func (n *Node) Inputs() []Input {
	in := make([]Input, len(n.inputs))
	copy(in, n.inputs)
	return in
}

// Input binds one consumed file to the node that produced it when the binding
// was created.
type Input struct {
	producer *Node
	file     string
}

// NewInput validates and returns a binding of file to producer.
//
// Errors:
//   - NullValue (argument "node") if producer is nil.
//   - EmptyValue (argument "file") if file is empty.
func NewInput(producer *Node, file string) (Input, error) {
	if producer == nil {
		return Input{}, NullArgument("node")
	}
	if file == "" {
		return Input{}, EmptyArgument("file")
	}
	return Input{producer: producer, file: file}, nil
}

// Node returns the producer captured at bind time.
func (in Input) Node() *Node { return in.producer }

// File returns the bound file name.
func (in Input) File() string { return in.file }

// Sink consumes finished nodes, one call per node, in the order the graph
// chooses. A sink must not mutate the graph it is fed from.
type Sink interface {
	Record(n *Node) error
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(n *Node) error

// Record calls f(n).
func (f SinkFunc) Record(n *Node) error { return f(n) }

// GraphOption configures a Graph at construction.
type GraphOption func(g *Graph)

// WithLogger routes the graph's debug logging to logger.
// A nil logger keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) GraphOption {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// TrackOption configures a single Track call.
type TrackOption func(o *trackOptions)

type trackOptions struct {
	ignoreMissing bool
}

// IgnoreMissing makes Track skip files without a current producer instead of
// failing with ErrInputNotFound.
func IgnoreMissing() TrackOption {
	return func(o *trackOptions) { o.ignoreMissing = true }
}

// WithIgnoreMissing is IgnoreMissing driven by a flag, handy when the choice
// comes from configuration.
func WithIgnoreMissing(ignore bool) TrackOption {
	return func(o *trackOptions) { o.ignoreMissing = ignore }
}

// GraphStats is a snapshot of graph sizes and lifetime counters.
type GraphStats struct {
	NodeCount int    // live nodes
	FileCount int    // entries in the file index
	EdgeCount int    // input bindings over all live nodes
	Pushed    uint64 // successful pushes since construction
	Pruned    uint64 // nodes discarded since construction
}

// Graph owns the live nodes and the file index.
//
// nodes is kept in creation order and nodes[i].id == i holds between calls.
// files maps a file name to its current producer; every value is in nodes.
type Graph struct {
	nodes  []*Node
	files  map[string]*Node
	logger *slog.Logger

	pushed uint64
	pruned uint64
}

// NewGraph returns an empty Graph.
// Complexity: O(len(opts)).
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		files:  make(map[string]*Node),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
