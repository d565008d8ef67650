package history_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Caian/h1st/history"
)

// step is one Push call of a fixture.
type step struct {
	inputs  []string
	command string
	outputs []string
}

// singleInOut is the ten-push fixture where every command reads at most one
// file and writes exactly one. Commands 1–3 and 8 are superseded.
var singleInOut = []step{
	{nil, "command 1", []string{"out.txt"}},
	{[]string{"out.txt"}, "command 2", []string{"out.A.txt"}},
	{[]string{"out.txt"}, "command 3", []string{"out.A.txt"}},
	{nil, "command 4", []string{"out.txt"}},
	{[]string{"out.txt"}, "command 5", []string{"out.A.txt"}},
	{[]string{"out.A.txt"}, "command 6", []string{"out.B.txt"}},
	{[]string{"out.B.txt"}, "command 7", []string{"out.C.txt"}},
	{[]string{"out.txt"}, "command 8", []string{"out.A.txt"}},
	{[]string{"out.txt"}, "command 9", []string{"out.A.txt"}},
	{[]string{"out.A.txt"}, "command 10", []string{"out.B.txt"}},
}

// multipleInOut exercises nodes with several inputs and outputs.
var multipleInOut = []step{
	{nil, "command 1", []string{"out.A.txt", "out.B.txt", "out.C.txt", "out.D.txt"}},
	{nil, "command 2", []string{"out.A.txt"}},
	{nil, "command 3", []string{"out.B.txt", "out.C.txt", "out.D.txt"}},
	{[]string{"out.A.txt", "out.B.txt"}, "command 4", []string{"out.C.txt"}},
	{[]string{"out.A.txt", "out.B.txt"}, "command 5", []string{"out.D.txt"}},
}

// buildGraph pushes every step of fixture into a fresh graph.
func buildGraph(t testing.TB, fixture []step) *history.Graph {
	t.Helper()
	g := history.NewGraph()
	for _, s := range fixture {
		_, err := g.Push(s.inputs, s.command, s.outputs)
		require.NoError(t, err, "push %q", s.command)
	}
	return g
}

// commands maps nodes to their command text.
func commands(nodes []*history.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Command()
	}
	return out
}

// requireDenseIDs asserts IDs are exactly 0..len-1 in slice order.
func requireDenseIDs(t *testing.T, g *history.Graph) {
	t.Helper()
	for i, n := range g.Nodes() {
		require.Equal(t, i, n.ID(), "node %q", n.Command())
	}
}

// requireReachable asserts every live node is an ancestor of some current
// producer, which is exactly what Prune is supposed to guarantee.
func requireReachable(t *testing.T, g *history.Graph) {
	t.Helper()
	reachable := make(map[*history.Node]bool)
	var stack []*history.Node
	for _, n := range g.Nodes() {
		for _, out := range n.Outputs() {
			if p, ok := g.Producer(out); ok && p == n {
				stack = append(stack, n)
				break
			}
		}
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reachable[n] {
			continue
		}
		reachable[n] = true
		for _, in := range n.Inputs() {
			stack = append(stack, in.Node())
		}
	}
	for _, n := range g.Nodes() {
		require.True(t, reachable[n], "node %q is live but unreachable", n.Command())
	}
	require.Len(t, reachable, g.Len())
}
