package history

// mark flags root and every node reachable from it through input bindings.
// visited is indexed by node ID and must cover every live node; nodes that
// are already flagged are not expanded again.
//
// Ancestor chains can be as long as the number of pushes, so the walk uses
// an explicit stack. The (emptied) stack is returned for reuse.
func mark(visited []bool, stack []*Node, root *Node) []*Node {
	if visited[root.id] {
		return stack
	}
	visited[root.id] = true
	stack = append(stack[:0], root)

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, in := range n.inputs {
			p := in.producer
			if visited[p.id] {
				continue
			}
			visited[p.id] = true
			stack = append(stack, p)
		}
	}
	return stack
}
