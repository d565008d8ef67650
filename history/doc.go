// Package history records build provenance as a garbage-collected DAG.
//
// Every Node is one command that consumed zero or more existing files and
// produced one or more output files. A Graph keeps the live nodes in creation
// order together with a file index (file name → node that currently produces
// it) and answers the question "which commands, transitively, produced this
// file?".
//
// What:
//
//   - Push(inputs, command, outputs): resolve inputs against the file index,
//     create the node, claim its outputs (last writer wins), then Prune.
//   - Prune(): mark every node reachable backward from the file index,
//     compact the survivors in place (stable), renumber them 0..k-1 and drop
//     the rest.
//   - Track(files, opts...): ancestor closure of the current producers of
//     files, returned in graph order, each node at most once.
//   - HasInput(file): whether file currently has a producer.
//   - Print(sink): feed every live node, in order, to a Sink.
//
// Why:
//
//   - Answer provenance queries for build outputs without keeping the whole
//     history: a node survives only while one of its outputs is current or it
//     is an ancestor of such a node.
//
// Binding rules:
//
//	An Input is a snapshot. It points to the producer that owned the file at
//	the moment the edge was created; overwriting the file later does not
//	retarget it. Because a node can only reference nodes that already exist,
//	the graph is acyclic by construction.
//
// Identity:
//
//	Node.ID is a dense display index, reassigned by every Prune. The *Node
//	pointer is the stable handle; once a node is pruned its ID becomes -1 and
//	Pruned reports true.
//
// Complexity:
//
//   - Push:     O(I + O) for binding plus one Prune.
//   - Prune:    Time O(V + E), Memory O(V) (explicit work stack, no recursion).
//   - Track:    Time O(V + E), Memory O(V).
//   - HasInput: O(1).
//
// Errors (all *Error, matched with errors.Is against the sentinels):
//
//   - ErrNullValue       a required collaborator (node, sink) is nil.
//   - ErrEmptyValue      a required string (input file, output name) is empty.
//   - ErrEmptyOutputs    Push with zero outputs.
//   - ErrInputNotFound   an input or tracked file has no current producer.
//
// Validation always precedes mutation: a failed call leaves the graph exactly
// as it was.
//
// Concurrency:
//
//	A Graph is not safe for concurrent use. Serialize writers and do not read
//	while a Push is in flight.
package history
