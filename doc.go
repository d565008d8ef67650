// Package h1st records the history of a build as a provenance graph and
// answers one question about it: which commands still matter for a file.
//
// Every command that ran is pushed as a node naming the files it read and the
// files it wrote. The graph keeps, per file, only its most recent writer;
// nodes no current file depends on are pruned as soon as they become
// unreachable, so memory follows the live build state rather than the length
// of the log.
//
// Layout:
//
//	history/          provenance graph: Push, Prune, Track, HasInput, Print
//	printer/          one-line rendering of nodes, the Sink used by Print
//	manifest/         HCL and YAML build logs replayed into a graph
//	internal/session/ line-oriented command language with a track cache
//	internal/config/  flags, environment and .env resolution
//	internal/app/     wiring of one CLI run
//	cmd/h1st/         the command-line entrypoint
//
// Quick start:
//
//	g := history.NewGraph()
//	_, _ = g.Push(nil, "gen", []string{"a.txt"})
//	_, _ = g.Push([]string{"a.txt"}, "cat", []string{"b.txt"})
//	nodes, _ := g.Track([]string{"b.txt"})
//	_ = printer.Nodes(sink, nodes) // "gen a.txt(0)", then "a.txt(0) cat b.txt(1)"
package h1st
