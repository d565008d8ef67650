package history_test

import (
	"fmt"

	"github.com/Caian/h1st/history"
)

// ExampleGraph_Push shows how overwriting a file discards the command that
// produced the old version, unless something still depends on it.
func ExampleGraph_Push() {
	g := history.NewGraph()

	// gen writes config.h, cc compiles it, then gen rewrites config.h.
	_, _ = g.Push(nil, "gen v1", []string{"config.h"})
	_, _ = g.Push([]string{"config.h"}, "cc", []string{"main.o"})
	_, _ = g.Push(nil, "gen v2", []string{"config.h"})

	// gen v1 survives: main.o is current and was built from its config.h.
	for _, n := range g.Nodes() {
		fmt.Println(n.ID(), n.Command())
	}

	// Rebuilding main.o from the new header orphans gen v1.
	_, _ = g.Push([]string{"config.h"}, "cc", []string{"main.o"})
	fmt.Println("live:", g.Len())

	// Output:
	// 0 gen v1
	// 1 cc
	// 2 gen v2
	// live: 2
}

// ExampleGraph_Track lists the commands a file was derived from, in graph
// order.
func ExampleGraph_Track() {
	g := history.NewGraph()
	_, _ = g.Push(nil, "fetch", []string{"src.tar"})
	_, _ = g.Push([]string{"src.tar"}, "untar", []string{"main.c", "util.c"})
	_, _ = g.Push([]string{"main.c"}, "cc main", []string{"main.o"})
	_, _ = g.Push([]string{"util.c"}, "cc util", []string{"util.o"})
	_, _ = g.Push([]string{"main.o", "util.o"}, "ld", []string{"app"})

	nodes, err := g.Track([]string{"main.o"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, n := range nodes {
		fmt.Println(n.Command())
	}

	_, err = g.Track([]string{"docs.html"})
	fmt.Println(err)

	// Output:
	// fetch
	// untar
	// cc main
	// history: input not found: "docs.html"
}
