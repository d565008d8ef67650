// Package session interprets a small line-oriented command language over a
// history.Graph. It backs the interactive and scripted modes of the h1st CLI.
//
// Commands (one per line, words separated by whitespace, '#' starts a
// comment line):
//
//	push <input>... -- <command words>... -- <output>...
//	track [-i] <file>...
//	has <file>
//	print
//	stats
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Caian/h1st/history"
	"github.com/Caian/h1st/internal/ctxlog"
	"github.com/Caian/h1st/printer"
)

var (
	// ErrSyntax indicates a malformed command line.
	ErrSyntax = errors.New("session: syntax error")

	// ErrUnknownCommand indicates the first word is not a known command.
	ErrUnknownCommand = errors.New("session: unknown command")
)

const separator = "--"

// Session executes commands against one graph and writes results to out.
// It is not safe for concurrent use.
type Session struct {
	graph *history.Graph
	out   io.Writer
	sink  *printer.Stream

	// cache memoises Track results; keys embed the graph generation so a
	// push makes every older entry unreachable.
	cache  *lru.Cache[string, []*history.Node]
	hits   uint64
	misses uint64
}

// New returns a Session over g writing to out, caching up to cacheSize
// track results.
func New(g *history.Graph, out io.Writer, cacheSize int) (*Session, error) {
	if g == nil {
		return nil, history.NullArgument("g")
	}
	sink, err := printer.NewStream(out)
	if err != nil {
		return nil, err
	}
	cache, err := lru.New[string, []*history.Node](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("session: track cache: %w", err)
	}
	return &Session{graph: g, out: out, sink: sink, cache: cache}, nil
}

// Run executes every line of r. A failing line is reported on out and does
// not stop the run. It returns the number of failed lines, and an error only
// if r itself could not be read.
func (s *Session) Run(ctx context.Context, r io.Reader) (int, error) {
	logger := ctxlog.FromContext(ctx)
	scanner := bufio.NewScanner(r)

	failed := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := s.Exec(ctx, scanner.Text()); err != nil {
			failed++
			logger.Warn("Command failed", "line", lineNo, "error", err)
			if _, werr := fmt.Fprintf(s.out, "line %d: %v\n", lineNo, err); werr != nil {
				return failed, werr
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return failed, fmt.Errorf("session: read script: %w", err)
	}
	return failed, nil
}

// Exec executes a single command line. Blank and comment lines are no-ops.
func (s *Session) Exec(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	words := strings.Fields(line)
	ctxlog.FromContext(ctx).Debug("Executing command", "command", words[0], "args", len(words)-1)

	switch words[0] {
	case "push":
		return s.push(words[1:])
	case "track":
		return s.track(words[1:])
	case "has":
		if len(words) != 2 {
			return fmt.Errorf("%w: usage: has <file>", ErrSyntax)
		}
		_, err := fmt.Fprintln(s.out, s.graph.HasInput(words[1]))
		return err
	case "print":
		if len(words) != 1 {
			return fmt.Errorf("%w: usage: print", ErrSyntax)
		}
		return s.graph.Print(s.sink)
	case "stats":
		if len(words) != 1 {
			return fmt.Errorf("%w: usage: stats", ErrSyntax)
		}
		return s.stats()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, words[0])
	}
}

func (s *Session) push(args []string) error {
	first, second := -1, -1
	for i, w := range args {
		if w != separator {
			continue
		}
		switch {
		case first < 0:
			first = i
		case second < 0:
			second = i
		default:
			return fmt.Errorf("%w: push takes exactly two %q separators", ErrSyntax, separator)
		}
	}
	if second < 0 {
		return fmt.Errorf("%w: usage: push <input>... -- <command> -- <output>...", ErrSyntax)
	}

	inputs := args[:first]
	command := strings.Join(args[first+1:second], " ")
	outputs := args[second+1:]

	n, err := s.graph.Push(inputs, command, outputs)
	if err != nil {
		return err
	}
	return s.sink.Record(n)
}

func (s *Session) track(args []string) error {
	ignore := false
	if len(args) > 0 && args[0] == "-i" {
		ignore = true
		args = args[1:]
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: usage: track [-i] <file>...", ErrSyntax)
	}

	nodes, err := s.Track(args, ignore)
	if err != nil {
		return err
	}
	return printer.Nodes(s.sink, nodes)
}

// Track is history.Graph.Track behind the session's result cache. The
// returned slice is shared with the cache and must not be modified.
func (s *Session) Track(files []string, ignoreMissing bool) ([]*history.Node, error) {
	key := cacheKey(s.graph.Generation(), ignoreMissing, files)
	if nodes, ok := s.cache.Get(key); ok {
		s.hits++
		return nodes, nil
	}
	s.misses++

	nodes, err := s.graph.Track(files, history.WithIgnoreMissing(ignoreMissing))
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, nodes)
	return nodes, nil
}

// CacheStats returns the cache hit and miss counts.
func (s *Session) CacheStats() (hits, misses uint64) {
	return s.hits, s.misses
}

func (s *Session) stats() error {
	st := s.graph.Stats()
	_, err := fmt.Fprintf(s.out, "nodes=%d files=%d edges=%d pushed=%d pruned=%d cache_hits=%d cache_misses=%d\n",
		st.NodeCount, st.FileCount, st.EdgeCount, st.Pushed, st.Pruned, s.hits, s.misses)
	return err
}

// cacheKey identifies a track query. Track results do not depend on the order
// or multiplicity of files, so the set is normalised.
func cacheKey(gen uint64, ignoreMissing bool, files []string) string {
	set := make([]string, len(files))
	copy(set, files)
	sort.Strings(set)

	var b strings.Builder
	b.WriteString(strconv.FormatUint(gen, 10))
	b.WriteByte(0)
	b.WriteString(strconv.FormatBool(ignoreMissing))
	prev := ""
	for i, f := range set {
		if i > 0 && f == prev {
			continue
		}
		b.WriteByte(0)
		b.WriteString(f)
		prev = f
	}
	return b.String()
}
