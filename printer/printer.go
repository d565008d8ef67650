// Package printer renders history nodes as one diagnostic line each:
//
//	<input_1>(<producer_id_1>) ... <command> <output_1>(<own_id>) ...
//
// Input bindings come first, then the command, then the outputs. Fields are
// separated by single spaces. The format is for humans; nothing parses it.
package printer

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/Caian/h1st/history"
)

// Stream is a history.Sink writing one line per node to an io.Writer.
type Stream struct {
	w io.Writer
}

var _ history.Sink = (*Stream)(nil)

// NewStream returns a Stream writing to w.
// A nil w fails with history.ErrNullValue naming argument "w".
func NewStream(w io.Writer) (*Stream, error) {
	if w == nil {
		return nil, history.NullArgument("w")
	}
	return &Stream{w: w}, nil
}

// Record writes the line for n.
func (s *Stream) Record(n *history.Node) error {
	if n == nil {
		return history.NullArgument("node")
	}
	_, err := io.WriteString(s.w, Line(n)+"\n")
	return err
}

// Line formats n without a trailing newline.
func Line(n *history.Node) string {
	var b strings.Builder
	for _, in := range n.Inputs() {
		writeRef(&b, in.File(), in.Node().ID())
		b.WriteByte(' ')
	}
	b.WriteString(n.Command())
	id := n.ID()
	for _, out := range n.Outputs() {
		b.WriteByte(' ')
		writeRef(&b, out, id)
	}
	return b.String()
}

func writeRef(b *strings.Builder, file string, id int) {
	b.WriteString(file)
	b.WriteByte('(')
	b.WriteString(strconv.Itoa(id))
	b.WriteByte(')')
}

// Nodes feeds nodes to sink in slice order, stopping at the first error.
// It is the Track counterpart of history.Graph.Print.
func Nodes(sink history.Sink, nodes []*history.Node) error {
	if sink == nil {
		return history.NullArgument("sink")
	}
	for _, n := range nodes {
		if err := sink.Record(n); err != nil {
			return err
		}
	}
	return nil
}

// Buffered wraps a Stream around a bufio.Writer; call Flush when done.
type Buffered struct {
	*Stream
	buf *bufio.Writer
}

// NewBuffered returns a buffered Stream over w.
func NewBuffered(w io.Writer) (*Buffered, error) {
	if w == nil {
		return nil, history.NullArgument("w")
	}
	buf := bufio.NewWriter(w)
	return &Buffered{Stream: &Stream{w: buf}, buf: buf}, nil
}

// Flush writes any buffered lines to the underlying writer.
func (b *Buffered) Flush() error {
	return b.buf.Flush()
}
