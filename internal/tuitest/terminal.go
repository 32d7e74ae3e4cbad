package tuitest

import (
	"bytes"
	"io"
)

// Background is the colour scheme the fake terminal reports when gyanam's
// renderer asks for it. glamour's auto style picks its palette from the answer.
type Background int

const (
	BackgroundDark Background = iota
	BackgroundLight
)

const (
	// pendingLimit bounds the unanswered bytes kept between reads; keepTail is
	// enough to hold a query split across two reads.
	pendingLimit = 256
	keepTail     = 32
)

// exchange is one terminal query and the reply written back for it.
type exchange struct {
	query []byte
	reply []byte
}

func (b Background) exchanges() []exchange {
	fg, bg := "cccc/cccc/cccc", "0000/0000/0000"
	if b == BackgroundLight {
		fg, bg = "3333/3333/3333", "ffff/ffff/ffff"
	}
	out := []exchange{{query: []byte("\x1b[6n"), reply: []byte("\x1b[1;1R")}}
	// OSC queries may end in BEL or ST; answer with the same terminator.
	for _, end := range []string{"\x07", "\x1b\\"} {
		out = append(out,
			exchange{query: []byte("\x1b]10;?" + end), reply: []byte("\x1b]10;rgb:" + fg + end)},
			exchange{query: []byte("\x1b]11;?" + end), reply: []byte("\x1b]11;rgb:" + bg + end)},
		)
	}
	return out
}

// terminalResponder answers the capability queries a real terminal would,
// in the order the program sent them.
type terminalResponder struct {
	w         io.Writer
	exchanges []exchange
	pending   []byte
	answered  int
}

func newTerminalResponder(w io.Writer, background Background) *terminalResponder {
	return &terminalResponder{w: w, exchanges: background.exchanges()}
}

// Feed scans chunk, together with any unanswered tail from earlier reads, and
// writes a reply for every query found.
func (r *terminalResponder) Feed(chunk []byte) {
	r.pending = append(r.pending, chunk...)
	for {
		at, ex := r.earliest()
		if ex == nil {
			break
		}
		_, _ = r.w.Write(ex.reply)
		r.answered++
		r.pending = r.pending[at+len(ex.query):]
	}
	if len(r.pending) > pendingLimit {
		r.pending = append([]byte(nil), r.pending[len(r.pending)-keepTail:]...)
	}
}

func (r *terminalResponder) earliest() (int, *exchange) {
	best, match := -1, (*exchange)(nil)
	for i := range r.exchanges {
		idx := bytes.Index(r.pending, r.exchanges[i].query)
		if idx >= 0 && (best < 0 || idx < best) {
			best, match = idx, &r.exchanges[i]
		}
	}
	return best, match
}
