package tuitest

import (
	"bytes"
	"testing"
)

func TestResponderAnswersInStreamOrder(t *testing.T) {
	var out bytes.Buffer
	r := newTerminalResponder(&out, BackgroundDark)

	r.Feed([]byte("frame\x1b]11;?\x07more\x1b[6n"))

	want := "\x1b]11;rgb:0000/0000/0000\x07\x1b[1;1R"
	if got := out.String(); got != want {
		t.Fatalf("replies = %q, want %q", got, want)
	}
	if r.answered != 2 {
		t.Fatalf("answered = %d, want 2", r.answered)
	}
}

func TestResponderJoinsQuerySplitAcrossReads(t *testing.T) {
	var out bytes.Buffer
	r := newTerminalResponder(&out, BackgroundLight)

	r.Feed([]byte("text\x1b]11"))
	if out.Len() != 0 {
		t.Fatalf("partial query answered: %q", out.String())
	}
	r.Feed([]byte(";?\x1b\\"))

	if got, want := out.String(), "\x1b]11;rgb:ffff/ffff/ffff\x1b\\"; got != want {
		t.Fatalf("reply = %q, want %q", got, want)
	}
}

func TestResponderBoundsPendingBytes(t *testing.T) {
	r := newTerminalResponder(&bytes.Buffer{}, BackgroundDark)
	r.Feed(bytes.Repeat([]byte("x"), 1000))
	if len(r.pending) != keepTail {
		t.Fatalf("pending = %d bytes, want %d", len(r.pending), keepTail)
	}
}
