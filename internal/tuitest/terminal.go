package tuitest

import (
	"bytes"
	"io"
)

const (
	responderTail    = 64
	responderMaxSize = 256
)

// terminalQuery pairs a query a program may write to the terminal with the
// reply a real terminal would send back on stdin.
type terminalQuery struct {
	query []byte
	reply []byte
}

// lipgloss and termenv query the cursor position and the default colours on
// startup; without replies they block until their read timeout.
var terminalQueries = []terminalQuery{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
	{[]byte("\x1b[c"), []byte("\x1b[?62;22c")},
}

type terminalResponder struct {
	w       io.Writer
	buf     []byte
	queries []terminalQuery
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, 128), queries: terminalQueries}
}

// Process scans chunk for terminal queries and answers them in the order
// they were written. Queries split across chunks are still detected.
func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerNext() {
	}
	if len(tr.buf) > responderMaxSize {
		tr.buf = tr.buf[len(tr.buf)-responderTail:]
	}
}

func (tr *terminalResponder) answerNext() bool {
	at, match := -1, -1
	for i, q := range tr.queries {
		idx := bytes.Index(tr.buf, q.query)
		if idx >= 0 && (at < 0 || idx < at) {
			at, match = idx, i
		}
	}
	if match < 0 {
		return false
	}
	q := tr.queries[match]
	tr.buf = tr.buf[at+len(q.query):]
	_, _ = tr.w.Write(q.reply)
	return true
}
