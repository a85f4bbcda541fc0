package tuitest

import (
	"regexp"
	"strings"
)

// Frame is one screen's worth of output between two clear-screen sequences.
// ANSI keeps the escape codes; Plain is the text a user would read.
type Frame struct {
	Index int
	ANSI  string
	Plain string
}

var (
	clearScreen  = regexp.MustCompile(`\x1b\[[0-9;]*J`)
	csiSequence  = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)
	oscSequence  = regexp.MustCompile(`\x1b\][^\x07]*(\x07|\x1b\\)`)
	shiftInOut   = strings.NewReplacer("\x0e", "", "\x0f", "")
	cursorToHome = "\x1b[H"
)

// parseFrames splits a raw PTY stream into frames. Output that never clears
// the screen becomes a single frame.
func parseFrames(raw []byte) []Frame {
	stream := strings.ReplaceAll(string(raw), "\r", "")
	var frames []Frame
	for _, segment := range clearScreen.Split(stream, -1) {
		segment = strings.TrimPrefix(strings.Trim(segment, "\x00"), cursorToHome)
		plain := plainText(segment)
		if plain == "" {
			continue
		}
		frames = append(frames, Frame{Index: len(frames), ANSI: segment, Plain: plain})
	}
	if len(frames) == 0 && stream != "" {
		frames = append(frames, Frame{ANSI: stream, Plain: plainText(stream)})
	}
	return frames
}

// plainText drops escape sequences and trailing blanks. It returns "" for a
// segment with nothing visible.
func plainText(s string) string {
	s = oscSequence.ReplaceAllString(s, "")
	s = csiSequence.ReplaceAllString(s, "")
	s = shiftInOut.Replace(s)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[:end], "\n")
}

// FinalFrame returns the last captured frame. The second return value is false
// when no frames were recorded.
func (r *Recording) FinalFrame() (Frame, bool) {
	if r == nil || len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// FirstFrameContaining returns the earliest frame whose plain text holds
// text.
func (r *Recording) FirstFrameContaining(text string) (Frame, bool) {
	if r == nil {
		return Frame{}, false
	}
	return firstContaining(r.Frames, text)
}

// NextFrameContaining returns the first frame at or after from whose plain
// text holds text. It is used to assert that one screen state follows
// another, such as a submit echo after the tab badge.
func (r *Recording) NextFrameContaining(from Frame, text string) (Frame, bool) {
	if r == nil || from.Index < 0 || from.Index >= len(r.Frames) {
		return Frame{}, false
	}
	return firstContaining(r.Frames[from.Index:], text)
}

// FramesAfter returns the frames recorded after the given one.
func (r *Recording) FramesAfter(frame Frame) []Frame {
	if r == nil || frame.Index+1 >= len(r.Frames) {
		return nil
	}
	return r.Frames[frame.Index+1:]
}

// PlainTail is the plain text of the final frame, or a marker when nothing
// was captured. Tests print it when an expected screen never appeared.
func (r *Recording) PlainTail() string {
	frame, ok := r.FinalFrame()
	if !ok {
		return "(no frames)"
	}
	return frame.Plain
}

func firstContaining(frames []Frame, text string) (Frame, bool) {
	for _, frame := range frames {
		if strings.Contains(frame.Plain, text) {
			return frame, true
		}
	}
	return Frame{}, false
}
