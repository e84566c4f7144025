package logger

import (
	"strings"
	"time"
)

// countdownRedrawRows moves the cursor from below the banner back to its
// first row; the trailing newline lands one row down, so net movement is
// GlyphRows.
const countdownRedrawRows = GlyphRows + 1

// countdown draws one banner per second from seconds down to 1, redrawing in
// place between frames. No frame is drawn for 0.
func (r *Renderer) countdown(seconds int, style Style) {
	for remaining := seconds; remaining > 0; remaining-- {
		r.drawFrame(remaining, style)
		r.sleep(time.Second)
		if remaining > 1 {
			r.write(strings.Repeat(cursorPrevLine, countdownRedrawRows) + "\n")
		}
	}
}

// drawFrame writes exactly GlyphRows rows for n.
func (r *Renderer) drawFrame(n int, style Style) {
	var b strings.Builder
	for _, row := range Banner(n) {
		b.WriteString(clearLine)
		b.WriteString(style.Wrap(row))
		b.WriteString("\n")
	}
	r.write(b.String())
}
