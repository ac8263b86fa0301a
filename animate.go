package lolcat

import "time"

// animateLine re-renders one line Duration times at successive color
// offsets, restoring the cursor to the line start between frames. The
// cursor is hidden once per run on the first animated line and shown
// again by Finalize.
func (p *Printer) animateLine(text string, newline bool) error {
	if !p.cursorHidden {
		if _, err := p.out.WriteString(hideCursor); err != nil {
			return err
		}
		p.cursorHidden = true
	}
	if _, err := p.out.WriteString(saveCursor); err != nil {
		return err
	}

	saved := p.os
	period := time.Duration(float64(time.Second) / p.cfg.Speed)
	deadline := p.now()
	for i := 0; i < p.cfg.Duration; i++ {
		if _, err := p.out.WriteString(restoreCursor); err != nil {
			return err
		}
		// Shift the whole line's starting hue one spread per frame.
		p.os += p.cfg.Spread
		p.lineActive = false
		if err := p.renderLine(text, false); err != nil {
			return err
		}
		if err := p.out.Flush(); err != nil {
			return err
		}
		// Absolute deadlines keep render time from accumulating into
		// drift; an overrun frame just skips its sleep.
		deadline = deadline.Add(period)
		if d := deadline.Sub(p.now()); d > 0 {
			p.sleep(d)
		}
	}

	// Static lines continue the rainbow as if the animation had never
	// consumed offset.
	p.os = saved
	p.lineActive = false
	if newline {
		if err := p.out.WriteByte('\n'); err != nil {
			return err
		}
		p.os++
	}
	return nil
}
