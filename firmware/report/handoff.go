package report

import (
	"fmt"

	"tx42/firmware/keymap"
)

// Logger receives handoff events.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
}

// Handoff forwards each cycle's keys to the transport. Nothing is queued:
// a report the transport could not take is superseded by the next offer.
type Handoff struct {
	g   *Guard
	log Logger

	last       Report
	hasLast    bool
	configured bool

	sent    uint64
	dropped uint64
}

// NewHandoff returns a handoff sending through g. log may be nil.
func NewHandoff(g *Guard, log Logger) *Handoff {
	return &Handoff{g: g, log: log}
}

// Offer encodes keys and sends the report unless it equals the last one the
// transport accepted. It reports whether a report went out.
func (h *Handoff) Offer(keys keymap.Keys) (bool, error) {
	r := Encode(keys)
	if h.hasLast && r == h.last {
		return false, nil
	}

	var sent bool
	err := h.g.With(func(t Transport) error {
		if !t.Configured() {
			return nil
		}
		if !h.configured {
			h.configured = true
			h.infof("usb configured")
		}
		var err error
		sent, err = t.SendReport([8]byte(r))
		return err
	})
	if err != nil {
		return false, fmt.Errorf("report: send: %w", err)
	}
	if !sent {
		h.dropped++
		return false, nil
	}

	h.last, h.hasLast = r, true
	h.sent++
	h.debugf("sent %s %s", r, keys)
	return true, nil
}

// Last returns the last report the transport accepted.
func (h *Handoff) Last() Report { return h.last }

// Stats returns the number of accepted and superseded reports.
func (h *Handoff) Stats() (sent, dropped uint64) { return h.sent, h.dropped }

func (h *Handoff) debugf(format string, args ...any) {
	if h.log != nil {
		h.log.Debugf(format, args...)
	}
}

func (h *Handoff) infof(format string, args ...any) {
	if h.log != nil {
		h.log.Infof(format, args...)
	}
}
