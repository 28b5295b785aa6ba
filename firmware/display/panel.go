// Package display renders the keyboard's status panel on the OLED.
//
// The top band shows the active layer with its icon; the rest is a small
// console fed with log lines.
package display

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	"tx42/firmware/icons"
	"tx42/firmware/scan"
	"tx42/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

const (
	bannerHeight = 22
	consoleTop   = bannerHeight + 2
	iconScale    = 2

	fontHeight = 10
	fontOffset = 6

	// DefaultRefresh is how often Run presents a changed frame.
	DefaultRefresh = 50 * time.Millisecond
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}

	font = &proggy.TinySZ8pt7b
)

// DefaultLayerIcons are shown for layers 1, 2 and 3.
var DefaultLayerIcons = []*icons.Icon{icons.SmallHeart, icons.Candy, icons.Lollipop}

// Panel owns the framebuffer. Only the goroutine running Run draws into it.
type Panel struct {
	fb      hal.Framebuffer
	d       *FBDisplay
	term    *tinyterm.Terminal
	board   string
	icons   []*icons.Icon
	refresh time.Duration

	lines  chan string
	status scan.Status
	dirty  bool
}

// Option configures a Panel.
type Option func(*Panel)

// WithLayerIcons overrides the per-layer icons.
func WithLayerIcons(set []*icons.Icon) Option {
	return func(p *Panel) { p.icons = set }
}

// WithRefresh sets the present period used by Run.
func WithRefresh(d time.Duration) Option {
	return func(p *Panel) { p.refresh = d }
}

// NewPanel clears fb and draws the initial frame.
func NewPanel(fb hal.Framebuffer, board string, opts ...Option) (*Panel, error) {
	if fb == nil {
		return nil, fmt.Errorf("display: no framebuffer")
	}
	if fb.Format() != hal.PixelFormatMono1 {
		return nil, fmt.Errorf("display: unsupported pixel format %d", fb.Format())
	}
	p := &Panel{
		fb:      fb,
		d:       NewFBDisplay(fb),
		board:   board,
		icons:   DefaultLayerIcons,
		refresh: DefaultRefresh,
		lines:   make(chan string, 16),
	}
	for _, opt := range opts {
		opt(p)
	}

	fb.Clear()
	_, h := p.d.Size()
	rows := (h - consoleTop) / fontHeight
	p.term = tinyterm.NewTerminal(&region{base: p.d, top: consoleTop, height: rows * fontHeight})
	p.term.Configure(&tinyterm.Config{
		Font:       font,
		FontHeight: fontHeight,
		FontOffset: fontOffset,
	})
	p.Show(scan.Status{Name: "base"})
	return p, nil
}

// WriteLineString queues s for the console. Lines are dropped while the
// queue is full so callers never wait on the display.
func (p *Panel) WriteLineString(s string) {
	select {
	case p.lines <- s:
	default:
	}
}

func (p *Panel) WriteLineBytes(b []byte) { p.WriteLineString(string(b)) }

// Show redraws the banner for st.
func (p *Panel) Show(st scan.Status) {
	p.status = st
	w, _ := p.d.Size()
	_ = p.d.FillRectangle(0, 0, w, bannerHeight, black)

	if len(p.icons) > 0 {
		ic := p.icons[st.Layer%len(p.icons)]
		icons.Draw(p.d, ic, 2, int16(bannerHeight-ic.Height()*iconScale)/2, iconScale, white)
	}
	tinyfont.WriteLine(p.d, font, 28, 9, fmt.Sprintf("%s  L%d", p.board, st.Layer+1), white)
	tinyfont.WriteLine(p.d, font, 28, 19, st.Name, white)
	_ = p.d.FillRectangle(0, bannerHeight, w, 1, white)
	p.dirty = true
}

// Status returns the status last shown.
func (p *Panel) Status() scan.Status { return p.status }

// Println writes one line to the console.
func (p *Panel) Println(s string) {
	s = strings.TrimPrefix(s, "[info] ")
	_, _ = p.term.Write([]byte(s + "\r\n"))
	p.dirty = true
}

// Flush presents the frame if anything changed since the last flush.
func (p *Panel) Flush() error {
	if !p.dirty {
		return nil
	}
	p.dirty = false
	return p.fb.Present()
}

// Run draws status updates and queued console lines until ctx is done.
func (p *Panel) Run(ctx context.Context, status <-chan scan.Status) error {
	t := time.NewTicker(p.refresh)
	defer t.Stop()
	if err := p.Flush(); err != nil {
		return fmt.Errorf("display: present: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case st := <-status:
			p.Show(st)
		case line := <-p.lines:
			p.Println(line)
		case <-t.C:
			if err := p.Flush(); err != nil {
				return fmt.Errorf("display: present: %w", err)
			}
		}
	}
}
