//go:build !tinygo && cgo

package hal

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	clickSampleRate = 44100
	clickFreq       = 2400
	clickLength     = clickSampleRate / 80
)

// hostClicker plays a short tick whenever the simulated keyboard sends a
// new report.
type hostClicker struct {
	player *audio.Player
}

func newHostClicker() *hostClicker {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(clickSampleRate)
	}
	return &hostClicker{player: ctx.NewPlayerFromBytes(clickPCM())}
}

func (c *hostClicker) click() {
	if c == nil || c.player == nil {
		return
	}
	if err := c.player.Rewind(); err != nil {
		return
	}
	c.player.Play()
}

// clickPCM renders a decaying square wave as 16-bit stereo little endian.
func clickPCM() []byte {
	buf := make([]byte, clickLength*4)
	period := clickSampleRate / clickFreq
	for i := 0; i < clickLength; i++ {
		amp := 6000 * math.Exp(-float64(i)/float64(clickLength/5))
		v := int16(amp)
		if (i/(period/2))%2 == 1 {
			v = -v
		}
		j := i * 4
		buf[j+0] = byte(v)
		buf[j+1] = byte(v >> 8)
		buf[j+2] = byte(v)
		buf[j+3] = byte(v >> 8)
	}
	return buf
}
