package hal

import "sync"

// MonoAt reports whether pixel (x, y) of a PixelFormatMono1 buffer is lit.
func MonoAt(buf []byte, stride, x, y int) bool {
	off := y*stride + x/8
	if x < 0 || y < 0 || x >= stride*8 || off >= len(buf) {
		return false
	}
	return buf[off]&(0x80>>uint(x%8)) != 0
}

// SetMono lights or clears pixel (x, y) of a PixelFormatMono1 buffer.
func SetMono(buf []byte, stride, x, y int, on bool) {
	off := y*stride + x/8
	if x < 0 || y < 0 || x >= stride*8 || off >= len(buf) {
		return
	}
	mask := byte(0x80 >> uint(x%8))
	if on {
		buf[off] |= mask
	} else {
		buf[off] &^= mask
	}
}

// monoFramebuffer is drawn into through Buffer and copied to front on Present.
type monoFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
	front  []byte

	flush func(front []byte, width, height, stride int) error
}

func newMonoFramebuffer(width, height int, flush func([]byte, int, int, int) error) *monoFramebuffer {
	stride := (width + 7) / 8
	return &monoFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
		front:  make([]byte, stride*height),
		flush:  flush,
	}
}

func (f *monoFramebuffer) Width() int          { return f.width }
func (f *monoFramebuffer) Height() int         { return f.height }
func (f *monoFramebuffer) Format() PixelFormat { return PixelFormatMono1 }
func (f *monoFramebuffer) StrideBytes() int    { return f.stride }
func (f *monoFramebuffer) Buffer() []byte      { return f.buf }

func (f *monoFramebuffer) Clear() {
	for i := range f.buf {
		f.buf[i] = 0
	}
}

func (f *monoFramebuffer) Present() error {
	f.mu.Lock()
	copy(f.front, f.buf)
	f.mu.Unlock()
	if f.flush == nil {
		return nil
	}
	return f.flush(f.front, f.width, f.height, f.stride)
}

// snapshot copies the last presented frame into dst.
func (f *monoFramebuffer) snapshot(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.front)
}
