package hal

// Keycode prefixes understood by TinyGo's USB keyboard.
const (
	hidModifierCode uint16 = 0xE000
	hidKeyCode      uint16 = 0xF000
)

// keyDiff turns successive boot reports into press and release calls for
// keyboards that track key state themselves. applied only records calls
// that succeeded, so a report that failed halfway is replayed in full.
type keyDiff struct {
	down func(code uint16) error
	up   func(code uint16) error

	applied [8]byte
}

func (d *keyDiff) apply(r [8]byte) error {
	for bit := 0; bit < 8; bit++ {
		mask := byte(1) << uint(bit)
		code := hidModifierCode | uint16(mask)
		switch {
		case d.applied[0]&mask != 0 && r[0]&mask == 0:
			if err := d.up(code); err != nil {
				return err
			}
			d.applied[0] &^= mask
		case d.applied[0]&mask == 0 && r[0]&mask != 0:
			if err := d.down(code); err != nil {
				return err
			}
			d.applied[0] |= mask
		}
	}

	for i, k := range d.applied[2:] {
		if k == 0 || hasUsage(r[2:], k) {
			continue
		}
		if err := d.up(hidKeyCode | uint16(k)); err != nil {
			return err
		}
		d.applied[2+i] = 0
	}
	for _, k := range r[2:] {
		if k == 0 || hasUsage(d.applied[2:], k) {
			continue
		}
		slot := freeSlot(d.applied[2:])
		if slot < 0 {
			break
		}
		if err := d.down(hidKeyCode | uint16(k)); err != nil {
			return err
		}
		d.applied[2+slot] = k
	}
	return nil
}

func hasUsage(slots []byte, k byte) bool {
	for _, s := range slots {
		if s == k {
			return true
		}
	}
	return false
}

func freeSlot(slots []byte) int {
	for i, s := range slots {
		if s == 0 {
			return i
		}
	}
	return -1
}
