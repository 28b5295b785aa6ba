//go:build tinygo && baremetal

package hal

import (
	"machine/usb"
	"machine/usb/hid/keyboard"
)

func init() {
	usb.VendorID = USBVendorID
	usb.ProductID = USBProductID
	usb.Manufacturer = USBManufacturer
	usb.Product = USBProduct
	usb.Serial = USBSerial
}

// usbHID translates boot reports into press and release calls on the TinyGo
// keyboard, which owns the endpoint and its report buffer.
type usbHID struct {
	keys keyDiff
}

func newUSBHID() *usbHID {
	kb := keyboard.Port()
	return &usbHID{keys: keyDiff{
		down: func(c uint16) error { return kb.Down(keyboard.Keycode(c)) },
		up:   func(c uint16) error { return kb.Up(keyboard.Keycode(c)) },
	}}
}

// Configured always reports true; the TinyGo stack drops reports sent
// before enumeration.
func (d *usbHID) Configured() bool { return true }

func (d *usbHID) SendReport(r [8]byte) (bool, error) {
	if err := d.keys.apply(r); err != nil {
		return false, err
	}
	return true, nil
}
