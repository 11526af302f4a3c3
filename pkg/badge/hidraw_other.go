//go:build !linux

package badge

import "fmt"

// HIDRawTransport is only available on Linux. Elsewhere it finds no devices.
type HIDRawTransport struct {
	VendorID  uint16
	ProductID uint16
}

// NewHIDRawTransport returns a hidraw transport for the standard badge ids.
func NewHIDRawTransport() *HIDRawTransport {
	return &HIDRawTransport{VendorID: VendorID, ProductID: ProductID}
}

// List always returns no devices.
func (t *HIDRawTransport) List() ([]string, error) {
	return nil, nil
}

// Open always fails.
func (t *HIDRawTransport) Open(id string) (Handle, error) {
	return nil, &TransportError{Op: "open", Device: id, Kind: ErrOpenFailed, Err: fmt.Errorf("hidraw is not supported on this platform")}
}
