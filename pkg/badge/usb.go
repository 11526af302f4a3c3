package badge

import (
	"fmt"

	"github.com/google/gousb"
)

// DefaultOutEndpoint is the interrupt OUT endpoint the badge receives reports on.
const DefaultOutEndpoint = 1

// USBTransport talks to badges through libusb.
type USBTransport struct {
	VendorID    gousb.ID
	ProductID   gousb.ID
	OutEndpoint int
}

// NewUSBTransport returns a transport for the standard badge ids.
func NewUSBTransport() *USBTransport {
	return &USBTransport{
		VendorID:    VendorID,
		ProductID:   ProductID,
		OutEndpoint: DefaultOutEndpoint,
	}
}

func usbID(desc *gousb.DeviceDesc) string {
	return fmt.Sprintf("usb:%03d:%03d", desc.Bus, desc.Address)
}

func (t *USBTransport) matches(desc *gousb.DeviceDesc) bool {
	return desc.Vendor == t.VendorID && desc.Product == t.ProductID
}

// List returns bus:address identifiers of all matching devices.
func (t *USBTransport) List() ([]string, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	var ids []string
	// Only descriptors are needed, so nothing is opened here.
	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if t.matches(desc) {
			ids = append(ids, usbID(desc))
		}
		return false
	})
	for _, d := range devs {
		d.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("libusb enumeration: %w", err)
	}
	return ids, nil
}

// Open claims the default interface of the device with the given identifier.
func (t *USBTransport) Open(id string) (Handle, error) {
	ctx := gousb.NewContext()

	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return t.matches(desc) && usbID(desc) == id
	})
	if err != nil {
		for _, d := range devs {
			d.Close()
		}
		ctx.Close()
		return nil, &TransportError{Op: "open", Device: id, Kind: ErrOpenFailed, Err: err}
	}
	if len(devs) == 0 {
		ctx.Close()
		return nil, &TransportError{Op: "open", Device: id, Kind: ErrNoDevice}
	}
	dev := devs[0]
	for _, d := range devs[1:] {
		d.Close()
	}

	// The kernel HID driver owns the badge by default.
	if err := dev.SetAutoDetach(true); err != nil {
		debugf("SetAutoDetach failed: %v (continuing anyway)", err)
	}

	intf, done, err := dev.DefaultInterface()
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, &TransportError{Op: "open", Device: id, Kind: ErrOpenFailed, Err: err}
	}

	ep, err := intf.OutEndpoint(t.OutEndpoint)
	if err != nil {
		done()
		dev.Close()
		ctx.Close()
		return nil, &TransportError{Op: "open", Device: id, Kind: ErrOpenFailed, Err: err}
	}

	debugf("Opened %s (endpoint %d)", id, t.OutEndpoint)
	return &usbHandle{id: id, ctx: ctx, dev: dev, done: done, ep: ep}, nil
}

type usbHandle struct {
	id   string
	ctx  *gousb.Context
	dev  *gousb.Device
	done func()
	ep   *gousb.OutEndpoint
}

func (h *usbHandle) ID() string { return h.id }

func (h *usbHandle) Write(data []byte) error {
	for i, report := range splitReports(data) {
		n, err := h.ep.Write(report)
		if err != nil {
			return fmt.Errorf("report %d: %w", i, err)
		}
		if n != len(report) {
			return fmt.Errorf("report %d: short write (%d of %d bytes)", i, n, len(report))
		}
	}
	return nil
}

func (h *usbHandle) Close() error {
	debugf("Closing %s", h.id)
	if h.done != nil {
		h.done()
		h.done = nil
	}
	var err error
	if h.dev != nil {
		err = h.dev.Close()
		h.dev = nil
	}
	if h.ctx != nil {
		if cerr := h.ctx.Close(); err == nil {
			err = cerr
		}
		h.ctx = nil
	}
	return err
}
