//go:build linux

package badge

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

// HIDIOCGRAWINFO from linux/hidraw.h: _IOR('H', 0x03, struct hidraw_devinfo)
const hidiocgRawInfo = 0x80084803

// hidrawDevinfo mirrors struct hidraw_devinfo.
type hidrawDevinfo struct {
	BusType uint32
	Vendor  int16
	Product int16
}

// HIDRawTransport writes to badges through the Linux hidraw driver, which
// needs no libusb and no detaching of the kernel driver.
type HIDRawTransport struct {
	VendorID  uint16
	ProductID uint16

	// SysfsRoot and DevRoot are overridable for tests.
	SysfsRoot string
	DevRoot   string
}

// NewHIDRawTransport returns a hidraw transport for the standard badge ids.
func NewHIDRawTransport() *HIDRawTransport {
	return &HIDRawTransport{
		VendorID:  VendorID,
		ProductID: ProductID,
		SysfsRoot: "/sys/class/hidraw",
		DevRoot:   "/dev",
	}
}

// List scans sysfs for hidraw nodes whose HID_ID matches the badge.
func (t *HIDRawTransport) List() ([]string, error) {
	entries, err := os.ReadDir(t.SysfsRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", t.SysfsRoot, err)
	}

	var ids []string
	for _, e := range entries {
		uevent := filepath.Join(t.SysfsRoot, e.Name(), "device", "uevent")
		vendor, product, err := readHIDID(uevent)
		if err != nil {
			debugf("Skipping %s: %v", e.Name(), err)
			continue
		}
		if vendor == t.VendorID && product == t.ProductID {
			ids = append(ids, filepath.Join(t.DevRoot, e.Name()))
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// readHIDID parses the "HID_ID=0003:00000416:00005020" line of a uevent file.
func readHIDID(path string) (vendor, product uint16, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		value, ok := strings.CutPrefix(scanner.Text(), "HID_ID=")
		if !ok {
			continue
		}
		var bus, v, p uint32
		if _, err := fmt.Sscanf(value, "%x:%x:%x", &bus, &v, &p); err != nil {
			return 0, 0, fmt.Errorf("bad HID_ID %q: %w", value, err)
		}
		return uint16(v), uint16(p), nil
	}
	if err := scanner.Err(); err != nil {
		return 0, 0, err
	}
	return 0, 0, fmt.Errorf("no HID_ID in %s", path)
}

// Open opens a hidraw node and checks it really is a badge.
func (t *HIDRawTransport) Open(id string) (Handle, error) {
	fd, err := unix.Open(id, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &TransportError{Op: "open", Device: id, Kind: ErrOpenFailed, Err: err}
	}

	var info hidrawDevinfo
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), hidiocgRawInfo, uintptr(unsafe.Pointer(&info))); errno != 0 {
		unix.Close(fd)
		return nil, &TransportError{Op: "open", Device: id, Kind: ErrOpenFailed, Err: fmt.Errorf("HIDIOCGRAWINFO: %w", errno)}
	}
	if uint16(info.Vendor) != t.VendorID || uint16(info.Product) != t.ProductID {
		unix.Close(fd)
		return nil, &TransportError{
			Op:     "open",
			Device: id,
			Kind:   ErrOpenFailed,
			Err:    fmt.Errorf("unexpected device %04x:%04x", uint16(info.Vendor), uint16(info.Product)),
		}
	}

	debugf("Opened %s", id)
	return &hidrawHandle{id: id, fd: fd}, nil
}

type hidrawHandle struct {
	id string
	fd int
}

func (h *hidrawHandle) ID() string { return h.id }

// Write sends each report prefixed with report number 0, as hidraw expects
// for devices without numbered reports.
func (h *hidrawHandle) Write(data []byte) error {
	buf := make([]byte, ReportSize+1)
	for i, report := range splitReports(data) {
		buf[0] = 0
		copy(buf[1:], report)
		n, err := unix.Write(h.fd, buf)
		if err != nil {
			return fmt.Errorf("report %d: %w", i, err)
		}
		if n != len(buf) {
			return fmt.Errorf("report %d: short write (%d of %d bytes)", i, n, len(buf))
		}
	}
	return nil
}

func (h *hidrawHandle) Close() error {
	if h.fd < 0 {
		return nil
	}
	debugf("Closing %s", h.id)
	err := unix.Close(h.fd)
	h.fd = -1
	return err
}
