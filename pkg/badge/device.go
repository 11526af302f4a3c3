// Package badge provides the data model, wire encoding and device transports
// for 44x11 LED name badges.
//
// The badges enumerate as USB HID devices (0416:5020) and accept a single
// upload of up to eight messages. Every upload starts with a 64-byte header
// describing each message (speed, animation mode, blink, border, length)
// followed by the message bitmaps, encoded as 8-pixel wide byte columns of
// 11 rows each. The badge stores the upload and starts scrolling it right away.
package badge

import (
	"fmt"
	"os"
)

const (
	// VendorID is the USB vendor id of the badge controller.
	VendorID = 0x0416

	// ProductID is the USB product id of the badge controller.
	ProductID = 0x5020

	// ReportSize is the size of a single HID output report.
	// Payloads are always sent as a whole number of reports.
	ReportSize = 64
)

// Width is the visible width of the badge in pixels. Messages wider than this scroll.
const Width = 44

// Height of the display in pixels.
const Height = 11

// TextBaseline is the display row the 5x8 and outline fonts put their
// baseline on, leaving room for descenders in the last two rows. Some
// bitmap fonts sit one or two rows higher.
const TextBaseline = 9

// Verbose enables debug output when set to true
var Verbose = false

// SetVerbose enables or disables verbose debug output globally
func SetVerbose(v bool) {
	Verbose = v
}

// debugf prints debug output if verbose mode is enabled
func debugf(format string, args ...interface{}) {
	if Verbose {
		fmt.Fprintf(os.Stderr, "[BADGE] "+format+"\n", args...)
	}
}

// debugBytes logs a byte slice, truncated after 20 bytes.
func debugBytes(label string, data []byte) {
	if !Verbose {
		return
	}
	if len(data) <= 20 {
		debugf("%s %d bytes: % 02X", label, len(data), data)
	} else {
		debugf("%s %d bytes: % 02X... (truncated)", label, len(data), data[:20])
	}
}
