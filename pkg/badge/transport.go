package badge

import (
	"errors"
	"fmt"
)

// Transport finds connected badges and opens them for writing.
type Transport interface {
	// List returns an identifier for every connected badge.
	List() ([]string, error)

	// Open opens the badge with the given identifier.
	Open(id string) (Handle, error)
}

// Handle is an open connection to exactly one badge.
type Handle interface {
	// ID returns the identifier the handle was opened with.
	ID() string

	// Write sends data to the badge as a sequence of reports. It blocks until
	// the transfer is complete.
	Write(data []byte) error

	// Close releases the device.
	Close() error
}

var (
	// ErrNoDevice means no badge is connected.
	ErrNoDevice = errors.New("no badge found")

	// ErrMultipleDevices means more than one badge is connected.
	ErrMultipleDevices = errors.New("more than one badge found")

	// ErrEnumerateFailed means the transport could not list devices.
	ErrEnumerateFailed = errors.New("device enumeration failed")

	// ErrOpenFailed means a listed badge could not be opened.
	ErrOpenFailed = errors.New("cannot open badge")

	// ErrWriteFailed means the transfer to the badge failed or was cut short.
	ErrWriteFailed = errors.New("write to badge failed")
)

// TransportError describes a failed transport operation.
// Kind is one of the Err* sentinels above; Err is the underlying cause, if any.
type TransportError struct {
	Op     string
	Device string
	Kind   error
	Err    error
}

func (e *TransportError) Error() string {
	msg := e.Op
	if e.Device != "" {
		msg += " " + e.Device
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel and the cause to errors.Is and errors.As.
func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ListDevices returns the identifiers of all connected badges.
func ListDevices(t Transport) ([]string, error) {
	ids, err := t.List()
	if err != nil {
		return nil, &TransportError{Op: "list", Kind: ErrEnumerateFailed, Err: err}
	}
	debugf("Found %d device(s): %v", len(ids), ids)
	return ids, nil
}

// SelectSingle opens the one connected badge. It fails when no badge or
// more than one badge is connected; it never picks one of several.
func SelectSingle(t Transport) (Handle, error) {
	ids, err := ListDevices(t)
	if err != nil {
		return nil, err
	}

	switch len(ids) {
	case 0:
		return nil, &TransportError{Op: "select", Kind: ErrNoDevice}
	case 1:
	default:
		return nil, &TransportError{
			Op:   "select",
			Kind: ErrMultipleDevices,
			Err:  fmt.Errorf("%d connected: %v", len(ids), ids),
		}
	}

	h, err := t.Open(ids[0])
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) {
			return nil, err
		}
		return nil, &TransportError{Op: "open", Device: ids[0], Kind: ErrOpenFailed, Err: err}
	}
	debugf("Selected %s", h.ID())
	return h, nil
}

// Write encodes the payload and sends it through an open handle.
// Encoding errors are returned before anything is sent.
func Write(h Handle, p Payload) error {
	data, err := Encode(p)
	if err != nil {
		return err
	}
	return writeEncoded(h, data)
}

// WriteRaw sends an already encoded upload. The length must be a multiple
// of ReportSize.
func WriteRaw(h Handle, data []byte) error {
	if len(data) == 0 || len(data)%ReportSize != 0 {
		return fmt.Errorf("raw upload must be a non-empty multiple of %d bytes, got %d", ReportSize, len(data))
	}
	return writeEncoded(h, data)
}

func writeEncoded(h Handle, data []byte) error {
	debugBytes("Writing to "+h.ID(), data)
	if err := h.Write(data); err != nil {
		var te *TransportError
		if errors.As(err, &te) {
			return err
		}
		return &TransportError{Op: "write", Device: h.ID(), Kind: ErrWriteFailed, Err: err}
	}
	debugf("Write complete")
	return nil
}

// Send selects the single connected badge, writes the payload to it and
// closes it again. The payload is encoded before any device is touched.
func Send(t Transport, p Payload) error {
	data, err := Encode(p)
	if err != nil {
		return err
	}
	return SendRaw(t, data)
}

// SendRaw is Send for an already encoded upload.
func SendRaw(t Transport, data []byte) error {
	h, err := SelectSingle(t)
	if err != nil {
		return err
	}
	defer h.Close()

	return WriteRaw(h, data)
}

// splitReports cuts data into ReportSize chunks, zero padding the last one.
func splitReports(data []byte) [][]byte {
	var reports [][]byte
	for off := 0; off < len(data); off += ReportSize {
		report := make([]byte, ReportSize)
		copy(report, data[off:])
		reports = append(reports, report)
	}
	return reports
}
