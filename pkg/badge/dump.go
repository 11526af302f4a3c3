package badge

import (
	"encoding/hex"
	"fmt"
	"io"
)

// DumpID is the identifier of the single pseudo device of a DumpTransport.
const DumpID = "dump"

// DumpTransport pretends exactly one badge is connected and writes a hex
// dump of every report to W. Useful to inspect uploads without hardware.
type DumpTransport struct {
	W io.Writer
}

// List returns the single pseudo device.
func (t *DumpTransport) List() ([]string, error) {
	return []string{DumpID}, nil
}

// Open returns a handle that dumps to W.
func (t *DumpTransport) Open(id string) (Handle, error) {
	if id != DumpID {
		return nil, &TransportError{Op: "open", Device: id, Kind: ErrNoDevice}
	}
	return &dumpHandle{w: t.W}, nil
}

type dumpHandle struct {
	w io.Writer
}

func (h *dumpHandle) ID() string { return DumpID }

func (h *dumpHandle) Write(data []byte) error {
	for i, report := range splitReports(data) {
		if _, err := fmt.Fprintf(h.w, "report %d\n", i); err != nil {
			return err
		}
		d := hex.Dumper(h.w)
		if _, err := d.Write(report); err != nil {
			return err
		}
		if err := d.Close(); err != nil {
			return err
		}
	}
	return nil
}

func (h *dumpHandle) Close() error { return nil }
