package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sagostin/ledbadge/pkg/badge"
	"github.com/sagostin/ledbadge/pkg/font"
)

// mockTransport records everything written to its devices.
type mockTransport struct {
	ids     []string
	opened  []string
	written []byte
	closed  int
}

func (m *mockTransport) List() ([]string, error) { return m.ids, nil }

func (m *mockTransport) Open(id string) (badge.Handle, error) {
	m.opened = append(m.opened, id)
	return &mockHandle{id: id, t: m}, nil
}

type mockHandle struct {
	id string
	t  *mockTransport
}

func (h *mockHandle) ID() string { return h.id }

func (h *mockHandle) Write(data []byte) error {
	h.t.written = append(h.t.written, data...)
	return nil
}

func (h *mockHandle) Close() error {
	h.t.closed++
	return nil
}

var testTime = time.Date(2026, time.October, 19, 8, 30, 0, 0, time.UTC)

func newTestDisplay(ids ...string) (*Display, *mockTransport) {
	m := &mockTransport{ids: ids}
	return New(m, WithClock(func() time.Time { return testTime })), m
}

func TestSetText_HI(t *testing.T) {
	d, m := newTestDisplay("usb:001:004")

	err := d.SetText("HI", 2, "left", []string{"flashing"}, 0, "5x8")
	if err != nil {
		t.Fatalf("SetText failed: %v", err)
	}
	if m.closed != 1 {
		t.Errorf("device should be closed once, got %d", m.closed)
	}

	data := m.written
	if len(data) != 128 {
		t.Fatalf("expected 128 bytes, got %d", len(data))
	}
	if data[6] != 0x01 || data[7] != 0x00 {
		t.Errorf("expected blink only, got blink=0x%02X border=0x%02X", data[6], data[7])
	}
	if data[8] != 0x20 {
		t.Errorf("expected speed 2 / mode left (0x20), got 0x%02X", data[8])
	}
	if data[16] != 0 || data[17] != 2 {
		t.Errorf("expected 2 byte columns, got % 02X", data[16:18])
	}
	if data[9] != 0 || data[19] != 0 {
		t.Error("only one message should be announced")
	}

	// the 8-row glyph cell starts on display row 2
	body := data[64:]
	want0 := []byte{0x00, 0x00, 0x00, 0x97, 0x92, 0xF2, 0x92, 0x92, 0x97, 0x00, 0x00}
	want1 := make([]byte, badge.Height)
	if !bytes.Equal(body[:11], want0) {
		t.Errorf("column 0:\nexpected % 02X\n     got % 02X", want0, body[:11])
	}
	if !bytes.Equal(body[11:22], want1) {
		t.Errorf("column 1:\nexpected % 02X\n     got % 02X", want1, body[11:22])
	}
}

func TestSetText_MatchesRasterizer(t *testing.T) {
	msg := Message{Content: Text("HI"), Speed: 2, Mode: "left", Effects: []string{"flashing"}, FontSubtype: "5x8"}
	p, err := Compose([]Message{msg})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if p.Len() != 1 {
		t.Fatalf("expected one frame, got %d", p.Len())
	}

	f := p.Frames()[0]
	if !f.Style.Flags.Blink || f.Style.Flags.Border || f.Style.Flags.Invert {
		t.Errorf("unexpected flags: %s", f.Style)
	}

	spec, _ := font.Lookup(0, "5x8")
	want, _ := font.Rasterize("HI", spec, false)
	if f.Bitmap.String() != want.String() || f.Bitmap.Top() != want.Top() {
		t.Errorf("bitmap differs from the rasterizer:\n%s\nvs\n%s", f.Bitmap, want)
	}
}

func TestSetText_NoDevice(t *testing.T) {
	d, m := newTestDisplay()

	err := d.SetText("HI", 2, "left", []string{"flashing"}, 0, "5x8")
	var te *badge.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if !errors.Is(err, badge.ErrNoDevice) {
		t.Errorf("expected ErrNoDevice, got %v", err)
	}
	if len(m.opened) != 0 || len(m.written) != 0 {
		t.Error("nothing should be written without a device")
	}
}

func TestSetText_MultipleDevices(t *testing.T) {
	d, m := newTestDisplay("usb:001:004", "usb:001:005")

	err := d.SetText("HI", 2, "left", nil, 0, "5x8")
	if !errors.Is(err, badge.ErrMultipleDevices) {
		t.Fatalf("expected ErrMultipleDevices, got %v", err)
	}
	if len(m.written) != 0 {
		t.Error("nothing should be written to one of several devices")
	}
}

func TestSetText_UnknownFont(t *testing.T) {
	d, m := newTestDisplay("dev")

	err := d.SetText("HI", 2, "left", nil, 0, "7x13")
	var re *font.ResolutionError
	if !errors.As(err, &re) {
		t.Fatalf("expected ResolutionError, got %v", err)
	}
	if len(m.opened) != 0 {
		t.Error("the device should not be touched when the font is unknown")
	}
}

func TestSetMessages_BatchFailsAsAWhole(t *testing.T) {
	d, m := newTestDisplay("dev")

	msgs := []Message{
		DefaultMessage(Text("ok")),
		DefaultMessage(Text("naïve")),
		DefaultMessage(Text("never rendered")),
	}
	err := d.SetMessages(msgs)
	if err == nil {
		t.Fatal("expected an error for the unsupported character")
	}
	if !strings.HasPrefix(err.Error(), "message 2:") {
		t.Errorf("error should name the failing message, got %q", err)
	}
	if len(m.opened) != 0 || len(m.written) != 0 {
		t.Error("a failing batch must not write anything")
	}
}

func TestSetMessages_TooMany(t *testing.T) {
	d, m := newTestDisplay("dev")

	msgs := make([]Message, badge.MaxFrames+1)
	for i := range msgs {
		msgs[i] = DefaultMessage(Text("x"))
	}
	if err := d.SetMessages(msgs); !errors.Is(err, badge.ErrTooManyFrames) {
		t.Errorf("expected ErrTooManyFrames, got %v", err)
	}
	if len(m.opened) != 0 {
		t.Error("the device should not be touched")
	}
}

func TestSetMessages_Order(t *testing.T) {
	d, m := newTestDisplay("dev")

	msgs := []Message{
		{Content: Text("A"), Speed: 0, Mode: "left", FontSubtype: "5x8"},
		{Content: Pixels([]bool{true}, 1), Speed: 1, Mode: "right"},
		{Content: Text("C"), Speed: 2, Mode: "up", FontFamily: 1, FontSubtype: "go mono"},
	}
	if err := d.SetMessages(msgs); err != nil {
		t.Fatalf("SetMessages failed: %v", err)
	}
	if got := m.written[8:11]; !bytes.Equal(got, []byte{0x00, 0x11, 0x22}) {
		t.Errorf("messages reordered, speed/mode bytes % 02X", got)
	}
}

func TestSetDrawable_IgnoresInverted(t *testing.T) {
	d, m := newTestDisplay("dev")

	// 3 wide: (0,0), (2,0), (1,1)
	px := []bool{true, false, true, false, true, false}
	if err := d.SetDrawable(px, 3, 4, "still", []string{"inverted", "border"}); err != nil {
		t.Fatalf("SetDrawable failed: %v", err)
	}

	data := m.written
	if data[7] != 0x01 {
		t.Errorf("expected border flag, got 0x%02X", data[7])
	}
	if data[8] != 0x44 {
		t.Errorf("expected speed 4 / still (0x44), got 0x%02X", data[8])
	}
	body := data[64:]
	if body[0] != 0xA0 || body[1] != 0x40 || body[2] != 0x00 {
		t.Errorf("raw pixels should be sent as given, got % 02X", body[:3])
	}
}

func TestSetDrawable_BadWidth(t *testing.T) {
	d, m := newTestDisplay("dev")

	if err := d.SetDrawable([]bool{true}, 0, 4, "left", nil); err == nil {
		t.Error("expected an error for width 0")
	}
	if len(m.opened) != 0 {
		t.Error("the device should not be touched")
	}
}

func TestSetDrawable_TooWide(t *testing.T) {
	d, m := newTestDisplay("dev")

	for _, w := range []int{badge.MaxWidth + 1, 1 << 62} {
		err := d.SetDrawable([]bool{true}, w, 4, "left", nil)
		if !errors.Is(err, badge.ErrFrameTooWide) {
			t.Errorf("width %d: expected ErrFrameTooWide, got %v", w, err)
		}
	}
	if len(m.opened) != 0 {
		t.Error("the device should not be touched")
	}
}

func TestSetText_Timestamp(t *testing.T) {
	d, m := newTestDisplay("dev")

	if err := d.SetText("", 4, "left", nil, 0, "5x8"); err != nil {
		t.Fatalf("SetText failed: %v", err)
	}
	want := []byte{26, 10, 19, 8, 30, 0}
	if got := m.written[38:44]; !bytes.Equal(got, want) {
		t.Errorf("timestamp: expected % 02X, got % 02X", want, got)
	}
}

func TestListDevices(t *testing.T) {
	d, _ := newTestDisplay("usb:001:004", "usb:002:007")

	ids, err := d.ListDevices()
	if err != nil {
		t.Fatalf("ListDevices failed: %v", err)
	}
	if len(ids) != 2 || ids[1] != "usb:002:007" {
		t.Errorf("unexpected ids: %v", ids)
	}
}

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	m := &mockTransport{}
	d := New(m, WithLogger(NewWriterLogger(&buf)))

	_ = d.SetText("HI", 0, "left", nil, 0, "5x8")

	if !strings.Contains(buf.String(), "[ERROR] display: send:") {
		t.Errorf("expected a logged send error, got %q", buf.String())
	}
}

func TestContent_Kind(t *testing.T) {
	if Text("").Kind != ContentText {
		t.Error("empty text is still text")
	}
	if Pixels(nil, 1).Kind != ContentPixels {
		t.Error("empty pixels are still pixels")
	}

	px := []bool{true}
	c := Pixels(px, 1)
	px[0] = false
	if !c.Pixels[0] {
		t.Error("Pixels should copy its input")
	}
}

func TestMessage_UnknownKind(t *testing.T) {
	m := Message{Content: Content{Kind: ContentKind(9)}}
	if _, _, err := m.Render(); err == nil {
		t.Error("expected an error for an unknown content kind")
	}
}
