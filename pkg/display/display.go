// Package display provides the high-level commands for an LED name badge:
// show a text, show a bitmap, show a batch of messages, list badges.
//
// Every command builds the whole upload first and only then talks to the
// hardware, so a bad message never leaves the badge half written.
package display

import (
	"fmt"
	"time"

	"github.com/sagostin/ledbadge/pkg/badge"
	"github.com/sagostin/ledbadge/pkg/font"
)

const component = "display"

// Display sends messages to the single badge reachable through a transport.
// It keeps no state between calls; every command opens the badge afresh.
type Display struct {
	transport badge.Transport
	logger    Logger
	now       func() time.Time
}

// Option configures a Display.
type Option func(*Display)

// WithLogger sets the logger used for command progress.
func WithLogger(l Logger) Option {
	return func(d *Display) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithClock sets the time source for the upload timestamp.
func WithClock(now func() time.Time) Option {
	return func(d *Display) {
		if now != nil {
			d.now = now
		}
	}
}

// New creates a Display using the given transport.
func New(t badge.Transport, opts ...Option) *Display {
	d := &Display{
		transport: t,
		logger:    NoopLogger{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetText shows a single line of text.
func (d *Display) SetText(text string, speedCode int, modeKey string, effects []string, fontFamily int, fontSubtype string) error {
	return d.SetMessages([]Message{{
		Content:     Text(text),
		Speed:       speedCode,
		Mode:        modeKey,
		Effects:     effects,
		FontFamily:  fontFamily,
		FontSubtype: fontSubtype,
	}})
}

// SetDrawable shows caller supplied pixels. pixels is row-major with the
// given width.
func (d *Display) SetDrawable(pixels []bool, width int, speedCode int, modeKey string, effects []string) error {
	return d.SetMessages([]Message{{
		Content: Pixels(pixels, width),
		Speed:   speedCode,
		Mode:    modeKey,
		Effects: effects,
	}})
}

// SetMessages shows a batch of messages in order. All of them are rendered
// before the badge is opened; the first bad message fails the batch and
// nothing is written.
func (d *Display) SetMessages(msgs []Message) error {
	p, err := Compose(msgs)
	if err != nil {
		d.logger.Errorf(component, "compose: %v", err)
		return err
	}

	data, err := badge.EncodeAt(p, d.now())
	if err != nil {
		d.logger.Errorf(component, "encode: %v", err)
		return err
	}

	if err := badge.SendRaw(d.transport, data); err != nil {
		d.logger.Errorf(component, "send: %v", err)
		return err
	}
	d.logger.Infof(component, "sent %d message(s), %d bytes", p.Len(), len(data))
	return nil
}

// ListDevices returns the identifiers of the connected badges.
func (d *Display) ListDevices() ([]string, error) {
	ids, err := badge.ListDevices(d.transport)
	if err != nil {
		d.logger.Errorf(component, "list: %v", err)
		return nil, err
	}
	d.logger.Infof(component, "%d device(s) connected", len(ids))
	return ids, nil
}

// Compose renders messages into a payload without sending it.
//
// The payload itself has no message limit; the encoder rejects more than
// badge.MaxFrames frames. Compose fails early with the same
// badge.ErrTooManyFrames so an oversized batch is not rendered first.
func Compose(msgs []Message) (badge.Payload, error) {
	if len(msgs) > badge.MaxFrames {
		return badge.Payload{}, fmt.Errorf("%d messages: %w", len(msgs), badge.ErrTooManyFrames)
	}

	p := badge.NewPayload()
	for i, m := range msgs {
		style, bmp, err := m.Render()
		if err != nil {
			return badge.Payload{}, fmt.Errorf("message %d: %w", i+1, err)
		}
		p = p.Append(style, bmp)
	}
	return p, nil
}

// Render resolves the message style and draws its content.
func (m Message) Render() (badge.Style, badge.Bitmap, error) {
	style := badge.Resolve(m.Speed, m.Mode, m.Effects)

	switch m.Content.Kind {
	case ContentText:
		spec, err := font.Lookup(m.FontFamily, m.FontSubtype)
		if err != nil {
			return style, badge.Bitmap{}, err
		}
		bmp, err := font.Rasterize(m.Content.Text, spec, style.Flags.Invert)
		if err != nil {
			return style, badge.Bitmap{}, err
		}
		return style, bmp, nil

	case ContentPixels:
		// raw pixels are shown as given, the inverted effect does not apply
		bmp, err := badge.FromPixels(m.Content.Pixels, m.Content.Width)
		if err != nil {
			return style, badge.Bitmap{}, err
		}
		return style, bmp, nil

	default:
		return style, badge.Bitmap{}, fmt.Errorf("unknown content kind %d", m.Content.Kind)
	}
}
