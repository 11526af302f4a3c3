package display

import (
	"fmt"
	"image"
	"time"

	"github.com/sagostin/ledbadge/pkg/badge"
)

// StatusLine represents a label-value pair for status display.
type StatusLine struct {
	Label string
	Value string
}

// StatusTemplate shows key-value pairs, one message per line. The title,
// if any, comes first and is drawn inverted. Lines past badge.MaxFrames
// are dropped.
type StatusTemplate struct {
	Title string
	Lines []StatusLine

	// Base supplies style and font for every message; its content is
	// ignored.
	Base Message
}

// Messages returns the batch for the template.
func (t *StatusTemplate) Messages() []Message {
	var msgs []Message

	if t.Title != "" {
		m := t.Base
		m.Content = Text(t.Title)
		m.Effects = append(append([]string(nil), t.Base.Effects...), badge.EffectInverted)
		msgs = append(msgs, m)
	}

	for _, line := range t.Lines {
		if len(msgs) == badge.MaxFrames {
			break
		}

		// Format: "Label: Value"
		text := line.Label
		if line.Value != "" {
			text = line.Label + ": " + line.Value
		}

		m := t.Base
		m.Content = Text(text)
		msgs = append(msgs, m)
	}

	return msgs
}

// Render sends the template to the badge.
func (t *StatusTemplate) Render(d *Display) error {
	return d.SetMessages(t.Messages())
}

// SystemStatus is a predefined template for host information.
type SystemStatus struct {
	Hostname  string
	Uptime    time.Duration
	CPU       float64
	MemUsed   uint64
	MemTotal  uint64
	LoadAvg   string
	IPAddress string
}

// ToTemplate converts SystemStatus to a StatusTemplate.
func (s *SystemStatus) ToTemplate(base Message) *StatusTemplate {
	lines := []StatusLine{}

	if s.Hostname != "" {
		lines = append(lines, StatusLine{Label: "Host", Value: s.Hostname})
	}

	if s.Uptime > 0 {
		lines = append(lines, StatusLine{Label: "Up", Value: formatDuration(s.Uptime)})
	}

	if s.CPU > 0 {
		lines = append(lines, StatusLine{Label: "CPU", Value: fmt.Sprintf("%.1f%%", s.CPU)})
	}

	if s.MemTotal > 0 {
		memPct := float64(s.MemUsed) / float64(s.MemTotal) * 100
		lines = append(lines, StatusLine{Label: "Mem", Value: fmt.Sprintf("%.1f%%", memPct)})
	}

	if s.LoadAvg != "" {
		lines = append(lines, StatusLine{Label: "Load", Value: s.LoadAvg})
	}

	if s.IPAddress != "" {
		lines = append(lines, StatusLine{Label: "IP", Value: s.IPAddress})
	}

	return &StatusTemplate{
		Title: "STATUS",
		Lines: lines,
		Base:  base,
	}
}

// formatDuration formats a duration in a compact form.
func formatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// ProgressBar draws a framed bar filled to a percentage.
type ProgressBar struct {
	Width  int // defaults to badge.Width
	Height int // defaults to badge.Height
}

// Bitmap draws the bar with the given percentage (0-100).
func (p ProgressBar) Bitmap(percent float64) badge.Bitmap {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	w, h := p.Width, p.Height
	if w <= 0 {
		w = badge.Width
	}
	if h <= 0 || h > badge.Height {
		h = badge.Height
	}

	c := badge.NewCanvas(w, h)
	c.DrawRect(c.Bounds(), true)

	fill := int(float64(w-2) * percent / 100)
	c.FillRect(image.Rect(1, 1, 1+fill, h-1), true)
	return c.Bitmap()
}

// Message returns the bar as a still message.
func (p ProgressBar) Message(percent float64) Message {
	m := DefaultMessage(BitmapContent(p.Bitmap(percent)))
	m.Mode = badge.ModeStill.String()
	return m
}
