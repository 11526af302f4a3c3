package display

import (
	"testing"
	"time"

	"github.com/sagostin/ledbadge/pkg/badge"
)

func TestStatusTemplate_Messages(t *testing.T) {
	base := DefaultMessage(Content{})
	base.Effects = []string{badge.EffectBorder}

	tmpl := (&SystemStatus{
		Hostname:  "fw01",
		Uptime:    50 * time.Hour,
		IPAddress: "10.0.0.1",
	}).ToTemplate(base)

	msgs := tmpl.Messages()
	if len(msgs) != 4 {
		t.Fatalf("expected title and 3 lines, got %d", len(msgs))
	}

	title := msgs[0]
	if title.Content.Text != "STATUS" {
		t.Errorf("unexpected title %q", title.Content.Text)
	}
	style, _, err := title.Render()
	if err != nil {
		t.Fatal(err)
	}
	if !style.Flags.Invert || !style.Flags.Border {
		t.Errorf("title should be inverted and keep the base effects: %s", style)
	}

	if got := msgs[2].Content.Text; got != "Up: 2d 2h" {
		t.Errorf("expected \"Up: 2d 2h\", got %q", got)
	}
	style, _, _ = msgs[1].Render()
	if style.Flags.Invert {
		t.Error("only the title is inverted")
	}
	if len(base.Effects) != 1 {
		t.Error("the base message effects should not be modified")
	}
}

func TestStatusTemplate_Truncates(t *testing.T) {
	tmpl := &StatusTemplate{Title: "T", Base: DefaultMessage(Content{})}
	for i := 0; i < 12; i++ {
		tmpl.Lines = append(tmpl.Lines, StatusLine{Label: "x"})
	}

	msgs := tmpl.Messages()
	if len(msgs) != badge.MaxFrames {
		t.Errorf("expected %d messages, got %d", badge.MaxFrames, len(msgs))
	}
	if _, err := Compose(msgs); err != nil {
		t.Errorf("truncated template should compose: %v", err)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Minute, "5m"},
		{90 * time.Minute, "1h 30m"},
		{49 * time.Hour, "2d 1h"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v): expected %q, got %q", tt.d, tt.want, got)
		}
	}
}

func TestProgressBar(t *testing.T) {
	bar := ProgressBar{Width: 12, Height: 4}
	bmp := bar.Bitmap(50)

	if bmp.Width() != 12 || bmp.Height() != 4 {
		t.Fatalf("expected 12x4, got %dx%d", bmp.Width(), bmp.Height())
	}
	want := []string{
		"############",
		"######.....#",
		"######.....#",
		"############",
	}
	for y, row := range want {
		for x, c := range row {
			if bmp.At(x, y) != (c == '#') {
				t.Fatalf("pixel (%d,%d) wrong:\n%s", x, y, bmp)
			}
		}
	}

	m := bar.Message(150)
	if m.Content.Kind != ContentPixels || m.Mode != "still" {
		t.Errorf("unexpected message %+v", m)
	}
	if !m.Content.Pixels[1*12+10] {
		t.Error("percent should be clamped to 100")
	}
}

func TestProgressBar_OversizedHeight(t *testing.T) {
	bmp := ProgressBar{Width: 8, Height: 1 << 62}.Bitmap(0)
	if bmp.Width() != 8 || bmp.Height() != badge.Height {
		t.Errorf("expected 8x%d, got %dx%d", badge.Height, bmp.Width(), bmp.Height())
	}
}
