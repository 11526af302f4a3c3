package main

import (
	"strings"
	"testing"

	"github.com/sagostin/ledbadge/pkg/display"
)

func testBase() display.Message {
	return display.Message{
		Speed:       4,
		Mode:        "left",
		Effects:     []string{"border"},
		FontSubtype: "5x8",
	}
}

func TestParseBatch(t *testing.T) {
	input := `
# greeting first
-mode laser -effects flashing,border text "Hello   there"
-speed 7 bits "101/010"
-font 1 -subtype "go bold" text Bye
b64 8 gA==
`
	msgs, err := parseBatch(strings.NewReader(input), testBase())
	if err != nil {
		t.Fatalf("parseBatch failed: %v", err)
	}
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}

	m := msgs[0]
	if m.Content.Kind != display.ContentText || m.Content.Text != "Hello   there" {
		t.Errorf("quoted text should be kept as is, got %q", m.Content.Text)
	}
	if m.Mode != "laser" || m.Speed != 4 {
		t.Errorf("unexpected style %+v", m)
	}
	if len(m.Effects) != 2 || m.Effects[0] != "flashing" {
		t.Errorf("unexpected effects %v", m.Effects)
	}

	m = msgs[1]
	if m.Content.Kind != display.ContentPixels || m.Content.Width != 3 || m.Speed != 7 {
		t.Errorf("unexpected bits message %+v", m)
	}
	if len(m.Effects) != 1 || m.Effects[0] != "border" {
		t.Errorf("defaults should apply, got effects %v", m.Effects)
	}

	m = msgs[2]
	if m.FontFamily != 1 || m.FontSubtype != "go bold" {
		t.Errorf("unexpected font %d/%q", m.FontFamily, m.FontSubtype)
	}

	m = msgs[3]
	if m.Content.Width != 8 || !m.Content.Pixels[0] || m.Content.Pixels[1] {
		t.Errorf("unexpected b64 message %+v", m.Content)
	}

	if _, err := display.Compose(msgs); err != nil {
		t.Errorf("parsed batch should compose: %v", err)
	}
}

func TestParseBatch_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":        "\n# nothing\n",
		"unknown":      "video clip.mp4",
		"bad flag":     "-color red text hi",
		"no content":   "-speed 3",
		"bad quote":    `text "open`,
		"bad bits":     "bits 10/1",
		"too many":     strings.Repeat("text x\n", 9),
		"b64 no width": "b64 gA==",
	}
	for name, input := range tests {
		if _, err := parseBatch(strings.NewReader(input), testBase()); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestParseBatch_LineNumbers(t *testing.T) {
	_, err := parseBatch(strings.NewReader("text ok\n\nvideo x\n"), testBase())
	if err == nil || !strings.HasPrefix(err.Error(), "line 3:") {
		t.Errorf("expected an error on line 3, got %v", err)
	}
}

func TestSplitEffects(t *testing.T) {
	got := splitEffects(" flashing, ,border ")
	if len(got) != 2 || got[0] != "flashing" || got[1] != "border" {
		t.Errorf("unexpected effects %v", got)
	}
	if splitEffects("") != nil {
		t.Error("empty string should give no effects")
	}
}
