package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/sagostin/ledbadge/pkg/badge"
	"github.com/sagostin/ledbadge/pkg/display"
)

// parseBatch reads one message per line. A line is shell-quoted and looks
// like a command line without the program name:
//
//	-mode laser -effects border text "Hello there"
//	-speed 7 bits "10101/01010"
//	image logo.png
//
// Options default to base. Blank lines and lines starting with '#' are
// skipped.
func parseBatch(r io.Reader, base display.Message) ([]display.Message, error) {
	var msgs []display.Message

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		m, err := parseBatchLine(line, base)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		msgs = append(msgs, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(msgs) == 0 {
		return nil, fmt.Errorf("no messages")
	}
	if len(msgs) > badge.MaxFrames {
		return nil, fmt.Errorf("%d messages, the badge holds %d", len(msgs), badge.MaxFrames)
	}
	return msgs, nil
}

func parseBatchLine(line string, base display.Message) (display.Message, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return display.Message{}, err
	}

	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	speed := fs.Int("speed", base.Speed, "")
	mode := fs.String("mode", base.Mode, "")
	effects := fs.String("effects", strings.Join(base.Effects, ","), "")
	family := fs.Int("font", base.FontFamily, "")
	subtype := fs.String("subtype", base.FontSubtype, "")
	if err := fs.Parse(words); err != nil {
		return display.Message{}, err
	}

	args := fs.Args()
	if len(args) == 0 {
		return display.Message{}, fmt.Errorf("missing content")
	}

	c, err := parseContent(args[0], args[1:])
	if err != nil {
		return display.Message{}, err
	}

	return display.Message{
		Content:     c,
		Speed:       *speed,
		Mode:        *mode,
		Effects:     splitEffects(*effects),
		FontFamily:  *family,
		FontSubtype: *subtype,
	}, nil
}

func parseContent(kind string, args []string) (display.Content, error) {
	switch kind {
	case "text":
		return display.Text(strings.Join(args, " ")), nil
	case "bits":
		return display.ParseBitstring(strings.Join(args, " "))
	case "b64":
		if len(args) < 2 {
			return display.Content{}, fmt.Errorf("b64 needs a width and data")
		}
		width, err := strconv.Atoi(args[0])
		if err != nil {
			return display.Content{}, fmt.Errorf("width must be a number: %w", err)
		}
		return display.DecodeBase64Bitmap(width, strings.Join(args[1:], ""))
	case "image":
		if len(args) != 1 {
			return display.Content{}, fmt.Errorf("image needs exactly one file")
		}
		return display.LoadImage(args[0])
	default:
		return display.Content{}, fmt.Errorf("unknown content %q (text, bits, b64, image)", kind)
	}
}
