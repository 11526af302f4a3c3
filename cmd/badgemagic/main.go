// badgemagic is a command-line tool for 44x11 LED name badges.
//
// Usage:
//
//	badgemagic [options] <command> [arguments]
//
// Commands:
//
//	list                  List connected badges
//	text <message>        Show a text message
//	bits <rows>           Show a bitmap drawn as rows of 1/0 or #/.
//	b64 <width> <data>    Show a base64 packed bitmap
//	image <file>          Show a PNG, JPEG, GIF or SVG image
//	batch <file>          Show up to eight messages from a file
//	status                Show host status messages
//	raw <file>            Upload a pre-encoded payload file
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/gousb"

	"github.com/sagostin/ledbadge/pkg/badge"
	"github.com/sagostin/ledbadge/pkg/config"
	"github.com/sagostin/ledbadge/pkg/display"
	"github.com/sagostin/ledbadge/pkg/sysinfo"
)

var (
	configPath = flag.String("config", "", "JSON configuration file")
	transport  = flag.String("transport", config.TransportUSB, "Device transport (usb, hidraw, dump)")
	verbose    = flag.Bool("v", false, "Verbose output")

	speed   = flag.Int("speed", int(badge.DefaultSpeed), "Speed level 0-7")
	mode    = flag.String("mode", badge.DefaultMode.String(), "Animation: left, right, up, down, still, snowflake, picture, hold, laser")
	effects = flag.String("effects", "", "Comma separated effects: flashing, border, inverted")
	family  = flag.Int("font", 0, "Font family: 0 fixed, 1 variable width")
	subtype = flag.String("subtype", "5x8", "Font subtype: 5x8, 6x9 (font 0); lucasfont alternate tf, spleen 5x8 me, 6x10 tf, go regular, go bold, go mono (font 1)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [arguments]\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  list                  List connected badges")
		fmt.Fprintln(os.Stderr, "  text <message>        Show a text message")
		fmt.Fprintln(os.Stderr, "  bits <rows>           Show a bitmap drawn as rows of 1/0 or #/.")
		fmt.Fprintln(os.Stderr, "  b64 <width> <data>    Show a base64 packed bitmap")
		fmt.Fprintln(os.Stderr, "  image <file>          Show a PNG, JPEG, GIF or SVG image")
		fmt.Fprintln(os.Stderr, "  batch <file>          Show up to eight messages from a file")
		fmt.Fprintln(os.Stderr, "  status                Show host status messages")
		fmt.Fprintln(os.Stderr, "  raw <file>            Upload a pre-encoded payload file")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
	}

	flag.Parse()

	// Enable verbose mode for debugging
	if *verbose {
		badge.SetVerbose(true)
	}

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fatal(err)
	}

	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	switch cmd {
	case "list":
		err = cmdList(cfg)

	case "text":
		if len(args) < 1 {
			usage("text <message>")
		}
		err = cmdShow(cfg, display.Text(strings.Join(args, " ")))

	case "bits":
		if len(args) < 1 {
			usage("bits <rows>")
		}
		var c display.Content
		if c, err = display.ParseBitstring(strings.Join(args, " ")); err == nil {
			err = cmdShow(cfg, c)
		}

	case "b64":
		if len(args) < 2 {
			usage("b64 <width> <data>")
		}
		width, convErr := strconv.Atoi(args[0])
		if convErr != nil {
			fatal(fmt.Errorf("width must be a number: %w", convErr))
		}
		var c display.Content
		if c, err = display.DecodeBase64Bitmap(width, strings.Join(args[1:], "")); err == nil {
			err = cmdShow(cfg, c)
		}

	case "image":
		if len(args) != 1 {
			usage("image <file>")
		}
		var c display.Content
		if c, err = display.LoadImage(args[0]); err == nil {
			err = cmdShow(cfg, c)
		}

	case "batch":
		if len(args) != 1 {
			usage("batch <file>")
		}
		err = cmdBatch(cfg, args[0])

	case "status":
		err = cmdStatus(cfg)

	case "raw":
		if len(args) != 1 {
			usage("raw <file>")
		}
		err = cmdRaw(cfg, args[0])

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		fatal(err)
	}
}

func usage(args string) {
	fmt.Fprintf(os.Stderr, "Usage: badgemagic %s\n", args)
	os.Exit(1)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// loadConfig reads the configuration file, if any, and applies the flags
// given on the command line on top of it.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadConfig(*configPath); err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "transport":
			cfg.Transport = *transport
		case "speed":
			cfg.Defaults.Speed = *speed
		case "mode":
			cfg.Defaults.Mode = *mode
		case "effects":
			cfg.Defaults.Effects = splitEffects(*effects)
		case "font":
			cfg.Defaults.FontFamily = *family
		case "subtype":
			cfg.Defaults.FontSubtype = *subtype
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitEffects(s string) []string {
	var out []string
	for _, e := range strings.Split(s, ",") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

func newTransport(cfg *config.Config) badge.Transport {
	switch cfg.Transport {
	case config.TransportHIDRaw:
		t := badge.NewHIDRawTransport()
		t.VendorID = cfg.VendorID
		t.ProductID = cfg.ProductID
		return t
	case config.TransportDump:
		return &badge.DumpTransport{W: os.Stdout}
	default:
		t := badge.NewUSBTransport()
		t.VendorID = gousb.ID(cfg.VendorID)
		t.ProductID = gousb.ID(cfg.ProductID)
		return t
	}
}

func newDisplay(cfg *config.Config) *display.Display {
	var opts []display.Option
	if *verbose {
		opts = append(opts, display.WithLogger(display.NewWriterLogger(os.Stderr)))
	}
	return display.New(newTransport(cfg), opts...)
}

// baseMessage returns a message with the configured default style.
func baseMessage(cfg *config.Config, c display.Content) display.Message {
	d := cfg.Defaults
	return display.Message{
		Content:     c,
		Speed:       d.Speed,
		Mode:        d.Mode,
		Effects:     d.Effects,
		FontFamily:  d.FontFamily,
		FontSubtype: d.FontSubtype,
	}
}

func cmdList(cfg *config.Config) error {
	ids, err := newDisplay(cfg).ListDevices()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No badges connected")
		return nil
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

func cmdShow(cfg *config.Config, c display.Content) error {
	return newDisplay(cfg).SetMessages([]display.Message{baseMessage(cfg, c)})
}

func cmdBatch(cfg *config.Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	msgs, err := parseBatch(f, baseMessage(cfg, display.Content{}))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return newDisplay(cfg).SetMessages(msgs)
}

func cmdStatus(cfg *config.Config) error {
	template, err := sysinfo.StatusTemplate(sysinfo.NewCollector(), baseMessage(cfg, display.Content{}))
	if err != nil {
		return err
	}
	return template.Render(newDisplay(cfg))
}
