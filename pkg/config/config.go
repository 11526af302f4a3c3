// Package config loads the badge tool configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sagostin/ledbadge/pkg/badge"
)

// Transport names accepted in Config.Transport.
const (
	TransportUSB    = "usb"
	TransportHIDRaw = "hidraw"
	TransportDump   = "dump"
)

// Config represents the application configuration
type Config struct {
	Transport string `json:"transport"`
	VendorID  uint16 `json:"vendor_id"`
	ProductID uint16 `json:"product_id"`

	Defaults MessageDefaults `json:"defaults"`
}

// MessageDefaults is the style used when a command does not give one.
type MessageDefaults struct {
	Speed       int      `json:"speed"`
	Mode        string   `json:"mode"`
	Effects     []string `json:"effects"`
	FontFamily  int      `json:"font_family"`
	FontSubtype string   `json:"font_subtype"`
}

// LoadConfig loads the configuration from a file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Transport: TransportUSB,
		VendorID:  badge.VendorID,
		ProductID: badge.ProductID,
		Defaults: MessageDefaults{
			Speed:       int(badge.DefaultSpeed),
			Mode:        badge.DefaultMode.String(),
			FontFamily:  0,
			FontSubtype: "5x8",
		},
	}
}

// Validate checks the fields that have no fallback.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportUSB, TransportHIDRaw, TransportDump:
	default:
		return fmt.Errorf("unknown transport %q", c.Transport)
	}
	if c.VendorID == 0 || c.ProductID == 0 {
		return fmt.Errorf("vendor and product id must be set")
	}
	return nil
}
