package main

import (
	"fmt"
	"os"

	"github.com/sagostin/ledbadge/pkg/badge"
	"github.com/sagostin/ledbadge/pkg/config"
)

// cmdRaw uploads a file that already holds an encoded payload, header
// included. Nothing is checked beyond the report size.
func cmdRaw(cfg *config.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "[RAW] Sending %d bytes from %s\n", len(data), path)
	}

	if err := badge.SendRaw(newTransport(cfg), data); err != nil {
		return fmt.Errorf("failed to upload: %w", err)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "[RAW] Done\n")
	}

	return nil
}
