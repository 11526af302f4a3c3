// Package sysinfo collects host metrics for status messages.
package sysinfo

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Metrics contains a snapshot of host metrics.
type Metrics struct {
	Hostname string
	CPU      float64 // CPU usage percentage since the previous snapshot
	MemUsed  uint64  // Memory used in bytes
	MemTotal uint64  // Total memory in bytes
	Uptime   time.Duration
	LoadAvg  [3]float64 // 1, 5, 15 minute load averages
	IP       string     // first non-loopback IPv4 address
}

// MetricsProvider is an interface for collecting host metrics.
type MetricsProvider interface {
	GetMetrics() (*Metrics, error)
}

// Collector reads metrics from procfs.
type Collector struct {
	// Root is prepended to /proc paths; empty means the real filesystem.
	Root string

	prevCPU cpuStats
}

type cpuStats struct {
	idle  uint64
	total uint64
}

// NewCollector creates a Collector for the running host.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) path(name string) string {
	return filepath.Join(c.Root, "proc", name)
}

// GetMetrics collects current metrics. Values that cannot be read stay
// zero; an error is only returned when nothing could be read at all.
func (c *Collector) GetMetrics() (*Metrics, error) {
	m := &Metrics{}
	var errs []string

	if hostname, err := os.Hostname(); err == nil {
		m.Hostname = hostname
	}

	if uptime, err := c.getUptime(); err == nil {
		m.Uptime = uptime
	} else {
		errs = append(errs, err.Error())
	}

	if cpu, err := c.getCPU(); err == nil {
		m.CPU = cpu
	} else {
		errs = append(errs, err.Error())
	}

	if used, total, err := c.getMemory(); err == nil {
		m.MemUsed, m.MemTotal = used, total
	} else {
		errs = append(errs, err.Error())
	}

	if load, err := c.getLoadAvg(); err == nil {
		m.LoadAvg = load
	} else {
		errs = append(errs, err.Error())
	}

	m.IP = firstIPv4()

	if len(errs) == 4 {
		return nil, fmt.Errorf("no metrics available: %s", strings.Join(errs, "; "))
	}
	return m, nil
}

func (c *Collector) getUptime() (time.Duration, error) {
	data, err := os.ReadFile(c.path("uptime"))
	if err != nil {
		return 0, err
	}
	parts := strings.Fields(string(data))
	if len(parts) == 0 {
		return 0, fmt.Errorf("empty uptime")
	}
	seconds, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, fmt.Errorf("parse uptime: %w", err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// getCPU returns the busy percentage since the previous call. The first
// call has nothing to compare against and returns 0.
func (c *Collector) getCPU() (float64, error) {
	f, err := os.Open(c.path("stat"))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 5 {
			break
		}

		var total uint64
		for _, p := range parts[1:] {
			v, _ := strconv.ParseUint(p, 10, 64)
			total += v
		}
		idle, _ := strconv.ParseUint(parts[4], 10, 64)

		var usage float64
		if c.prevCPU.total > 0 && total > c.prevCPU.total {
			deltaTotal := total - c.prevCPU.total
			deltaIdle := idle - c.prevCPU.idle
			usage = 100.0 * float64(deltaTotal-deltaIdle) / float64(deltaTotal)
		}
		c.prevCPU = cpuStats{idle: idle, total: total}
		return usage, nil
	}
	return 0, fmt.Errorf("no cpu line in stat")
}

func (c *Collector) getMemory() (used, total uint64, err error) {
	f, err := os.Open(c.path("meminfo"))
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	var memTotal, memAvailable uint64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}
		kb, _ := strconv.ParseUint(parts[1], 10, 64)
		switch parts[0] {
		case "MemTotal:":
			memTotal = kb * 1024
		case "MemAvailable:":
			memAvailable = kb * 1024
		}
	}

	if memTotal == 0 {
		return 0, 0, fmt.Errorf("no MemTotal in meminfo")
	}
	return memTotal - memAvailable, memTotal, nil
}

func (c *Collector) getLoadAvg() ([3]float64, error) {
	var load [3]float64

	data, err := os.ReadFile(c.path("loadavg"))
	if err != nil {
		return load, err
	}
	parts := strings.Fields(string(data))
	if len(parts) < 3 {
		return load, fmt.Errorf("short loadavg")
	}
	for i := range load {
		load[i], _ = strconv.ParseFloat(parts[i], 64)
	}
	return load, nil
}

func firstIPv4() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}
	return ""
}
