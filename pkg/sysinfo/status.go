package sysinfo

import (
	"fmt"

	"github.com/sagostin/ledbadge/pkg/display"
)

// Status converts a metrics snapshot into the status block shown on the
// badge.
func Status(m *Metrics) *display.SystemStatus {
	return &display.SystemStatus{
		Hostname:  m.Hostname,
		Uptime:    m.Uptime,
		CPU:       m.CPU,
		MemUsed:   m.MemUsed,
		MemTotal:  m.MemTotal,
		LoadAvg:   fmt.Sprintf("%.2f %.2f %.2f", m.LoadAvg[0], m.LoadAvg[1], m.LoadAvg[2]),
		IPAddress: m.IP,
	}
}

// StatusTemplate reads fresh metrics from p and lays them out as status
// messages styled like base.
func StatusTemplate(p MetricsProvider, base display.Message) (*display.StatusTemplate, error) {
	m, err := p.GetMetrics()
	if err != nil {
		return nil, fmt.Errorf("collect metrics: %w", err)
	}
	return Status(m).ToTemplate(base), nil
}
