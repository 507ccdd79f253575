package ports

import "context"

// MonitorClient updates the polling interval of an external uptime
// monitor, which in turn triggers the next batch run.
type MonitorClient interface {
	SetInterval(ctx context.Context, monitorID int, seconds int) error
}
