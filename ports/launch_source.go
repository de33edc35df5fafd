package ports

import (
	"context"

	"launchdash/domain/launch"
)

// LaunchSource loads the launch records the dashboard serves.
// Implementations are called once at startup; any error is fatal.
type LaunchSource interface {
	Load(ctx context.Context) (*launch.Dataset, error)
	// Describe names the source for logs (file path or table)
	Describe() string
}
