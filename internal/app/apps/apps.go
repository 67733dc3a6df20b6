// Package apps implements the runnable applications behind the CLI commands.
package apps

import "context"

// App is a runnable application entrypoint.
type App interface {
	Run(ctx context.Context, args []string) error
}
