package listener

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// StdioListener runs a single local session over the process's own
// stdin/stdout, for playing without a network connection.
type StdioListener struct {
	cm *ConnectionManager
}

func NewStdioListener(cm *ConnectionManager) *StdioListener {
	return &StdioListener{cm: cm}
}

func (l *StdioListener) Start(ctx context.Context) error {
	slog.InfoContext(ctx, "starting local console session")

	rw := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}

	done := make(chan struct{})
	go func() {
		l.cm.AcceptConnection(ctx, rw)
		close(done)
	}()

	select {
	case <-ctx.Done():
		return nil
	case <-done:
		return nil
	}
}
