package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// NatsServer embeds a NATS server and an internal client connection.
// Sessions publish gameplay events through it; the server journals every
// session event to the log so a play-through can be reconstructed.
type NatsServer struct {
	ns   *server.Server
	conn *nats.Conn

	startupTimeout time.Duration
	host           string
	port           int
}

func NewNatsServer(opts ...NatsServerOpt) (*NatsServer, error) {
	s := &NatsServer{
		startupTimeout: 10 * time.Second,
		host:           "127.0.0.1",
	}

	for _, opt := range opts {
		opt(s)
	}

	ns, err := server.NewServer(&server.Options{
		Host:   s.host,
		Port:   s.port,
		NoSigs: true, // Let the application handle signals
	})

	s.ns = ns

	if err != nil {
		return nil, err
	}

	return s, nil
}

func (n *NatsServer) Start(ctx context.Context) error {

	n.ns.Start()

	if !n.ns.ReadyForConnections(n.startupTimeout) {
		return fmt.Errorf("nats server not ready for connections")
	}

	// Create internal client connection
	conn, err := nats.Connect(n.clientURL())
	if err != nil {
		return fmt.Errorf("creating nats client connection: %w", err)
	}
	n.conn = conn

	// Journal all session events
	unsub, err := n.Subscribe("session.>", func(data []byte) {
		journalEvent(ctx, data)
	})
	if err != nil {
		return fmt.Errorf("subscribing to session events: %w", err)
	}
	defer unsub()

	slog.InfoContext(ctx, "nats server listening", "addr", n.ns.Addr())

	<-ctx.Done()
	n.conn.Close()
	n.ns.Shutdown()
	n.ns.WaitForShutdown()

	return nil
}

// Subscribe creates a subscription on the given subject.
// The handler is called for each message received.
// Returns an unsubscribe function to remove the subscription.
func (n *NatsServer) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	if n.conn == nil {
		return nil, fmt.Errorf("nats server not started")
	}
	sub, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, err
	}
	return func() { sub.Unsubscribe() }, nil
}

// Publish sends a message to the given subject
func (n *NatsServer) Publish(subject string, data []byte) error {
	if n.conn == nil {
		return fmt.Errorf("nats server not started")
	}
	return n.conn.Publish(subject, data)
}

func (n *NatsServer) clientURL() string {
	return fmt.Sprintf("nats://%s:%d", n.host, n.port)
}

// journalEvent logs a raw session event. Events are small JSON objects;
// anything unparseable is logged verbatim rather than dropped.
func journalEvent(ctx context.Context, data []byte) {
	var ev struct {
		Session   string `json:"session"`
		Type      string `json:"type"`
		Character string `json:"character"`
		Node      int    `json:"node"`
		Detail    string `json:"detail"`
	}
	if err := json.Unmarshal(data, &ev); err != nil {
		slog.InfoContext(ctx, "session event", "raw", string(data))
		return
	}
	slog.InfoContext(ctx, "session event",
		"session", ev.Session,
		"type", ev.Type,
		"character", ev.Character,
		"node", ev.Node,
		"detail", ev.Detail,
	)
}
