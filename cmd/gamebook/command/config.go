package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	Listeners []ListenerConfig `json:"listeners"`
	Storage   StorageConfig    `json:"storage"`
	Nats      NatsConfig       `json:"nats"`
	Session   SessionConfig    `json:"session"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Session.validate())

	return el.Err()
}

type SessionConfig struct {
	// StartNode is where new games begin unless overridden on the
	// command line.
	StartNode int `json:"start_node"`

	// MessageDuration is how long transient status messages linger.
	MessageDuration string `json:"message_duration,omitempty"`
}

func (c *SessionConfig) validate() error {
	el := errors.NewErrorList()

	if c.StartNode < 0 {
		el.Add(fmt.Errorf("start_node must not be negative"))
	}

	if c.MessageDuration != "" {
		_, err := time.ParseDuration(c.MessageDuration)
		if err != nil {
			el.Add(fmt.Errorf("parsing message_duration: %w", err))
		}
	}

	return el.Err()
}
