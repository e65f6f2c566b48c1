package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-gamebook/internal/listener"
	"github.com/pixil98/go-gamebook/internal/session"
	"github.com/pixil98/go-service"
)

// BuildWorkers returns the worker factory for the service app. A
// non-negative startNode overrides the configured starting node.
func BuildWorkers(startNode int) func(interface{}) (service.WorkerList, error) {
	return func(config interface{}) (service.WorkerList, error) {
		cfg, ok := config.(*Config)
		if !ok {
			return nil, fmt.Errorf("unable to cast config")
		}

		reg, err := cfg.Storage.BuildRegistry()
		if err != nil {
			return nil, fmt.Errorf("loading story: %w", err)
		}

		archetypes, err := cfg.Storage.BuildArchetypeStore()
		if err != nil {
			return nil, fmt.Errorf("creating archetype store: %w", err)
		}

		saves, err := cfg.Storage.BuildSaveStore()
		if err != nil {
			return nil, fmt.Errorf("creating save store: %w", err)
		}

		nats, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}

		start := cfg.Session.StartNode
		if startNode >= 0 {
			start = startNode
		}

		sessionManager := session.NewManager(reg, archetypes, saves, nats, start)
		if cfg.Session.MessageDuration != "" {
			d, err := time.ParseDuration(cfg.Session.MessageDuration)
			if err != nil {
				return nil, fmt.Errorf("parsing message_duration: %w", err)
			}
			sessionManager.SetMessageDuration(d)
		}
		connectionManager := listener.NewConnectionManager(sessionManager)

		listeners := make(service.WorkerList, len(cfg.Listeners))
		for i, l := range cfg.Listeners {
			lst, err := l.BuildListener(connectionManager)
			if err != nil {
				return nil, fmt.Errorf("creating listener %d: %w", i, err)
			}
			listeners[fmt.Sprintf("listener-%d", i)] = lst
		}

		return service.WorkerList{
			"nats":      nats,
			"sessions":  sessionManager,
			"listeners": &listeners,
		}, nil
	}
}
