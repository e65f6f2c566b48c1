package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/pixil98/go-gamebook/internal/character"
	"github.com/pixil98/go-gamebook/internal/prompt"
	"github.com/pixil98/go-gamebook/internal/storage"
	"github.com/pixil98/go-gamebook/internal/story"
)

// Manager runs one gamebook session per connection: main menu, character
// creation or save loading, then the controller's visit loop.
type Manager struct {
	reg        *story.Registry
	archetypes storage.Storer[*character.Archetype]
	saves      storage.Storer[*character.Record]
	pub        Publisher
	startNode  int
	msgDur     time.Duration
}

func NewManager(reg *story.Registry, archetypes storage.Storer[*character.Archetype], saves storage.Storer[*character.Record], pub Publisher, startNode int) *Manager {
	return &Manager{
		reg:        reg,
		archetypes: archetypes,
		saves:      saves,
		pub:        pub,
		startNode:  startNode,
		msgDur:     defaultMessageDuration,
	}
}

// SetMessageDuration overrides how long transient messages linger in the
// sessions this manager starts.
func (m *Manager) SetMessageDuration(d time.Duration) {
	if d > 0 {
		m.msgDur = d
	}
}

// Start keeps the manager alive as a service worker until shutdown.
// Sessions themselves are driven by the listeners' connections.
func (m *Manager) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// RunSession owns a connection from greeting to goodbye.
func (m *Manager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	ui := NewTermUI(conn)

	if err := ui.ShowText("An adventure awaits."); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		picked, err := ui.PresentChoices(ctx, "Main menu", []string{"New game", "Load game", "Quit"}, false)
		if err != nil {
			return err
		}

		var state *character.State
		var saveName string

		switch picked {
		case 0:
			state, err = m.newGame(ctx, ui, conn)
		case 1:
			state, saveName, err = m.loadGame(ctx, ui)
		case 2:
			_ = ui.ShowText("Farewell.")
			return nil
		}
		if err != nil {
			return err
		}
		if state == nil {
			continue
		}

		ctrl := NewController(m.reg, ui, m.saves, m.pub)
		ctrl.SetMessageDuration(m.msgDur)
		if saveName != "" {
			ctrl.SetSaveName(saveName)
		}

		reason, err := ctrl.Run(ctx, state)
		if err != nil {
			return fmt.Errorf("running session: %w", err)
		}

		if err := m.showEpilogue(ui, reason); err != nil {
			return err
		}
	}
}

func (m *Manager) showEpilogue(ui UI, reason EndReason) error {
	switch reason {
	case EndDeath:
		return ui.ShowText("Your life is spent. The story goes on without you.")
	case EndGoodEnding:
		return ui.ShowText("THE END - and a good one.")
	case EndBadEnding:
		return ui.ShowText("THE END - though not the one you hoped for.")
	case EndDoom:
		return ui.ShowText("Doom takes you. THE END.")
	case EndRestart:
		return ui.ShowText("The tale winds back to its beginning.")
	}
	return nil
}

// newGame picks an archetype and names the character.
func (m *Manager) newGame(ctx context.Context, ui UI, conn io.ReadWriter) (*character.State, error) {
	all := m.archetypes.GetAll()
	if len(all) == 0 {
		return nil, fmt.Errorf("no character archetypes are configured")
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	options := make([]string, len(ids))
	for i, id := range ids {
		a := all[id]
		options[i] = fmt.Sprintf("%s - %s", a.Selector(), a.Description)
	}

	picked, err := ui.PresentChoices(ctx, "Who will you be?", options, true)
	if err != nil {
		if errors.Is(err, ErrBack) {
			return nil, nil
		}
		return nil, err
	}

	name, err := prompt.Ask(conn, "By what name will you be known? ", prompt.WithValidator(
		func(str string) (bool, string) {
			if strings.TrimSpace(str) == "" {
				return false, "A name is required.\n"
			}
			return true, ""
		},
	))
	if err != nil {
		return nil, err
	}

	return all[ids[picked]].NewState(strings.TrimSpace(name), m.startNode), nil
}

// loadGame picks a save, newest first, then resumes or deletes it.
// Damaged records are listed so they can be erased, but never resumed.
func (m *Manager) loadGame(ctx context.Context, ui UI) (*character.State, string, error) {
	all := m.saves.GetAll()
	if len(all) == 0 {
		return nil, "", ui.ShowMessage("There are no saved games.", SeverityInfo, m.msgDur)
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		// Newest first, by creation timestamp.
		switch da, db := all[a].CreationMillis, all[b].CreationMillis; {
		case da > db:
			return -1
		case da < db:
			return 1
		}
		return strings.Compare(a, b)
	})

	options := make([]string, len(names))
	for i, name := range names {
		r := all[name]
		if r == nil || r.StoryNodeID < 0 {
			options[i] = fmt.Sprintf("damaged save (%s)", name)
			continue
		}
		when := time.UnixMilli(r.CreationMillis).Format("2006-01-02 15:04")
		options[i] = fmt.Sprintf("%s the %s, begun %s", r.Name, r.CharacterType, when)
	}

	picked, err := ui.PresentChoices(ctx, "Which tale will you resume?", options, true)
	if err != nil {
		if errors.Is(err, ErrBack) {
			return nil, "", nil
		}
		return nil, "", err
	}
	name := names[picked]

	action, err := ui.PresentChoices(ctx, options[picked], []string{"Resume", "Delete"}, true)
	if err != nil {
		if errors.Is(err, ErrBack) {
			return nil, "", nil
		}
		return nil, "", err
	}

	if action == 1 {
		use, err := ui.Confirm(ctx, "Erase this save forever?")
		if err != nil {
			return nil, "", err
		}
		if !use {
			return nil, "", nil
		}
		if err := m.saves.Delete(name); err != nil {
			return nil, "", fmt.Errorf("deleting save: %w", err)
		}
		return nil, "", ui.ShowMessage("The save is erased.", SeverityInfo, m.msgDur)
	}

	state := character.DecodeRecord(all[name])
	if state.NodeID < 0 {
		return nil, "", ui.ShowMessage("That save is damaged and cannot be resumed.", SeverityWarn, m.msgDur)
	}
	return state, name, nil
}
