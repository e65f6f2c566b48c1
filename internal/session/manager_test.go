package session

import (
	"context"
	"strings"
	"testing"

	"github.com/pixil98/go-gamebook/internal/character"
	"github.com/pixil98/go-testutil"
)

// fakeSaves is an in-memory save store for menu tests.
type fakeSaves struct {
	records map[string]*character.Record
}

func (f *fakeSaves) Save(id string, r *character.Record) error {
	f.records[id] = r
	return nil
}

func (f *fakeSaves) Delete(id string) error {
	delete(f.records, id)
	return nil
}

func (f *fakeSaves) Get(id string) *character.Record {
	return f.records[id]
}

func (f *fakeSaves) GetAll() map[string]*character.Record {
	vals := map[string]*character.Record{}
	for id, r := range f.records {
		vals[id] = r
	}
	return vals
}

func TestManager_LoadGameResumesNewest(t *testing.T) {
	saves := &fakeSaves{records: map[string]*character.Record{
		"older": {Name: "Corum", CharacterType: "Warrior", Life: 5, StoryNodeID: 7, CreationMillis: 1000},
		"newer": {Name: "Lirael", CharacterType: "Mystic", Life: 9, StoryNodeID: 12, CreationMillis: 2000},
	}}
	m := NewManager(nil, nil, saves, nil, 1)

	// First pick in the list is the newest save; then resume it.
	ui := &scriptedUI{choiceReplies: []int{0, 0}}

	state, name, err := m.loadGame(context.Background(), ui)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "save name", name, "newer")
	testutil.AssertEqual(t, "character", state.Name, "Lirael")
	testutil.AssertEqual(t, "node", state.NodeID, 12)
}

func TestManager_LoadGameDeletesSave(t *testing.T) {
	saves := &fakeSaves{records: map[string]*character.Record{
		"corum": {Name: "Corum", CharacterType: "Warrior", Life: 5, StoryNodeID: 7, CreationMillis: 1000},
	}}
	m := NewManager(nil, nil, saves, nil, 1)

	ui := &scriptedUI{
		choiceReplies:  []int{0, 1},
		confirmReplies: []bool{true},
	}

	state, _, err := m.loadGame(context.Background(), ui)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != nil {
		t.Fatal("expected no state after deleting")
	}
	if _, ok := saves.records["corum"]; ok {
		t.Error("expected the save to be deleted")
	}
}

func TestManager_LoadGameDeleteNeedsConfirmation(t *testing.T) {
	saves := &fakeSaves{records: map[string]*character.Record{
		"corum": {Name: "Corum", CharacterType: "Warrior", Life: 5, StoryNodeID: 7, CreationMillis: 1000},
	}}
	m := NewManager(nil, nil, saves, nil, 1)

	ui := &scriptedUI{
		choiceReplies:  []int{0, 1},
		confirmReplies: []bool{false},
	}

	state, _, err := m.loadGame(context.Background(), ui)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != nil {
		t.Fatal("expected no state after backing out")
	}
	if _, ok := saves.records["corum"]; !ok {
		t.Error("expected the save to survive")
	}
}

func TestManager_LoadGameRefusesDamagedSave(t *testing.T) {
	saves := &fakeSaves{records: map[string]*character.Record{
		"broken": {StoryNodeID: -1},
	}}
	m := NewManager(nil, nil, saves, nil, 1)

	ui := &scriptedUI{choiceReplies: []int{0, 0}}

	state, _, err := m.loadGame(context.Background(), ui)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != nil {
		t.Fatal("expected a damaged save to be refused")
	}

	var sawRefusal bool
	for _, msg := range ui.messages {
		if strings.Contains(msg, "damaged") {
			sawRefusal = true
		}
	}
	testutil.AssertEqual(t, "refusal shown", sawRefusal, true)
}
