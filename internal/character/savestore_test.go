package character

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-gamebook/internal/story"
	"github.com/pixil98/go-testutil"
)

func writeSaveFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		t.Fatalf("writing save file: %v", err)
	}
}

func TestNewSaveStore_DamagedFileIsRecoverable(t *testing.T) {
	dir := t.TempDir()

	good, err := json.Marshal(&Record{
		Name:           "Corum",
		CharacterType:  "Warrior",
		Life:           7,
		Items:          []story.ItemType{story.ItemSword},
		StoryNodeID:    42,
		CreationMillis: 1700000000001,
	})
	if err != nil {
		t.Fatalf("marshalling record: %v", err)
	}
	writeSaveFile(t, dir, "alpha.json", good)

	// A truncated write must not keep the store from loading.
	writeSaveFile(t, dir, "1700000000000.json", []byte(`{"name":`))

	store, err := NewSaveStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := store.GetAll()
	testutil.AssertEqual(t, "record count", len(all), 2)
	testutil.AssertEqual(t, "good name", all["alpha"].Name, "Corum")
	testutil.AssertEqual(t, "good node", all["alpha"].StoryNodeID, 42)

	// The damaged file surfaces as the invalid-save sentinel.
	testutil.AssertEqual(t, "damaged node", all["1700000000000"].StoryNodeID, -1)
}

func TestSaveStore_SaveAndReload(t *testing.T) {
	dir := t.TempDir()

	store, err := NewSaveStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := &Record{Name: "Corum", Life: 5, StoryNodeID: 7, CreationMillis: 1700000000000}
	if err := store.Save("corum", r); err != nil {
		t.Fatalf("saving: %v", err)
	}
	testutil.AssertEqual(t, "cached", store.Get("corum").Life, 5)

	reloaded, err := NewSaveStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := reloaded.Get("corum")
	testutil.AssertEqual(t, "name", got.Name, "Corum")
	testutil.AssertEqual(t, "node", got.StoryNodeID, 7)
}

func TestSaveStore_Delete(t *testing.T) {
	dir := t.TempDir()

	store, err := NewSaveStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Save("corum", &Record{Name: "Corum", StoryNodeID: 7}); err != nil {
		t.Fatalf("saving: %v", err)
	}

	if err := store.Delete("corum"); err != nil {
		t.Fatalf("deleting: %v", err)
	}
	if store.Get("corum") != nil {
		t.Error("expected record to be gone")
	}
	if _, err := os.Stat(filepath.Join(dir, "corum.json")); !os.IsNotExist(err) {
		t.Errorf("expected save file to be removed, got %v", err)
	}

	// Deleting an unknown id is a no-op.
	if err := store.Delete("nobody"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
