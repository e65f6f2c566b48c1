package character

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pixil98/go-gamebook/internal/storage"
)

// SaveStore keeps one flat JSON record per save game under a directory.
// Unlike story assets, save files are player data and must never stop the
// process from starting: a file that fails to decode loads as the
// invalid-save sentinel (StoryNodeID = -1), which the session layer
// refuses to resume from.
type SaveStore struct {
	path    string
	records map[string]*Record

	mu sync.RWMutex
}

func NewSaveStore(path string) (*SaveStore, error) {
	s := &SaveStore{
		path:    path,
		records: map[string]*Record{},
	}

	err := s.load()
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *SaveStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = map[string]*Record{}

	return filepath.Walk(s.path, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		name := strings.TrimSuffix(filepath.Base(path), ".json")

		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("unreadable save file", "path", path, "error", err)
			s.records[name] = &Record{StoryNodeID: -1}
			return nil
		}

		// DecodeJSON maps malformed input to the sentinel instead of
		// returning an error.
		s.records[name] = EncodeRecord(DecodeJSON(data))
		return nil
	})
}

func (s *SaveStore) Save(id string, r *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshalling save record: %w", err)
	}

	err = storage.AtomicWrite(s.filePath(id), data, 0644)
	if err != nil {
		return err
	}

	s.records[id] = r
	return nil
}

// Delete removes a save and its backing file. Deleting an unknown id is a
// no-op.
func (s *SaveStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return nil
	}
	delete(s.records, id)

	err := os.Remove(s.filePath(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing save file: %w", err)
	}
	return nil
}

func (s *SaveStore) Get(id string) *Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records[id]
}

func (s *SaveStore) GetAll() map[string]*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := map[string]*Record{}
	for id, r := range s.records {
		vals[id] = r
	}

	return vals
}

func (s *SaveStore) filePath(id string) string {
	return filepath.Join(s.path, fmt.Sprintf("%s.json", id))
}
