package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-gamebook/internal/character"
	"github.com/pixil98/go-gamebook/internal/storage"
	"github.com/pixil98/go-gamebook/internal/story"
)

type StorageConfig struct {
	Nodes      AssetConfig[*story.NodeSpec]      `json:"nodes"`
	Archetypes AssetConfig[*character.Archetype] `json:"archetypes"`
	Saves      SaveConfig                        `json:"saves"`
}

func (c *StorageConfig) BuildRegistry() (*story.Registry, error) {
	nodes, err := c.Nodes.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating node store: %w", err)
	}

	reg, err := story.BuildRegistry(nodes)
	if err != nil {
		return nil, fmt.Errorf("building story registry: %w", err)
	}

	return reg, nil
}

func (c *StorageConfig) BuildArchetypeStore() (*storage.FileStore[*character.Archetype], error) {
	return c.Archetypes.BuildFileStore()
}

func (c *StorageConfig) BuildSaveStore() (*character.SaveStore, error) {
	return c.Saves.BuildSaveStore()
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Nodes.Validate("nodes"))
	el.Add(c.Archetypes.Validate("archetypes"))
	el.Add(c.Saves.validate())
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

// SaveConfig differs from AssetConfig in that its directory is created
// on demand rather than required to exist up front, and its store
// tolerates malformed files. Saves are player data; a damaged record
// surfaces as an unresumable entry instead of blocking startup.
type SaveConfig struct {
	Path string `json:"path"`
}

func (c *SaveConfig) validate() error {
	if c.Path == "" {
		return fmt.Errorf("saves: path is required")
	}
	return nil
}

func (c *SaveConfig) BuildSaveStore() (*character.SaveStore, error) {
	err := os.MkdirAll(c.Path, 0o755)
	if err != nil {
		return nil, fmt.Errorf("creating save directory %q: %w", c.Path, err)
	}
	return character.NewSaveStore(c.Path)
}
