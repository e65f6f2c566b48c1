package character

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-gamebook/internal/story"
)

// Archetype is a pre-made character definition loaded from the character
// assets directory. Picking one at session start stamps out a fresh State.
type Archetype struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Life        int               `json:"life"`
	Money       int               `json:"money"`
	ItemLimit   int               `json:"item_limit"`
	SkillsLimit int               `json:"skills_limit"`
	Skills      []story.SkillType `json:"skills"`
	Items       []story.ItemType  `json:"items,omitempty"`
	Immortal    bool              `json:"immortal,omitempty"`
}

func (a *Archetype) Validate() error {
	el := errors.NewErrorList()

	if a.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}
	if a.Life <= 0 {
		el.Add(fmt.Errorf("life must be positive"))
	}
	if a.ItemLimit <= 0 {
		el.Add(fmt.Errorf("item_limit must be positive"))
	}
	if a.SkillsLimit <= 0 {
		el.Add(fmt.Errorf("skills_limit must be positive"))
	}
	if len(a.Skills) > a.SkillsLimit {
		el.Add(fmt.Errorf("%d skills exceeds skills_limit %d", len(a.Skills), a.SkillsLimit))
	}
	for _, sk := range a.Skills {
		if !sk.Known() {
			el.Add(fmt.Errorf("unknown skill %q", sk))
		}
	}
	for _, it := range a.Items {
		if !it.Known() {
			el.Add(fmt.Errorf("unknown item %q", it))
		}
	}
	if len(a.Items) > a.ItemLimit {
		el.Add(fmt.Errorf("%d starting items exceeds item_limit %d", len(a.Items), a.ItemLimit))
	}

	return el.Err()
}

// Selector is the label shown when picking a character.
func (a *Archetype) Selector() string {
	return a.Name
}

// NewState stamps out a fresh play state starting at the given node.
func (a *Archetype) NewState(name string, startNode int) *State {
	if name == "" {
		name = a.Name
	}
	return &State{
		Name:          name,
		Description:   a.Description,
		CharacterType: a.Name,
		Life:          a.Life,
		LifeLimit:     a.Life,
		Money:         a.Money,
		ItemLimit:     a.ItemLimit,
		SkillsLimit:   a.SkillsLimit,
		Skills:        append([]story.SkillType(nil), a.Skills...),
		Items:         append([]story.ItemType(nil), a.Items...),
		IsImmortal:    a.Immortal,
		NodeID:        startNode,
		CreatedAt:     time.Now().UnixMilli(),
	}
}
