package character

import (
	"encoding/json"
	"log/slog"

	"github.com/pixil98/go-gamebook/internal/story"
)

// Record is the flat save-game form of a State. Field keys are stable;
// absent fields deserialize to zero values so old saves keep loading as
// the record grows.
type Record struct {
	Name              string            `json:"name,omitempty"`
	Description       string            `json:"description,omitempty"`
	CharacterType     string            `json:"characterType,omitempty"`
	Life              int               `json:"life,omitempty"`
	Money             int               `json:"money,omitempty"`
	ItemLimit         int               `json:"itemLimit,omitempty"`
	LifeLimit         int               `json:"lifeLimit,omitempty"`
	SkillsLimit       int               `json:"skillsLimit,omitempty"`
	DonationAmount    int               `json:"donationAmount,omitempty"`
	IsBlessed         bool              `json:"isBlessed,omitempty"`
	IsImmortal        bool              `json:"isImmortal,omitempty"`
	RitualBallStarted bool              `json:"ritualBallStarted,omitempty"`
	Ticks             int               `json:"ticks,omitempty"`
	Cross             int               `json:"cross,omitempty"`
	Codewords         []story.Codeword  `json:"codewords,omitempty"`
	Items             []story.ItemType  `json:"items,omitempty"`
	Skills            []story.SkillType `json:"skills,omitempty"`
	LostItems         []story.ItemType  `json:"lostItems,omitempty"`
	LostSkills        []story.SkillType `json:"lostSkills,omitempty"`
	LostMoney         int               `json:"lostMoney,omitempty"`
	StoryNodeID       int               `json:"storyNodeId"`
	CreationMillis    int64             `json:"creationEpochMillis,omitempty"`
}

// Validate satisfies the store contract. Save records are defensively
// decoded instead of rejected, so there is nothing to check.
func (r *Record) Validate() error {
	return nil
}

// EncodeRecord captures the state wholesale.
func EncodeRecord(s *State) *Record {
	return &Record{
		Name:              s.Name,
		Description:       s.Description,
		CharacterType:     s.CharacterType,
		Life:              s.Life,
		Money:             s.Money,
		ItemLimit:         s.ItemLimit,
		LifeLimit:         s.LifeLimit,
		SkillsLimit:       s.SkillsLimit,
		DonationAmount:    s.DonationAmount,
		IsBlessed:         s.IsBlessed,
		IsImmortal:        s.IsImmortal,
		RitualBallStarted: s.RitualBallStarted,
		Ticks:             s.Ticks,
		Cross:             s.Cross,
		Codewords:         append([]story.Codeword(nil), s.Codewords...),
		Items:             append([]story.ItemType(nil), s.Items...),
		Skills:            append([]story.SkillType(nil), s.Skills...),
		LostItems:         append([]story.ItemType(nil), s.LostItems...),
		LostSkills:        append([]story.SkillType(nil), s.LostSkills...),
		LostMoney:         s.LostMoney,
		StoryNodeID:       s.NodeID,
		CreationMillis:    s.CreatedAt,
	}
}

// DecodeRecord reconstructs a state from a save record. Item and skill
// identifiers that no longer exist in the registries are dropped silently,
// defending against saves that reference removed content. A nil record
// yields the invalid-save sentinel (NodeID = -1) that callers must refuse
// to resume from.
func DecodeRecord(r *Record) *State {
	if r == nil {
		return &State{NodeID: -1}
	}

	s := &State{
		Name:              r.Name,
		Description:       r.Description,
		CharacterType:     r.CharacterType,
		Life:              r.Life,
		Money:             r.Money,
		ItemLimit:         r.ItemLimit,
		LifeLimit:         r.LifeLimit,
		SkillsLimit:       r.SkillsLimit,
		DonationAmount:    r.DonationAmount,
		IsBlessed:         r.IsBlessed,
		IsImmortal:        r.IsImmortal,
		RitualBallStarted: r.RitualBallStarted,
		Ticks:             r.Ticks,
		Cross:             r.Cross,
		Codewords:         append([]story.Codeword(nil), r.Codewords...),
		Items:             keepKnownItems(r.Items),
		Skills:            keepKnownSkills(r.Skills),
		LostItems:         keepKnownItems(r.LostItems),
		LostSkills:        keepKnownSkills(r.LostSkills),
		LostMoney:         r.LostMoney,
		NodeID:            r.StoryNodeID,
		CreatedAt:         r.CreationMillis,
	}
	return s
}

// DecodeJSON decodes a raw save record. Malformed input yields the
// invalid-save sentinel rather than an error; persistence problems never
// cross the UI boundary as failures.
func DecodeJSON(data []byte) *State {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		slog.Warn("unreadable save record", "error", err)
		return &State{NodeID: -1}
	}
	return DecodeRecord(&r)
}

func keepKnownItems(in []story.ItemType) []story.ItemType {
	var out []story.ItemType
	for _, it := range in {
		if !it.Known() {
			slog.Warn("dropping unknown item from save", "item", it)
			continue
		}
		out = append(out, it)
	}
	return out
}

func keepKnownSkills(in []story.SkillType) []story.SkillType {
	var out []story.SkillType
	for _, sk := range in {
		if !sk.Known() {
			slog.Warn("dropping unknown skill from save", "skill", sk)
			continue
		}
		out = append(out, sk)
	}
	return out
}
