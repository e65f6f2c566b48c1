package character

import (
	"slices"

	"github.com/pixil98/go-gamebook/internal/story"
)

// State is the mutable record of a play session. It is owned exclusively
// by the session controller; everything else sees it through the mutators
// below, which are the only sanctioned way to change it.
type State struct {
	Name          string
	Description   string
	CharacterType string

	Life      int
	LifeLimit int
	Money     int

	ItemLimit   int
	SkillsLimit int

	Items     []story.ItemType
	Skills    []story.SkillType
	Codewords []story.Codeword

	// Shed possessions are kept for narrative reference, in the order
	// they were lost.
	LostItems  []story.ItemType
	LostSkills []story.SkillType
	LostMoney  int

	DonationAmount int

	IsBlessed         bool
	IsImmortal        bool
	RitualBallStarted bool
	Ticks             int
	Cross             int

	NodeID    int
	CreatedAt int64
}

// GainLife adjusts life by n (negative n is damage), clamped to
// [0, LifeLimit]. Callers must check IsDead afterward; dropping to zero
// raises nothing here.
func (s *State) GainLife(n int) {
	s.Life += n
	if s.Life > s.LifeLimit {
		s.Life = s.LifeLimit
	}
	if s.Life < 0 {
		s.Life = 0
	}
}

// GainMoney adjusts money by n, never below zero. Money lost this way is
// recorded in LostMoney.
func (s *State) GainMoney(n int) {
	if n < 0 {
		lost := -n
		if lost > s.Money {
			lost = s.Money
		}
		s.LostMoney += lost
		s.Money -= lost
		return
	}
	s.Money += n
}

// SpendMoney deducts amount if the player can afford it.
func (s *State) SpendMoney(amount int) bool {
	if amount > s.Money {
		return false
	}
	s.Money -= amount
	return true
}

// GetItems appends items without enforcing ItemLimit; the session loop
// forces drop interstitials until VerifyPossessions holds again.
func (s *State) GetItems(items ...story.ItemType) {
	s.Items = append(s.Items, items...)
}

// LoseItems removes the first occurrence of each named item, moving it to
// the loss history. Items not held are silently skipped.
func (s *State) LoseItems(items ...story.ItemType) {
	for _, it := range items {
		i := slices.Index(s.Items, it)
		if i < 0 {
			continue
		}
		s.Items = slices.Delete(s.Items, i, i+1)
		s.LostItems = append(s.LostItems, it)
	}
}

// LoseSkills moves the named skills from the active set to the loss
// history. Skills never leave the set any other way.
func (s *State) LoseSkills(losses ...story.SkillType) {
	for _, sk := range losses {
		i := slices.Index(s.Skills, sk)
		if i < 0 {
			continue
		}
		s.Skills = slices.Delete(s.Skills, i, i+1)
		s.LostSkills = append(s.LostSkills, sk)
	}
}

// LoseAll strips the character to a bare survival state: items and money
// go into the loss history, skills and codewords persist.
func (s *State) LoseAll() {
	s.LostItems = append(s.LostItems, s.Items...)
	s.Items = nil
	s.LostMoney += s.Money
	s.Money = 0
}

// AddCodeword records a codeword. Re-adding one already present is a no-op.
func (s *State) AddCodeword(w story.Codeword) {
	if s.HasCodeword(w) {
		return
	}
	s.Codewords = append(s.Codewords, w)
}

// HasItems reports whether every named item is held, counting multiplicity:
// asking for two provisions requires two in the pack.
func (s *State) HasItems(items ...story.ItemType) bool {
	held := make(map[story.ItemType]int, len(s.Items))
	for _, it := range s.Items {
		held[it]++
	}
	for _, it := range items {
		if held[it] == 0 {
			return false
		}
		held[it]--
	}
	return true
}

func (s *State) HasSkill(sk story.SkillType) bool {
	return slices.Contains(s.Skills, sk)
}

func (s *State) HasCodeword(w story.Codeword) bool {
	return slices.Contains(s.Codewords, w)
}

// HasSkillAny reports whether the player has the skill and holds at least
// one of the alternative tool items. An empty alternative list falls back
// to the skill's registered tools; a skill with no tools at all needs
// nothing beyond the skill itself.
func (s *State) HasSkillAny(sk story.SkillType, alternatives []story.ItemType) bool {
	if !s.HasSkill(sk) {
		return false
	}
	if len(alternatives) == 0 {
		alternatives = sk.Tools()
	}
	if len(alternatives) == 0 {
		return true
	}
	for _, it := range alternatives {
		if s.HasItems(it) {
			return true
		}
	}
	return false
}

// VerifyPossessions reports whether the pack is within the carry limit.
// It is the loop guard for forced drop interstitials.
func (s *State) VerifyPossessions() bool {
	return len(s.Items) <= s.ItemLimit
}

// Provisions returns the indexes of edible items, in pack order.
func (s *State) Provisions() []int {
	var idx []int
	for i, it := range s.Items {
		if it.Edible() {
			idx = append(idx, i)
		}
	}
	return idx
}

// IsDead reports the terminal life condition. Immortal characters never die.
func (s *State) IsDead() bool {
	return s.Life <= 0 && !s.IsImmortal
}

func (s *State) AdjustTicks(n int) {
	s.Ticks += n
}

func (s *State) AdjustCross(n int) {
	s.Cross += n
}

func (s *State) StartRitual() {
	s.RitualBallStarted = true
}

// Clone returns a structural deep copy for simulate-ahead previews. The
// copy shares no slices with the live state.
func (s *State) Clone() story.Adventurer {
	return s.Copy()
}

// Copy is Clone with a concrete return type.
func (s *State) Copy() *State {
	c := *s
	c.Items = slices.Clone(s.Items)
	c.Skills = slices.Clone(s.Skills)
	c.Codewords = slices.Clone(s.Codewords)
	c.LostItems = slices.Clone(s.LostItems)
	c.LostSkills = slices.Clone(s.LostSkills)
	return &c
}
