package story

import (
	"fmt"
	"strconv"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-gamebook/internal/storage"
)

// NodeSpec is the JSON asset form of a story node. Declarative background
// rules and event effects are compiled into the Node's hook functions at
// load time, so data-driven and hand-authored content meet the same Node
// surface.
type NodeSpec struct {
	Text    string       `json:"text"`
	Image   string       `json:"image,omitempty"`
	Kind    string       `json:"kind,omitempty"`
	Choices []ChoiceSpec `json:"choices,omitempty"`

	Background []RedirectRule `json:"background,omitempty"`
	Event      *EventSpec     `json:"event,omitempty"`

	Shop  map[ItemType]int `json:"shop,omitempty"`
	Trade *TradeSpec       `json:"trade,omitempty"`

	Take      []ItemType `json:"take,omitempty"`
	TakeLimit int        `json:"take_limit,omitempty"`

	Lose      []ItemType `json:"lose,omitempty"`
	KeepLimit int        `json:"keep_limit,omitempty"`

	SkillLimit *int `json:"skill_limit,omitempty"`

	Farewell string `json:"farewell,omitempty"`
}

// RedirectRule routes to Dest when its condition holds. A rule with no
// condition always matches, giving an unconditional redirect. Not inverts
// the condition, modelling "if the player lacks X go to Y".
type RedirectRule struct {
	Codeword Codeword  `json:"codeword,omitempty"`
	Item     ItemType  `json:"item,omitempty"`
	Skill    SkillType `json:"skill,omitempty"`
	Not      bool      `json:"not,omitempty"`
	Dest     int       `json:"dest"`
}

func (r *RedirectRule) matches(adv Adventurer) bool {
	ok := true
	switch {
	case r.Codeword != "":
		ok = adv.HasCodeword(r.Codeword)
	case r.Item != "":
		ok = adv.HasItems(r.Item)
	case r.Skill != "":
		ok = adv.HasSkill(r.Skill)
	}
	if r.Not {
		ok = !ok
	}
	return ok
}

// EventSpec is a node's forced state change, applied on every entry.
type EventSpec struct {
	Life        int        `json:"life,omitempty"`
	Money       int        `json:"money,omitempty"`
	GetItems    []ItemType `json:"get_items,omitempty"`
	LoseItems   []ItemType `json:"lose_items,omitempty"`
	LoseAll     bool       `json:"lose_all,omitempty"`
	Codewords   []Codeword `json:"codewords,omitempty"`
	Ticks       int        `json:"ticks,omitempty"`
	Cross       int        `json:"cross,omitempty"`
	StartRitual bool       `json:"start_ritual,omitempty"`
}

func (e *EventSpec) apply(adv Adventurer) {
	if e.LoseAll {
		adv.LoseAll()
	}
	if e.Life != 0 {
		adv.GainLife(e.Life)
	}
	if e.Money != 0 {
		adv.GainMoney(e.Money)
	}
	if len(e.GetItems) > 0 {
		adv.GetItems(e.GetItems...)
	}
	if len(e.LoseItems) > 0 {
		adv.LoseItems(e.LoseItems...)
	}
	for _, w := range e.Codewords {
		adv.AddCodeword(w)
	}
	if e.Ticks != 0 {
		adv.AdjustTicks(e.Ticks)
	}
	if e.Cross != 0 {
		adv.AdjustCross(e.Cross)
	}
	if e.StartRitual {
		adv.StartRitual()
	}
}

// TradeSpec is the asset form of a TradePair.
type TradeSpec struct {
	Give ItemType `json:"give"`
	Get  ItemType `json:"get"`
}

// ChoiceSpec is the asset form of a Choice.
type ChoiceSpec struct {
	Text     string           `json:"text"`
	Kind     string           `json:"kind,omitempty"`
	Dest     int              `json:"dest"`
	Item     ItemType         `json:"item,omitempty"`
	Items    []ItemType       `json:"items,omitempty"`
	Skill    SkillType        `json:"skill,omitempty"`
	Codeword Codeword         `json:"codeword,omitempty"`
	Value    int              `json:"value,omitempty"`
	Gifts    map[ItemType]int `json:"gifts,omitempty"`
}

var choiceKinds = map[string]ChoiceKind{
	"":            ChoiceNormal,
	"normal":      ChoiceNormal,
	"item":        ChoiceItem,
	"all_items":   ChoiceAllItems,
	"codeword":    ChoiceCodeword,
	"get_item":    ChoiceGetItem,
	"give_item":   ChoiceGiveItem,
	"lose_item":   ChoiceLoseItem,
	"lose_all":    ChoiceLoseAll,
	"money":       ChoiceMoney,
	"lose_money":  ChoiceLoseMoney,
	"life":        ChoiceLife,
	"eat":         ChoiceEat,
	"eat_heal":    ChoiceEatHeal,
	"skill":       ChoiceSkill,
	"skill_any":   ChoiceSkillAny,
	"skill_item":  ChoiceSkillItem,
	"donate":      ChoiceDonate,
	"gift":        ChoiceGift,
	"lose_skills": ChoiceLoseSkills,
}

var nodeKinds = map[string]NodeKind{
	"":            KindNormal,
	"normal":      KindNormal,
	"restart":     KindRestart,
	"good-ending": KindGoodEnding,
	"bad-ending":  KindBadEnding,
	"doom":        KindDoom,
}

// Validate checks the spec is well formed on its own. Destination ids are
// checked later, once the whole graph is indexed.
func (s *NodeSpec) Validate() error {
	el := errors.NewErrorList()

	if s.Text == "" && len(s.Background) == 0 {
		el.Add(fmt.Errorf("text is required for nodes without background rules"))
	}

	if _, ok := nodeKinds[s.Kind]; !ok {
		el.Add(fmt.Errorf("unknown node kind %q", s.Kind))
	}

	for i, c := range s.Choices {
		kind, ok := choiceKinds[c.Kind]
		if !ok {
			el.Add(fmt.Errorf("choice %d: unknown kind %q", i, c.Kind))
			continue
		}
		el.Add(validateChoicePayload(i, kind, &c))
	}

	if s.TakeLimit < 0 || s.TakeLimit > len(s.Take) {
		el.Add(fmt.Errorf("take_limit %d out of range for %d items", s.TakeLimit, len(s.Take)))
	}
	if s.KeepLimit < 0 {
		el.Add(fmt.Errorf("keep_limit must not be negative"))
	}
	if s.SkillLimit != nil && *s.SkillLimit < 0 {
		el.Add(fmt.Errorf("skill_limit must not be negative"))
	}

	return el.Err()
}

func validateChoicePayload(i int, kind ChoiceKind, c *ChoiceSpec) error {
	el := errors.NewErrorList()

	switch kind {
	case ChoiceItem, ChoiceGetItem, ChoiceGiveItem, ChoiceLoseItem, ChoiceSkillItem:
		if c.Item == "" {
			el.Add(fmt.Errorf("choice %d: item is required", i))
		}
	case ChoiceAllItems, ChoiceSkillAny:
		if len(c.Items) == 0 {
			el.Add(fmt.Errorf("choice %d: items are required", i))
		}
	case ChoiceCodeword:
		if c.Codeword == "" {
			el.Add(fmt.Errorf("choice %d: codeword is required", i))
		}
	case ChoiceMoney, ChoiceLoseMoney:
		if c.Value <= 0 {
			el.Add(fmt.Errorf("choice %d: value must be positive", i))
		}
	case ChoiceLoseSkills:
		if c.Value < 0 {
			el.Add(fmt.Errorf("choice %d: value must not be negative", i))
		}
	}

	switch kind {
	case ChoiceSkill, ChoiceSkillAny, ChoiceSkillItem:
		if c.Skill == "" {
			el.Add(fmt.Errorf("choice %d: skill is required", i))
		}
	}

	return el.Err()
}

// Compile turns the spec into an immutable Node with its hooks bound.
func (s *NodeSpec) Compile(id int) *Node {
	n := &Node{
		ID:         id,
		Text:       s.Text,
		Image:      s.Image,
		Kind:       nodeKinds[s.Kind],
		Take:       s.Take,
		TakeLimit:  s.TakeLimit,
		Lose:       s.Lose,
		KeepLimit:  s.KeepLimit,
		SkillLimit: s.SkillLimit,
		Shop:       s.Shop,
		Farewell:   s.Farewell,
	}
	if s.Trade != nil {
		n.Trade = &TradePair{Give: s.Trade.Give, Get: s.Trade.Get}
	}

	if len(s.Background) > 0 {
		rules := s.Background
		n.OnBackground = func(adv Adventurer) (int, bool) {
			for i := range rules {
				if rules[i].matches(adv) {
					return rules[i].Dest, true
				}
			}
			return 0, false
		}
	}
	if s.Event != nil {
		event := s.Event
		n.OnEvent = func(adv Adventurer) { event.apply(adv) }
	}

	n.Choices = make([]Choice, len(s.Choices))
	for i, c := range s.Choices {
		n.Choices[i] = Choice{
			Text:        c.Text,
			Kind:        choiceKinds[c.Kind],
			Destination: c.Dest,
			Item:        c.Item,
			Items:       c.Items,
			Skill:       c.Skill,
			Codeword:    c.Codeword,
			Value:       c.Value,
			Gifts:       c.Gifts,
		}
	}

	return n
}

// BuildRegistry compiles every node spec in the store into a Registry.
// Store keys are the nodes' integer ids.
func BuildRegistry(st storage.Storer[*NodeSpec]) (*Registry, error) {
	var nodes []*Node
	for key, spec := range st.GetAll() {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("node id %q is not an integer: %w", key, err)
		}
		nodes = append(nodes, spec.Compile(id))
	}
	return NewRegistry(nodes)
}
