package story

// Adventurer is the view of player state that node hooks and choice
// resolution operate on. The concrete implementation lives in the
// character package; keeping an interface here lets content be exercised
// in tests without dragging in a full session.
type Adventurer interface {
	GainLife(n int)
	GainMoney(n int)
	GetItems(items ...ItemType)
	LoseItems(items ...ItemType)
	LoseAll()
	AddCodeword(w Codeword)

	HasItems(items ...ItemType) bool
	HasSkill(s SkillType) bool
	HasCodeword(w Codeword) bool

	AdjustTicks(n int)
	AdjustCross(n int)
	StartRitual()

	// Clone returns a structural copy sharing nothing with the receiver.
	Clone() Adventurer
}

// NodeKind categorizes how the session loop treats a node.
type NodeKind int

const (
	KindNormal NodeKind = iota
	KindRestart
	KindGoodEnding
	KindBadEnding
	KindDoom
)

// Terminal reports whether visiting a node of this kind ends the session.
func (k NodeKind) Terminal() bool {
	switch k {
	case KindGoodEnding, KindBadEnding, KindDoom:
		return true
	}
	return false
}

// Node is a single narrative unit. Nodes are immutable after the registry
// is built; choices reference destinations by id, never by pointer, since
// the graph is cyclic and destinations are shared.
type Node struct {
	ID      int
	Text    string
	Image   string
	Kind    NodeKind
	Choices []Choice

	// OnBackground, when set, may redirect to another node before the node
	// is shown. Returns the destination id and true to redirect.
	OnBackground func(adv Adventurer) (int, bool)

	// OnEvent, when set, applies the node's forced state changes on entry.
	OnEvent func(adv Adventurer)

	// Shop maps purchasable items to their prices.
	Shop map[ItemType]int

	// Trade, when set, offers to swap Give for Get.
	Trade *TradePair

	// Take is a pool of items the player may pick from, at most TakeLimit.
	Take      []ItemType
	TakeLimit int

	// Lose is a pool the player must shed down to KeepLimit (robbery etc).
	Lose      []ItemType
	KeepLimit int

	// SkillLimit, when set, forces skill loss until the active set
	// shrinks to the limit. Nil means no requirement, so the zero-value
	// node makes no demand.
	SkillLimit *int

	// Farewell is shown when the player leaves through any choice.
	Farewell string
}

// TradePair is a one-for-one exchange offered by a node.
type TradePair struct {
	Give ItemType
	Get  ItemType
}

// ChoiceKind discriminates how a choice is gated and what it does.
type ChoiceKind int

const (
	ChoiceNormal ChoiceKind = iota
	ChoiceItem
	ChoiceAllItems
	ChoiceCodeword
	ChoiceGetItem
	ChoiceGiveItem
	ChoiceLoseItem
	ChoiceLoseAll
	ChoiceMoney
	ChoiceLoseMoney
	ChoiceLife
	ChoiceEat
	ChoiceEatHeal
	ChoiceSkill
	ChoiceSkillAny
	ChoiceSkillItem
	ChoiceDonate
	ChoiceGift
	ChoiceLoseSkills
)

// Choice is an edge to a destination node, gated by a typed precondition.
// Exactly one payload field is meaningful per kind.
type Choice struct {
	Text        string
	Kind        ChoiceKind
	Destination int

	Item     ItemType
	Items    []ItemType
	Skill    SkillType
	Codeword Codeword

	// Value is money for MONEY/LOSE_MONEY, a life delta for LIFE, the
	// provision threshold for EAT/EAT_HEAL, and the remaining-skill limit
	// for LOSE_SKILLS.
	Value int

	// Gifts maps a given item to a destination overriding Destination.
	Gifts map[ItemType]int
}
