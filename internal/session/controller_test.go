package session

import (
	"context"
	"strings"
	"testing"

	"github.com/pixil98/go-gamebook/internal/character"
	"github.com/pixil98/go-gamebook/internal/story"
	"github.com/pixil98/go-testutil"
)

func mustRegistry(t *testing.T, nodes []*story.Node) *story.Registry {
	t.Helper()
	reg, err := story.NewRegistry(nodes)
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	return reg
}

func plainNode(id int, text string, choices ...story.Choice) *story.Node {
	return &story.Node{ID: id, Text: text, Choices: choices}
}

func endingNode(id int, kind story.NodeKind) *story.Node {
	return &story.Node{ID: id, Text: "the end", Kind: kind}
}

func intPtr(v int) *int { return &v }

func TestController_RunToEnding(t *testing.T) {
	reg := mustRegistry(t, []*story.Node{
		plainNode(1, "a fork in the road", story.Choice{Text: "Go on", Destination: 2}),
		endingNode(2, story.KindGoodEnding),
	})

	ui := &scriptedUI{choiceReplies: []int{0}}
	s := &character.State{Name: "Corum", Life: 10, LifeLimit: 10, ItemLimit: 8, NodeID: 1}

	reason, err := NewController(reg, ui, nil, nil).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "end reason", reason, EndGoodEnding)
	testutil.AssertEqual(t, "final node", s.NodeID, 2)
	testutil.AssertEqual(t, "texts shown", len(ui.texts), 2)
}

func TestController_EntryEventDeath(t *testing.T) {
	reg := mustRegistry(t, []*story.Node{
		{
			ID:      1,
			Text:    "the floor gives way",
			OnEvent: func(a story.Adventurer) { a.GainLife(-100) },
		},
	})

	ui := &scriptedUI{}
	s := &character.State{Life: 10, LifeLimit: 10, ItemLimit: 8, NodeID: 1}

	reason, err := NewController(reg, ui, nil, nil).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "end reason", reason, EndDeath)
	testutil.AssertEqual(t, "life", s.Life, 0)
	// The fatal node's text is still shown before the session ends.
	testutil.AssertEqual(t, "texts shown", len(ui.texts), 1)
}

func TestController_FatalChoiceStillTransitions(t *testing.T) {
	reg := mustRegistry(t, []*story.Node{
		plainNode(1, "a desperate leap", story.Choice{Text: "Jump", Kind: story.ChoiceLife, Value: -15, Destination: 2}),
		plainNode(2, "the rocks below"),
	})

	ui := &scriptedUI{choiceReplies: []int{0}}
	s := &character.State{Life: 10, LifeLimit: 10, ItemLimit: 8, NodeID: 1}

	reason, err := NewController(reg, ui, nil, nil).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "end reason", reason, EndDeath)
	testutil.AssertEqual(t, "died at destination", s.NodeID, 2)
}

func TestController_DenialKeepsPlayerAtNode(t *testing.T) {
	reg := mustRegistry(t, []*story.Node{
		plainNode(1, "a toll gate",
			story.Choice{Text: "Pay", Kind: story.ChoiceMoney, Value: 5, Destination: 2},
			story.Choice{Text: "Walk away", Destination: 3},
		),
		endingNode(2, story.KindGoodEnding),
		endingNode(3, story.KindBadEnding),
	})

	// Denied on the first pick, then walks away.
	ui := &scriptedUI{choiceReplies: []int{0, 1}}
	s := &character.State{Money: 2, Life: 10, LifeLimit: 10, ItemLimit: 8, NodeID: 1}

	reason, err := NewController(reg, ui, nil, nil).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "end reason", reason, EndBadEnding)
	testutil.AssertEqual(t, "money untouched", s.Money, 2)
	testutil.AssertEqual(t, "denial count", len(ui.messages), 1)
	if !strings.Contains(ui.messages[0], "afford") {
		t.Errorf("unexpected denial message %q", ui.messages[0])
	}
}

func TestController_BlessingVeto(t *testing.T) {
	reg := mustRegistry(t, []*story.Node{
		{
			ID:      1,
			Text:    "an arrow finds you",
			OnEvent: func(a story.Adventurer) { a.GainLife(-4) },
			Choices: []story.Choice{{Text: "Stagger on", Destination: 2}},
		},
		endingNode(2, story.KindGoodEnding),
	})

	ui := &scriptedUI{confirmReplies: []bool{true}, choiceReplies: []int{0}}
	s := &character.State{IsBlessed: true, Life: 10, LifeLimit: 10, ItemLimit: 8, NodeID: 1}

	_, err := NewController(reg, ui, nil, nil).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "life restored", s.Life, 10)
	testutil.AssertEqual(t, "blessing spent", s.IsBlessed, false)
}

func TestController_BlessingDeclined(t *testing.T) {
	reg := mustRegistry(t, []*story.Node{
		{
			ID:      1,
			Text:    "an arrow finds you",
			OnEvent: func(a story.Adventurer) { a.GainLife(-4) },
			Choices: []story.Choice{{Text: "Stagger on", Destination: 2}},
		},
		endingNode(2, story.KindGoodEnding),
	})

	ui := &scriptedUI{confirmReplies: []bool{false}, choiceReplies: []int{0}}
	s := &character.State{IsBlessed: true, Life: 10, LifeLimit: 10, ItemLimit: 8, NodeID: 1}

	_, err := NewController(reg, ui, nil, nil).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "life stays down", s.Life, 6)
	testutil.AssertEqual(t, "blessing kept", s.IsBlessed, true)
}

func TestController_ForcedDrop(t *testing.T) {
	reg := mustRegistry(t, []*story.Node{
		{
			ID:      1,
			Text:    "a narrow crawlspace",
			OnEvent: func(a story.Adventurer) { a.GetItems(story.ItemRope, story.ItemLantern) },
			Choices: []story.Choice{{Text: "Crawl through", Destination: 2}},
		},
		endingNode(2, story.KindGoodEnding),
	})

	// Over the limit by two after the event; drops both in one pass.
	ui := &scriptedUI{
		listReplies:   []listReply{{picks: []int{0, 1}}},
		choiceReplies: []int{0},
	}
	s := &character.State{
		Life:      10,
		LifeLimit: 10,
		ItemLimit: 2,
		Items:     []story.ItemType{story.ItemSword, story.ItemAxe},
		NodeID:    1,
	}

	_, err := NewController(reg, ui, nil, nil).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "items held", len(s.Items), 2)
	testutil.AssertEqual(t, "loss history", len(s.LostItems), 2)
}

func TestController_TakePool(t *testing.T) {
	reg := mustRegistry(t, []*story.Node{
		{
			ID:        1,
			Text:      "a looted camp",
			Take:      []story.ItemType{story.ItemRope, story.ItemLantern},
			TakeLimit: 1,
			Choices: []story.Choice{
				{Text: "Bribe the lookout", Kind: story.ChoiceMoney, Value: 5, Destination: 2},
				{Text: "Move on", Destination: 2},
			},
		},
		endingNode(2, story.KindGoodEnding),
	})

	// One list reply only: the pool is offered on entry, and the denial
	// that follows must not offer it again.
	ui := &scriptedUI{
		listReplies:   []listReply{{picks: []int{1}}},
		choiceReplies: []int{0, 1},
	}
	s := &character.State{Life: 10, LifeLimit: 10, ItemLimit: 8, NodeID: 1}

	_, err := NewController(reg, ui, nil, nil).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "took the lantern", s.HasItems(story.ItemLantern), true)
	testutil.AssertEqual(t, "left the rope", s.HasItems(story.ItemRope), false)
	testutil.AssertEqual(t, "denial count", len(ui.messages), 1)
}

func TestController_StealPool(t *testing.T) {
	reg := mustRegistry(t, []*story.Node{
		{
			ID:        1,
			Text:      "bandits bar the road",
			Lose:      []story.ItemType{story.ItemProvisions, story.ItemProvisions, story.ItemSword},
			KeepLimit: 1,
			Choices:   []story.Choice{{Text: "Trudge on", Destination: 2}},
		},
		endingNode(2, story.KindGoodEnding),
	})

	// Three of the pooled items are held, so two must go. The amulet is
	// not in the pool and stays untouchable.
	ui := &scriptedUI{
		listReplies:   []listReply{{picks: []int{0, 1}}},
		choiceReplies: []int{0},
	}
	s := &character.State{
		Life:      10,
		LifeLimit: 10,
		ItemLimit: 8,
		Items:     []story.ItemType{story.ItemProvisions, story.ItemProvisions, story.ItemSword, story.ItemAmulet},
		Skills:    []story.SkillType{story.SkillCombat},
		NodeID:    1,
	}

	_, err := NewController(reg, ui, nil, nil).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "items held", len(s.Items), 2)
	testutil.AssertEqual(t, "sword kept", s.HasItems(story.ItemSword), true)
	testutil.AssertEqual(t, "amulet kept", s.HasItems(story.ItemAmulet), true)
	testutil.AssertEqual(t, "loss history", len(s.LostItems), 2)
	// A node with no skill limit makes no skill demand.
	testutil.AssertEqual(t, "skills kept", len(s.Skills), 1)
}

func TestController_SkillLimitForcesLoss(t *testing.T) {
	reg := mustRegistry(t, []*story.Node{
		{
			ID:         1,
			Text:       "the curse takes hold",
			SkillLimit: intPtr(1),
			Choices:    []story.Choice{{Text: "Endure", Destination: 2}},
		},
		endingNode(2, story.KindGoodEnding),
	})

	ui := &scriptedUI{
		listReplies:   []listReply{{picks: []int{1}}},
		choiceReplies: []int{0},
	}
	s := &character.State{
		Life:      10,
		LifeLimit: 10,
		ItemLimit: 8,
		Skills:    []story.SkillType{story.SkillCombat, story.SkillRoguery},
		NodeID:    1,
	}

	_, err := NewController(reg, ui, nil, nil).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "skills held", len(s.Skills), 1)
	testutil.AssertEqual(t, "combat kept", s.HasSkill(story.SkillCombat), true)
	testutil.AssertEqual(t, "loss history", len(s.LostSkills), 1)
}

func TestController_BlessingDeclinedOnce(t *testing.T) {
	reg := mustRegistry(t, []*story.Node{
		{
			ID:      1,
			Text:    "an arrow finds you",
			OnEvent: func(a story.Adventurer) { a.GainLife(-4) },
			Choices: []story.Choice{
				{Text: "Pay the healer", Kind: story.ChoiceMoney, Value: 5, Destination: 2},
				{Text: "Stagger on", Destination: 2},
			},
		},
		endingNode(2, story.KindGoodEnding),
	})

	// One confirm reply only: after the decline, the denial loops the node
	// but the blessing must not be offered a second time.
	ui := &scriptedUI{
		confirmReplies: []bool{false},
		choiceReplies:  []int{0, 1},
	}
	s := &character.State{IsBlessed: true, Life: 10, LifeLimit: 10, ItemLimit: 8, NodeID: 1}

	_, err := NewController(reg, ui, nil, nil).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "life stays down", s.Life, 6)
	testutil.AssertEqual(t, "blessing kept", s.IsBlessed, true)
	testutil.AssertEqual(t, "denial count", len(ui.messages), 1)
}

func TestController_UnknownNodeDegrades(t *testing.T) {
	reg := mustRegistry(t, []*story.Node{
		plainNode(1, "a shimmering door", story.Choice{Text: "Step through", Destination: 999}),
	})

	ui := &scriptedUI{choiceReplies: []int{0}}
	s := &character.State{Life: 10, LifeLimit: 10, ItemLimit: 8, NodeID: 1}

	reason, err := NewController(reg, ui, nil, nil).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The placeholder dead end is a doom node.
	testutil.AssertEqual(t, "end reason", reason, EndDoom)
}

func TestController_RestartNode(t *testing.T) {
	reg := mustRegistry(t, []*story.Node{
		plainNode(1, "it was all a dream", story.Choice{Text: "Wake", Destination: 2}),
		{ID: 2, Text: "begin again", Kind: story.KindRestart},
	})

	ui := &scriptedUI{choiceReplies: []int{0}}
	s := &character.State{Life: 10, LifeLimit: 10, ItemLimit: 8, NodeID: 1}

	reason, err := NewController(reg, ui, nil, nil).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "end reason", reason, EndRestart)
}

func TestController_Farewell(t *testing.T) {
	reg := mustRegistry(t, []*story.Node{
		{
			ID:       1,
			Text:     "the hermit's hut",
			Farewell: "He waves as you go.",
			Choices:  []story.Choice{{Text: "Leave", Destination: 2}},
		},
		endingNode(2, story.KindGoodEnding),
	})

	ui := &scriptedUI{choiceReplies: []int{0}}
	s := &character.State{Life: 10, LifeLimit: 10, ItemLimit: 8, NodeID: 1}

	_, err := NewController(reg, ui, nil, nil).Run(context.Background(), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawFarewell bool
	for _, txt := range ui.texts {
		if txt == "He waves as you go." {
			sawFarewell = true
		}
	}
	testutil.AssertEqual(t, "farewell shown", sawFarewell, true)
}
