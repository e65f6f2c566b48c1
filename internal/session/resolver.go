package session

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pixil98/go-gamebook/internal/character"
	"github.com/pixil98/go-gamebook/internal/story"
)

// Resolver evaluates a selected choice against the player state. On
// success it applies the choice's effects and returns the destination
// node id; on an unmet precondition it returns a *Denial and leaves the
// state untouched. Interactive kinds drive sub-selections through the UI
// port; cancelling one returns ErrBack and the caller keeps the player at
// the current node.
type Resolver struct {
	ui UI
}

func NewResolver(ui UI) *Resolver {
	return &Resolver{ui: ui}
}

// Resolve applies one choice. Effects and destination resolution happen
// together; there is no partial-success state.
func (r *Resolver) Resolve(ctx context.Context, c *story.Choice, s *character.State) (int, error) {
	switch c.Kind {
	case story.ChoiceNormal:
		return c.Destination, nil

	case story.ChoiceItem:
		if !s.HasItems(c.Item) {
			return 0, NewDenial(fmt.Sprintf("You need the %s.", c.Item.Name()))
		}
		return c.Destination, nil

	case story.ChoiceAllItems:
		if !s.HasItems(c.Items...) {
			return 0, NewDenial("You don't have everything that requires.")
		}
		return c.Destination, nil

	case story.ChoiceCodeword:
		if !s.HasCodeword(c.Codeword) {
			return 0, NewDenial("Something holds you back.")
		}
		return c.Destination, nil

	case story.ChoiceGetItem:
		s.GetItems(c.Item)
		return c.Destination, nil

	case story.ChoiceGiveItem, story.ChoiceLoseItem:
		if !s.HasItems(c.Item) {
			return 0, NewDenial(fmt.Sprintf("You need the %s.", c.Item.Name()))
		}
		s.LoseItems(c.Item)
		return c.Destination, nil

	case story.ChoiceLoseAll:
		s.LoseAll()
		return c.Destination, nil

	case story.ChoiceMoney:
		if s.Money < c.Value {
			return 0, NewDenial(fmt.Sprintf("You can't afford that (%d needed).", c.Value))
		}
		return c.Destination, nil

	case story.ChoiceLoseMoney:
		if !s.SpendMoney(c.Value) {
			return 0, NewDenial(fmt.Sprintf("You can't afford that (%d needed).", c.Value))
		}
		return c.Destination, nil

	case story.ChoiceLife:
		s.GainLife(c.Value)
		return c.Destination, nil

	case story.ChoiceEat:
		return r.resolveEat(ctx, c, s, false)

	case story.ChoiceEatHeal:
		return r.resolveEat(ctx, c, s, true)

	case story.ChoiceSkill:
		if !s.HasSkill(c.Skill) {
			return 0, NewDenial(fmt.Sprintf("You lack the %s skill.", c.Skill.Name()))
		}
		return c.Destination, nil

	case story.ChoiceSkillAny:
		return r.resolveSkillTool(c, s, c.Items)

	case story.ChoiceSkillItem:
		return r.resolveSkillTool(c, s, []story.ItemType{c.Item})

	case story.ChoiceDonate:
		return r.resolveDonate(ctx, c, s)

	case story.ChoiceGift:
		return r.resolveGift(ctx, c, s)

	case story.ChoiceLoseSkills:
		return r.resolveLoseSkills(ctx, c, s)

	default:
		return 0, fmt.Errorf("unknown choice kind %d", c.Kind)
	}
}

// resolveSkillTool gates on a skill plus at least one qualifying tool,
// distinguishing the two failure modes only for messaging.
func (r *Resolver) resolveSkillTool(c *story.Choice, s *character.State, tools []story.ItemType) (int, error) {
	if !s.HasSkill(c.Skill) {
		return 0, NewDenial(fmt.Sprintf("You lack the %s skill.", c.Skill.Name()))
	}
	if !s.HasSkillAny(c.Skill, tools) {
		return 0, NewDenial(fmt.Sprintf("You have the %s skill but nothing to use it with.", c.Skill.Name()))
	}
	return c.Destination, nil
}

// resolveEat handles both eating kinds. The threshold (Value) caps how
// many provisions may be consumed; plain EAT grants consumed-threshold
// life (a shortfall costs life), EAT_HEAL grants a flat +threshold once
// at least one provision is consumed.
func (r *Resolver) resolveEat(ctx context.Context, c *story.Choice, s *character.State, heal bool) (int, error) {
	edible := s.Provisions()
	if len(edible) == 0 {
		return 0, NewDenial("You have nothing to eat.")
	}

	options := make([]string, len(edible))
	for i, idx := range edible {
		options[i] = s.Items[idx].Name()
	}

	opts := ListOptions{
		Prompt:    "What will you eat?",
		Max:       c.Value,
		AllowBack: true,
	}
	if heal {
		// The heal is flat however many provisions go down, but at least
		// one must be eaten.
		opts.Min = 1
	}

	picked, err := r.ui.PresentList(ctx, options, opts)
	if err != nil {
		return 0, err
	}

	// Map selections back through the provision indexes so the right pack
	// entries are consumed.
	eaten := make([]story.ItemType, 0, len(picked))
	for _, p := range picked {
		eaten = append(eaten, s.Items[edible[p]])
	}
	s.LoseItems(eaten...)

	if heal {
		s.GainLife(c.Value)
	} else {
		s.GainLife(len(eaten) - c.Value)
	}
	return c.Destination, nil
}

func (r *Resolver) resolveDonate(ctx context.Context, c *story.Choice, s *character.State) (int, error) {
	if s.Money <= 0 {
		return 0, NewDenial("You have no money to give.")
	}

	options := make([]string, s.Money)
	for i := range options {
		options[i] = strconv.Itoa(i + 1)
	}

	picked, err := r.ui.PresentChoices(ctx, "How much will you give?", options, true)
	if err != nil {
		return 0, err
	}

	amount := picked + 1
	s.SpendMoney(amount)
	s.DonationAmount += amount
	return c.Destination, nil
}

// resolveGift lets the player give away one item. The gift table may remap
// the destination; giving an unlisted item, or backing out without giving,
// falls through to the choice's default destination.
func (r *Resolver) resolveGift(ctx context.Context, c *story.Choice, s *character.State) (int, error) {
	if len(s.Items) == 0 {
		return 0, NewDenial("You have nothing to give.")
	}

	options := make([]string, len(s.Items))
	for i, it := range s.Items {
		options[i] = it.Name()
	}

	picked, err := r.ui.PresentChoices(ctx, "What will you give?", options, true)
	if err != nil {
		if err == ErrBack {
			return c.Destination, nil
		}
		return 0, err
	}

	given := s.Items[picked]
	s.LoseItems(given)
	if dest, ok := c.Gifts[given]; ok {
		return dest, nil
	}
	return c.Destination, nil
}

// resolveLoseSkills forces skill loss until the active set is down to the
// limit. The selection re-prompts until satisfied; there is no backing out
// and no transition while the set is still over the limit.
func (r *Resolver) resolveLoseSkills(ctx context.Context, c *story.Choice, s *character.State) (int, error) {
	if err := forceSkillLoss(ctx, r.ui, s, c.Value); err != nil {
		return 0, err
	}
	return c.Destination, nil
}
