package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-gamebook/internal/character"
	"github.com/pixil98/go-gamebook/internal/display"
	"github.com/pixil98/go-gamebook/internal/storage"
	"github.com/pixil98/go-gamebook/internal/story"
)

const defaultMessageDuration = 3 * time.Second

// EndReason says how a session finished.
type EndReason int

const (
	EndDeath EndReason = iota
	EndGoodEnding
	EndBadEnding
	EndDoom
	EndRestart
)

// Controller drives the node-visit loop for one session: background
// resolution, entry events, forced interstitials, choice presentation and
// resolution, transition. It owns the state for the session's duration;
// nothing else mutates it.
type Controller struct {
	reg      *story.Registry
	ui       UI
	resolver *Resolver
	saves    storage.Storer[*character.Record]
	pub      Publisher

	sessionID string
	saveName  string
	msgDur    time.Duration
}

func NewController(reg *story.Registry, ui UI, saves storage.Storer[*character.Record], pub Publisher) *Controller {
	return &Controller{
		reg:       reg,
		ui:        ui,
		resolver:  NewResolver(ui),
		saves:     saves,
		pub:       pub,
		sessionID: uuid.NewString(),
		msgDur:    defaultMessageDuration,
	}
}

// SetSaveName makes subsequent saves overwrite the named file instead of
// the character's timestamp-derived default.
func (c *Controller) SetSaveName(name string) {
	c.saveName = name
}

// SetMessageDuration overrides how long transient messages linger.
func (c *Controller) SetMessageDuration(d time.Duration) {
	if d > 0 {
		c.msgDur = d
	}
}

// Run plays from the state's current node until a terminal node, death, or
// context cancellation. Cancellation unwinds without saving; the last
// explicit save stays the durable checkpoint.
func (c *Controller) Run(ctx context.Context, s *character.State) (EndReason, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		node, _ := c.reg.FindNode(s.NodeID)
		node, err := c.reg.ResolveBackground(node, s)
		if err != nil {
			return 0, fmt.Errorf("resolving background chain: %w", err)
		}
		s.NodeID = node.ID

		lifeAtEntry := s.Life
		if node.OnEvent != nil {
			node.OnEvent(s)
		}
		publishEvent(c.pub, c.sessionID, EventVisit, s.Name, node.ID, "")

		if err := c.showNode(s, node); err != nil {
			return 0, err
		}

		if s.IsDead() {
			publishEvent(c.pub, c.sessionID, EventDeath, s.Name, node.ID, "")
			return EndDeath, nil
		}

		if reason, ended := c.checkEnding(s, node); ended {
			return reason, nil
		}

		dest, err := c.nodeLoop(ctx, s, node, lifeAtEntry)
		if err != nil {
			return 0, err
		}

		if s.IsDead() {
			// The transition still happens; the session just ends there.
			s.NodeID = dest
			publishEvent(c.pub, c.sessionID, EventDeath, s.Name, dest, "")
			return EndDeath, nil
		}

		if node.Farewell != "" {
			if err := c.ui.ShowText(node.Farewell); err != nil {
				return 0, err
			}
		}
		s.NodeID = dest
	}
}

func (c *Controller) checkEnding(s *character.State, node *story.Node) (EndReason, bool) {
	switch node.Kind {
	case story.KindGoodEnding:
		publishEvent(c.pub, c.sessionID, EventEnding, s.Name, node.ID, "good")
		return EndGoodEnding, true
	case story.KindBadEnding:
		publishEvent(c.pub, c.sessionID, EventEnding, s.Name, node.ID, "bad")
		return EndBadEnding, true
	case story.KindDoom:
		publishEvent(c.pub, c.sessionID, EventEnding, s.Name, node.ID, "doom")
		return EndDoom, true
	case story.KindRestart:
		publishEvent(c.pub, c.sessionID, EventEnding, s.Name, node.ID, "restart")
		return EndRestart, true
	}
	return 0, false
}

// nodeLoop holds the player at one node: forced interstitials, the
// blessing offer, then choice presentation. A denial or a self-loop
// destination re-enters the loop; anything else is a real transition.
func (c *Controller) nodeLoop(ctx context.Context, s *character.State, node *story.Node, lifeAtEntry int) (int, error) {
	takeOffered := false
	blessingDeclined := false

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		if node.SkillLimit != nil {
			if err := forceSkillLoss(ctx, c.ui, s, *node.SkillLimit); err != nil {
				return 0, err
			}
		}

		if !takeOffered && node.TakeLimit > 0 && len(node.Take) > 0 {
			takeOffered = true
			if err := offerTake(ctx, c.ui, s, node.Take, node.TakeLimit); err != nil {
				return 0, err
			}
		}

		if len(node.Lose) > 0 {
			if err := forceSteal(ctx, c.ui, s, node.Lose, node.KeepLimit); err != nil {
				return 0, err
			}
		}

		if err := forceDrop(ctx, c.ui, s); err != nil {
			return 0, err
		}

		if !blessingDeclined {
			declined, err := c.offerBlessing(ctx, s, lifeAtEntry)
			if err != nil {
				return 0, err
			}
			blessingDeclined = declined
		}

		dest, err := c.presentChoices(ctx, s, node)
		if err != nil {
			var denial *Denial
			switch {
			case errors.As(err, &denial):
				if msgErr := c.ui.ShowMessage(denial.Message, SeverityWarn, c.msgDur); msgErr != nil {
					return 0, msgErr
				}
				continue
			case errors.Is(err, ErrBack):
				continue
			default:
				return 0, err
			}
		}

		if s.IsDead() {
			return dest, nil
		}
		if dest == node.ID {
			continue
		}
		return dest, nil
	}
}

// offerBlessing is the one-time life-loss veto: if the player is blessed
// and life dropped since entering the node, they may undo the loss at the
// cost of the blessing. It reports whether the offer was declined; a
// decline holds for the rest of the node visit.
func (c *Controller) offerBlessing(ctx context.Context, s *character.State, lifeAtEntry int) (bool, error) {
	if !s.IsBlessed || s.Life >= lifeAtEntry {
		return false, nil
	}

	use, err := c.ui.Confirm(ctx, "Your blessing stirs. Use it to undo the harm?")
	if err != nil {
		return false, err
	}
	if !use {
		return true, nil
	}

	s.GainLife(lifeAtEntry - s.Life)
	s.IsBlessed = false
	return false, c.ui.ShowMessage("The blessing is spent.", SeverityInfo, c.msgDur)
}

// presentChoices builds the menu (story choices plus node utilities),
// reads a selection, and resolves it.
func (c *Controller) presentChoices(ctx context.Context, s *character.State, node *story.Node) (int, error) {
	options := make([]string, 0, len(node.Choices)+5)
	for _, ch := range node.Choices {
		options = append(options, ch.Text)
	}

	type extra struct {
		label string
		run   func(context.Context, *character.State, *story.Node) error
	}
	var extras []extra

	if node.Trade != nil && s.HasItems(node.Trade.Give) {
		extras = append(extras, extra{
			label: fmt.Sprintf("Trade your %s for a %s", node.Trade.Give.Name(), node.Trade.Get.Name()),
			run:   c.runTrade,
		})
	}
	if len(node.Shop) > 0 {
		extras = append(extras, extra{label: "Browse the wares", run: c.runShop})
	}
	if len(node.Choices) > 0 && s.HasItems(story.ItemCrystalBall) {
		extras = append(extras, extra{label: "Consult the crystal ball", run: c.runPreview})
	}
	extras = append(extras, extra{label: "Character sheet", run: c.runSheet})
	if c.saves != nil {
		extras = append(extras, extra{label: "Save your progress", run: c.runSave})
	}
	for _, e := range extras {
		options = append(options, e.label)
	}

	picked, err := c.ui.PresentChoices(ctx, "What will you do?", options, false)
	if err != nil {
		return 0, err
	}

	if picked >= len(node.Choices) {
		e := extras[picked-len(node.Choices)]
		if err := e.run(ctx, s, node); err != nil {
			return 0, err
		}
		return node.ID, nil
	}

	return c.resolver.Resolve(ctx, &node.Choices[picked], s)
}

func (c *Controller) runTrade(ctx context.Context, s *character.State, node *story.Node) error {
	t := node.Trade
	ok, err := c.ui.Confirm(ctx, fmt.Sprintf("Give your %s for a %s?", t.Give.Name(), t.Get.Name()))
	if err != nil {
		return err
	}
	if !ok || !s.HasItems(t.Give) {
		return nil
	}
	s.LoseItems(t.Give)
	s.GetItems(t.Get)
	return c.ui.ShowMessage(fmt.Sprintf("You now carry a %s.", t.Get.Name()), SeverityInfo, c.msgDur)
}

func (c *Controller) runShop(ctx context.Context, s *character.State, node *story.Node) error {
	wares := make([]story.ItemType, 0, len(node.Shop))
	for it := range node.Shop {
		wares = append(wares, it)
	}
	slices.Sort(wares)

	for {
		options := make([]string, len(wares))
		for i, it := range wares {
			options[i] = fmt.Sprintf("%s (%d coins)", it.Name(), node.Shop[it])
		}

		picked, err := c.ui.PresentChoices(ctx, fmt.Sprintf("You have %d coins. Buy what?", s.Money), options, true)
		if err != nil {
			if errors.Is(err, ErrBack) {
				return nil
			}
			return err
		}

		item := wares[picked]
		if !s.SpendMoney(node.Shop[item]) {
			if err := c.ui.ShowMessage("You can't afford that.", SeverityWarn, c.msgDur); err != nil {
				return err
			}
			continue
		}
		s.GetItems(item)
		if err := c.ui.ShowMessage(fmt.Sprintf("You buy the %s.", item.Name()), SeverityInfo, c.msgDur); err != nil {
			return err
		}
	}
}

// runPreview is the precognition feature: pick a choice and glimpse the
// node it leads to, simulated against a copy of the state.
func (c *Controller) runPreview(ctx context.Context, s *character.State, node *story.Node) error {
	options := make([]string, len(node.Choices))
	for i, ch := range node.Choices {
		options[i] = ch.Text
	}

	picked, err := c.ui.PresentChoices(ctx, "Which path will you scry?", options, true)
	if err != nil {
		if errors.Is(err, ErrBack) {
			return nil
		}
		return err
	}

	dest, err := c.reg.FindNode(node.Choices[picked].Destination)
	if err != nil {
		return c.ui.ShowMessage("The glass stays dark.", SeverityWarn, c.msgDur)
	}

	text, err := c.reg.SimulateFuture(dest, s)
	if err != nil {
		return c.ui.ShowMessage("The glass stays dark.", SeverityWarn, c.msgDur)
	}

	rendered, err := display.ExpandText(text, s)
	if err != nil {
		rendered = text
	}
	return c.ui.ShowText("A vision swims up through the glass:\n\n" + display.Wrap(rendered))
}

func (c *Controller) runSheet(ctx context.Context, s *character.State, node *story.Node) error {
	return c.ui.ShowText(display.Sheet(s))
}

func (c *Controller) runSave(ctx context.Context, s *character.State, node *story.Node) error {
	name := c.saveName
	if name == "" {
		name = strconv.FormatInt(s.CreatedAt, 10)
		c.saveName = name
	}

	err := c.saves.Save(name, character.EncodeRecord(s))
	if err != nil {
		return fmt.Errorf("saving game: %w", err)
	}

	publishEvent(c.pub, c.sessionID, EventSave, s.Name, s.NodeID, name)
	return c.ui.ShowMessage("Your progress is recorded.", SeverityInfo, c.msgDur)
}

func (c *Controller) showNode(s *character.State, node *story.Node) error {
	if node.Text == "" {
		return nil
	}

	text, err := display.ExpandText(node.Text, s)
	if err != nil {
		return fmt.Errorf("rendering node %d: %w", node.ID, err)
	}
	if node.Image != "" {
		text = fmt.Sprintf("[Illustration: %s]\n\n%s", node.Image, text)
	}
	return c.ui.ShowText(display.Wrap(text))
}
