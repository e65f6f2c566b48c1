package session

import (
	"context"
	"fmt"

	"github.com/pixil98/go-gamebook/internal/character"
	"github.com/pixil98/go-gamebook/internal/story"
)

// forceSkillLoss re-prompts until the active skill set is down to limit.
// There is no backing out; staying above the limit is not a resolvable
// state, so the loop holds the player here until the invariant is met.
func forceSkillLoss(ctx context.Context, ui UI, s *character.State, limit int) error {
	for len(s.Skills) > limit {
		options := make([]string, len(s.Skills))
		for i, sk := range s.Skills {
			options[i] = sk.Name()
		}

		picked, err := ui.PresentList(ctx, options, ListOptions{
			Prompt: fmt.Sprintf("You must give up skills until %d remain.", limit),
			Min:    1,
			Max:    len(s.Skills) - limit,
		})
		if err != nil {
			return err
		}

		losses := make([]story.SkillType, 0, len(picked))
		for _, p := range picked {
			losses = append(losses, s.Skills[p])
		}
		s.LoseSkills(losses...)
	}
	return nil
}

// forceDrop re-prompts until the pack fits the carry limit. Each pass
// removes at least one item, so the loop always terminates.
func forceDrop(ctx context.Context, ui UI, s *character.State) error {
	for !s.VerifyPossessions() {
		options := make([]string, len(s.Items))
		for i, it := range s.Items {
			options[i] = it.Name()
		}

		picked, err := ui.PresentList(ctx, options, ListOptions{
			Prompt: fmt.Sprintf("You are carrying too much. Drop items until %d remain.", s.ItemLimit),
			Min:    1,
			Max:    len(s.Items) - s.ItemLimit,
		})
		if err != nil {
			return err
		}

		drops := make([]story.ItemType, 0, len(picked))
		for _, p := range picked {
			drops = append(drops, s.Items[p])
		}
		s.LoseItems(drops...)
	}
	return nil
}

// forceSteal strips items named in the node's lose pool until the player
// holds at most keep of them. Like dropping, it cannot be cancelled.
func forceSteal(ctx context.Context, ui UI, s *character.State, pool []story.ItemType, keep int) error {
	for {
		held := heldFromPool(s, pool)
		if len(held) <= keep {
			return nil
		}

		options := make([]string, len(held))
		for i, it := range held {
			options[i] = it.Name()
		}

		picked, err := ui.PresentList(ctx, options, ListOptions{
			Prompt: fmt.Sprintf("They take from you. Surrender items until you keep only %d.", keep),
			Min:    1,
			Max:    len(held) - keep,
		})
		if err != nil {
			return err
		}

		losses := make([]story.ItemType, 0, len(picked))
		for _, p := range picked {
			losses = append(losses, held[p])
		}
		s.LoseItems(losses...)
	}
}

// heldFromPool lists the player's items that appear in the pool, counting
// multiplicity in pack order.
func heldFromPool(s *character.State, pool []story.ItemType) []story.ItemType {
	quota := make(map[story.ItemType]int, len(pool))
	for _, it := range pool {
		quota[it]++
	}

	var held []story.ItemType
	for _, it := range s.Items {
		if quota[it] > 0 {
			quota[it]--
			held = append(held, it)
		}
	}
	return held
}

// offerTake lets the player pick up to limit items from the pool. Backing
// out takes nothing.
func offerTake(ctx context.Context, ui UI, s *character.State, pool []story.ItemType, limit int) error {
	options := make([]string, len(pool))
	for i, it := range pool {
		options[i] = it.Name()
	}

	picked, err := ui.PresentList(ctx, options, ListOptions{
		Prompt:    fmt.Sprintf("You may take up to %d:", limit),
		Max:       limit,
		AllowBack: true,
	})
	if err != nil {
		if err == ErrBack {
			return nil
		}
		return err
	}

	takes := make([]story.ItemType, 0, len(picked))
	for _, p := range picked {
		takes = append(takes, pool[p])
	}
	s.GetItems(takes...)
	return nil
}
