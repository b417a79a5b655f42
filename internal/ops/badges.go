package ops

import (
	"github.com/flowdeck/flowdeck/internal/flow"
	"github.com/flowdeck/flowdeck/internal/store"
)

// Badge is one achievement with its current unlock state.
type Badge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

// BadgesOutput contains the result of the Badges operation.
type BadgesOutput struct {
	Badges []Badge `json:"badges"`
	Earned int     `json:"earned"`
}

// Badges evaluates every achievement against the current collection. Badges
// are derived, never stored, so one that was earned can lapse again.
func Badges(st *store.Store) *BadgesOutput {
	unlocked := flow.EvaluateBadges(st.Items(), st.OverloadSeen())

	badges := make([]Badge, 0, len(flow.BadgeOrder))
	earned := 0
	for _, name := range flow.BadgeOrder {
		b := Badge{
			Name:        name,
			Description: flow.BadgeDescriptions[name],
			Earned:      unlocked[name],
		}
		if b.Earned {
			earned++
		}
		badges = append(badges, b)
	}

	return &BadgesOutput{Badges: badges, Earned: earned}
}
