package flow

// Badge names. Thresholds are fixed and evaluated independently per badge.
const (
	BadgeStarter      = "Starter"
	BadgeFinisher     = "Finisher"
	BadgeIdeaBank     = "Idea Bank"
	BadgeRealityCheck = "Reality Check"
)

// BadgeOrder is the display order for badge listings.
var BadgeOrder = []string{BadgeStarter, BadgeFinisher, BadgeIdeaBank, BadgeRealityCheck}

// BadgeDescriptions explains how each badge is earned.
var BadgeDescriptions = map[string]string{
	BadgeStarter:      "Captured more than 5 items",
	BadgeFinisher:     "Actually finished more than one thing",
	BadgeIdeaBank:     "Banked more than 10 ideas",
	BadgeRealityCheck: "Got called out for overcommitting",
}

// EvaluateBadges derives unlocked flags from the current item collection plus
// the session's overload history. Nothing here is persisted; callers
// recompute on every read.
func EvaluateBadges(items []Item, overloadSeen bool) map[string]bool {
	var done, ideas int
	for _, item := range items {
		if item.Status == StatusDone {
			done++
		}
		if item.Type == TypeIdea {
			ideas++
		}
	}

	return map[string]bool{
		BadgeStarter:      len(items) > 5,
		BadgeFinisher:     done > 1,
		BadgeIdeaBank:     ideas > 10,
		BadgeRealityCheck: overloadSeen,
	}
}
