package target

// Tracker implements "one result per target": once an item has been
// reported for a target, later sources skip both the item and the target.
// A disabled tracker accepts every item and never prunes.
type Tracker struct {
	enabled   bool
	items     map[string]struct{}
	satisfied []string
}

func NewTracker(enabled bool) *Tracker {
	return &Tracker{enabled: enabled, items: map[string]struct{}{}}
}

// Add records that item was found for arg. It returns false when item was
// already reported through another target.
func (t *Tracker) Add(arg, item string) bool {
	if t == nil || !t.enabled {
		return true
	}
	t.satisfied = append(t.satisfied, arg)
	if _, ok := t.items[item]; ok {
		return false
	}
	t.items[item] = struct{}{}
	return true
}

// Prune returns targets without the ones already satisfied.
func (t *Tracker) Prune(targets []string) []string {
	if t == nil || !t.enabled || len(t.satisfied) == 0 {
		return targets
	}
	done := make(map[string]struct{}, len(t.satisfied))
	for _, s := range t.satisfied {
		done[s] = struct{}{}
	}
	out := make([]string, 0, len(targets))
	for _, tg := range targets {
		if _, ok := done[tg]; ok {
			continue
		}
		out = append(out, tg)
	}
	return out
}
