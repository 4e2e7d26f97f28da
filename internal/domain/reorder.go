package domain

// AvailabilityCheckResult classifies a historical order's lines against the
// current catalog. Available lines carry menu item snapshots refreshed to
// catalog truth; unavailable lines keep their order-time snapshot untouched.
// Derived per call, never stored.
type AvailabilityCheckResult struct {
	AvailableItems   []CartItem
	UnavailableItems []CartItem
	AllAvailable     bool
	NoneAvailable    bool
}

// ReorderResult is the outcome of one reorder invocation. Failures are
// reported here, never as an error return: callers check Success.
type ReorderResult struct {
	Success          bool
	ItemsAdded       int
	UnavailableCount int
	Error            string
}

// SelectionsByGroup flattens selected customizations into a lookup from
// customization group id to the set of selected option ids, used to
// pre-populate the edit form of an existing cart line. Duplicate option ids
// collapse; the result is never nil.
func SelectionsByGroup(selections []SelectedCustomization) map[string]map[string]bool {
	groups := make(map[string]map[string]bool)
	for _, sel := range selections {
		set, ok := groups[sel.CustomizationID]
		if !ok {
			set = make(map[string]bool)
			groups[sel.CustomizationID] = set
		}
		for _, opt := range sel.SelectedOptions {
			set[opt.OptionID] = true
		}
	}
	return groups
}
