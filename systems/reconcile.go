package systems

// Reconcile diffs the ids a view currently holds against the ids it should hold.
// added keeps the order of want, removed keeps the order of have.
// Duplicate ids are reported once.
func Reconcile[K comparable](have, want []K) (added, removed []K) {
	haveSet := make(map[K]struct{}, len(have))
	for _, k := range have {
		haveSet[k] = struct{}{}
	}
	wantSet := make(map[K]struct{}, len(want))
	for _, k := range want {
		if _, dup := wantSet[k]; dup {
			continue
		}
		wantSet[k] = struct{}{}
		if _, ok := haveSet[k]; !ok {
			added = append(added, k)
		}
	}
	seen := make(map[K]struct{}, len(have))
	for _, k := range have {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := wantSet[k]; !ok {
			removed = append(removed, k)
		}
	}
	return added, removed
}
