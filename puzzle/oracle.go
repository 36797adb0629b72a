package puzzle

// IsTerminal reports whether none of the offered shapes fits anywhere on the
// board. Nil entries are consumed slots and are skipped; an offer with no
// remaining shapes is vacuously terminal, so hosts refill before asking.
func IsTerminal(offered []*Shape, view BoardView) bool {
	for _, s := range offered {
		if s == nil {
			continue
		}
		if view.CanPlaceAnywhere(s) {
			return false
		}
	}
	return true
}
