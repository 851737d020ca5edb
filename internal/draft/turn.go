package draft

// ActiveIndex maps the turn counter onto an index into the draft order.
// With snake enabled the direction reverses every completed pass, so the
// player who closes a round opens the next one. Returns ok=false when the
// roster is empty. pos = turn % rosterSize keeps the result in range even
// if the roster shrank after turn grew.
func ActiveIndex(turn, rosterSize int, snake bool) (int, bool) {
	if rosterSize <= 0 {
		return 0, false
	}
	round := turn / rosterSize
	pos := turn % rosterSize
	if snake && round%2 == 1 {
		return rosterSize - 1 - pos, true
	}
	return pos, true
}

// ActiveName resolves ActiveIndex against an order of names.
func ActiveName(order []string, turn int, snake bool) (string, bool) {
	idx, ok := ActiveIndex(turn, len(order), snake)
	if !ok {
		return "", false
	}
	return order[idx], true
}
