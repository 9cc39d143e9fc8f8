package ids

import "strconv"

// NextID returns the next free integer identifier for a collection, given the
// identifiers already in use. Non-numeric entries are ignored so a foreign
// manifest with freeform identifiers does not block insertion. An empty
// collection starts at 0.
func NextID(existing []string) int {
	next := 0
	for _, id := range existing {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if n+1 > next {
			next = n + 1
		}
	}
	return next
}

// Renumber reassigns identifiers "0".."n-1" in slice order. It must run after
// every structural removal so identifiers stay dense and collision free.
func Renumber[T any](items []T, assign func(item *T, id string)) {
	for i := range items {
		assign(&items[i], strconv.Itoa(i))
	}
}
