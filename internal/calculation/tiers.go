package calculation

// ResolveTier returns the largest ladder threshold not exceeding balance,
// or 0 when the balance is below the lowest tier. The ladder must be
// ascending; the resolved value is always a ladder member or 0, and the
// result is non-decreasing in the balance.
func ResolveTier(ladder []int64, balance int64) int64 {
	var resolved int64
	for _, tier := range ladder {
		if tier > balance {
			break
		}
		resolved = tier
	}
	return resolved
}
