package reorder

// Reinsert is the list-based fallback for stores that cannot run range
// updates: it removes id from column (if present) and inserts it at index,
// clamped to the end of the list. The input slice is not modified.
func Reinsert(column []int64, id int64, index int) []int64 {
	out := make([]int64, 0, len(column)+1)
	for _, existing := range column {
		if existing != id {
			out = append(out, existing)
		}
	}

	index = Clamp(index, len(out))
	out = append(out, 0)
	copy(out[index+1:], out[index:])
	out[index] = id
	return out
}

// Remove returns column without id
func Remove(column []int64, id int64) []int64 {
	out := make([]int64, 0, len(column))
	for _, existing := range column {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

// Renumber maps each id to its list index
func Renumber(column []int64) map[int64]int {
	positions := make(map[int64]int, len(column))
	for i, id := range column {
		positions[id] = i
	}
	return positions
}

// Changed returns the ids whose position differs between current and next.
// Ids missing from current are always reported.
func Changed(current, next map[int64]int) []int64 {
	var ids []int64
	for id, pos := range next {
		if old, ok := current[id]; !ok || old != pos {
			ids = append(ids, id)
		}
	}
	return ids
}
