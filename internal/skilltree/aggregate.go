package skilltree

import "github.com/google/uuid"

// Resolve folds observed leaf levels bottom-up into one level per ancestor of
// rootID's subtree. Leaves resolve to their own observed level; a leaf with no
// observation is excluded entirely, never treated as level zero. An internal
// node resolves to the statistical mode of its resolved children; a node with
// no resolved children is omitted from the result.
func Resolve(ix *Index, rootID uuid.UUID, leafLevels map[uuid.UUID]int) (map[uuid.UUID]int, error) {
	order, err := ix.postOrder(rootID)
	if err != nil {
		return nil, err
	}
	resolved := make(map[uuid.UUID]int, len(order))
	for _, id := range order {
		n := ix.nodes[id]
		if len(n.children) == 0 {
			if lvl, ok := leafLevels[id]; ok {
				resolved[id] = lvl
			}
			continue
		}
		var levels []int
		for _, child := range n.children {
			if lvl, ok := resolved[child]; ok {
				levels = append(levels, lvl)
			}
		}
		if len(levels) == 0 {
			continue
		}
		resolved[id] = modeOf(levels)
	}
	return resolved, nil
}

// AggregateRoot resolves the subtree and reports the root's level. ok is
// false when no leaf under the root carries an observation.
func AggregateRoot(ix *Index, rootID uuid.UUID, leafLevels map[uuid.UUID]int) (int, bool, error) {
	resolved, err := Resolve(ix, rootID, leafLevels)
	if err != nil {
		return 0, false, err
	}
	lvl, ok := resolved[rootID]
	return lvl, ok, nil
}

// modeOf returns the most frequent level. Ties resolve to the highest tied
// level: students get the benefit of the doubt. This mirrors the grading
// policy the faculty signed off on; change it here and nowhere else.
func modeOf(levels []int) int {
	counts := make(map[int]int, len(levels))
	for _, lvl := range levels {
		counts[lvl]++
	}
	best, bestCount := 0, 0
	for lvl, count := range counts {
		if count > bestCount || (count == bestCount && lvl > best) {
			best, bestCount = lvl, count
		}
	}
	return best
}
