// Package ordering assigns gap-spaced position keys to ordered siblings: items of one list
// partition (a group, or the ungrouped items of a list) or the groups of a list. It does no I/O:
// callers load a partition, compute the writes here and persist them.
package ordering

import (
	"slices"
	"strings"
	"time"

	"github.com/checkmarble/asset-lists/models"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-set/v2"
)

// GAP is the spacing between two consecutive keys after a backfill or a rebalance.
const GAP int64 = 10

var (
	// ErrNeedsRebalance is returned when the two neighbors of the target slot have adjacent keys,
	// so that no integer key fits strictly between them.
	ErrNeedsRebalance = errors.New("no free position key between the neighbors, the partition must be rebalanced")

	ErrMissingPositionKey = errors.Wrap(models.InvariantViolationError,
		"a sibling has no position key, the partition must be backfilled first")
	ErrDuplicateSibling = errors.Wrap(models.InvariantViolationError, "the same entity appears twice in the partition")
)

type Sibling struct {
	Id        string
	Position  *int64
	CreatedAt time.Time
}

type Assignment struct {
	Id       string
	Position int64
}

type MoveResult struct {
	Assignments []Assignment
	Rebalanced  bool
}

func compareSiblings(a, b Sibling) int {
	switch {
	case a.Position != nil && b.Position == nil:
		return -1
	case a.Position == nil && b.Position != nil:
		return 1
	case a.Position != nil && b.Position != nil && *a.Position != *b.Position:
		if *a.Position < *b.Position {
			return -1
		}
		return 1
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.Id, b.Id)
}

// SortSiblings returns a sorted copy: keyed siblings by key, then unkeyed ones, ties broken by
// creation time and id.
func SortSiblings(siblings []Sibling) []Sibling {
	sorted := slices.Clone(siblings)
	slices.SortStableFunc(sorted, compareSiblings)
	return sorted
}

func checkSiblings(siblings []Sibling, requireKeys bool) error {
	seen := set.New[string](len(siblings))
	for _, s := range siblings {
		if !seen.Insert(s.Id) {
			return errors.Wrapf(ErrDuplicateSibling, "sibling %s", s.Id)
		}
		if requireKeys && s.Position == nil {
			return errors.Wrapf(ErrMissingPositionKey, "sibling %s", s.Id)
		}
	}
	return nil
}

func checkIndexes(length, fromIndex, toIndex int) error {
	if fromIndex < 0 || fromIndex >= length || toIndex < 0 || toIndex >= length {
		return errors.Wrapf(models.ErrPositionOutOfRange,
			"cannot move from %d to %d in a partition of %d", fromIndex, toIndex, length)
	}
	return nil
}

func floorDiv2(a int64) int64 {
	if a < 0 && a%2 != 0 {
		return a/2 - 1
	}
	return a / 2
}

// ComputeMoveKey returns the new key of the sibling at fromIndex so that it lands at toIndex.
// toIndex is the final index of the moved sibling, counted in the partition after the move. The
// siblings must be sorted by key and all carry a key.
func ComputeMoveKey(sorted []Sibling, fromIndex, toIndex int) (int64, error) {
	if err := checkSiblings(sorted, true); err != nil {
		return 0, err
	}
	if err := checkIndexes(len(sorted), fromIndex, toIndex); err != nil {
		return 0, err
	}

	remaining := slices.Delete(slices.Clone(sorted), fromIndex, fromIndex+1)
	if len(remaining) == 0 {
		return *sorted[fromIndex].Position, nil
	}

	switch {
	case toIndex == 0:
		return *remaining[0].Position - GAP, nil
	case toIndex >= len(remaining):
		return *remaining[len(remaining)-1].Position + GAP, nil
	}

	before := *remaining[toIndex-1].Position
	after := *remaining[toIndex].Position
	if after-before <= 1 {
		return 0, errors.Wrapf(ErrNeedsRebalance, "neighbors %d and %d", before, after)
	}
	return floorDiv2(before + after), nil
}

// Move computes the writes for moving the sibling at fromIndex to toIndex. In the normal case only
// the moved sibling gets a new key. When there is no room between the neighbors, the move is
// applied and the whole partition is rebalanced: the result then carries every key that changed.
func Move(sorted []Sibling, fromIndex, toIndex int) (MoveResult, error) {
	if err := checkSiblings(sorted, true); err != nil {
		return MoveResult{}, err
	}
	if err := checkIndexes(len(sorted), fromIndex, toIndex); err != nil {
		return MoveResult{}, err
	}
	if fromIndex == toIndex {
		return MoveResult{Assignments: []Assignment{}}, nil
	}

	newKey, err := ComputeMoveKey(sorted, fromIndex, toIndex)
	if err == nil {
		return MoveResult{
			Assignments: []Assignment{{Id: sorted[fromIndex].Id, Position: newKey}},
		}, nil
	}
	if !errors.Is(err, ErrNeedsRebalance) {
		return MoveResult{}, err
	}

	moved := sorted[fromIndex]
	permuted := slices.Delete(slices.Clone(sorted), fromIndex, fromIndex+1)
	permuted = slices.Insert(permuted, toIndex, moved)

	return MoveResult{
		Assignments: changedOnly(permuted, Rebalance(permuted)),
		Rebalanced:  true,
	}, nil
}

// Backfill gives a key to every sibling that has none, after the largest existing key, in creation
// order. Keyed siblings are never touched, so running it again is a no-op.
func Backfill(siblings []Sibling) []Assignment {
	var maxKey int64
	missing := make([]Sibling, 0)
	for _, s := range siblings {
		if s.Position == nil {
			missing = append(missing, s)
			continue
		}
		maxKey = max(maxKey, *s.Position)
	}

	slices.SortStableFunc(missing, compareSiblings)

	assignments := make([]Assignment, 0, len(missing))
	for i, s := range missing {
		assignments = append(assignments, Assignment{
			Id:       s.Id,
			Position: maxKey + int64(i+1)*GAP,
		})
	}
	return assignments
}

// Rebalance spaces the keys of the sorted siblings uniformly, starting at GAP, without changing
// their order.
func Rebalance(sorted []Sibling) []Assignment {
	assignments := make([]Assignment, 0, len(sorted))
	for i, s := range sorted {
		assignments = append(assignments, Assignment{
			Id:       s.Id,
			Position: int64(i+1) * GAP,
		})
	}
	return assignments
}

// NextKey returns the key that appends a new sibling at the end of the partition.
func NextKey(siblings []Sibling) int64 {
	var maxKey int64
	for _, s := range siblings {
		if s.Position != nil {
			maxKey = max(maxKey, *s.Position)
		}
	}
	return maxKey + GAP
}

// Apply returns a sorted copy of the siblings with the assignments applied.
func Apply(siblings []Sibling, assignments []Assignment) []Sibling {
	byId := make(map[string]int64, len(assignments))
	for _, a := range assignments {
		byId[a.Id] = a.Position
	}

	result := make([]Sibling, len(siblings))
	for i, s := range siblings {
		if p, ok := byId[s.Id]; ok {
			s.Position = &p
		}
		result[i] = s
	}
	return SortSiblings(result)
}

func changedOnly(siblings []Sibling, assignments []Assignment) []Assignment {
	current := make(map[string]*int64, len(siblings))
	for _, s := range siblings {
		current[s.Id] = s.Position
	}
	return slices.DeleteFunc(assignments, func(a Assignment) bool {
		p := current[a.Id]
		return p != nil && *p == a.Position
	})
}
