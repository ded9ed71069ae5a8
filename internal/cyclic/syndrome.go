package cyclic

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mrz1836/cyclic/internal/gf2"
	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

// denseLimit is the largest syndrome width that gets an array-indexed table.
const denseLimit = 16

// Entry maps the syndrome of a single-bit error to its position.
type Entry struct {
	Syndrome gf2.Bits `json:"syndrome"`
	Position int      `json:"position"`
}

// Collision lists error positions that share one syndrome. A zero syndrome
// marks positions whose errors are undetectable.
type Collision struct {
	Syndrome  gf2.Bits `json:"syndrome"`
	Positions []int    `json:"positions"`
}

// Table maps single-bit-error syndromes to error positions. It is immutable
// once built.
type Table struct {
	width      int
	dense      []int8
	sparse     map[gf2.Poly]int
	entries    []Entry
	collisions []Collision
}

// NewTable builds the syndrome table from a parity-check matrix. The
// syndrome of the unit error at position i is column i of h.
//
// When two positions share a syndrome, or a position has the zero
// syndrome, NewTable fails with ErrAmbiguousSyndromeTable unless
// allowAmbiguous is set; then the offending syndromes are left out of the
// table and recorded in Collisions.
func NewTable(h *gf2.Matrix, allowAmbiguous bool) (*Table, error) {
	n := h.Cols()
	byPosition := make([]gf2.Poly, n)
	bySyndrome := make(map[gf2.Poly][]int, n)
	for i := 0; i < n; i++ {
		s := h.Column(i)
		byPosition[i] = s
		bySyndrome[s] = append(bySyndrome[s], i)
	}

	t := &Table{width: h.Rows()}
	for s, positions := range bySyndrome {
		if s == 0 || len(positions) > 1 {
			t.collisions = append(t.collisions, Collision{
				Syndrome:  s.Bits(t.width),
				Positions: positions,
			})
		}
	}
	sort.Slice(t.collisions, func(a, b int) bool {
		return t.collisions[a].Positions[0] < t.collisions[b].Positions[0]
	})

	if len(t.collisions) > 0 && !allowAmbiguous {
		return nil, cyclicerr.WithDetails(ErrAmbiguousSyndromeTable, map[string]string{
			"positions": formatCollisions(t.collisions),
		})
	}

	if t.width <= denseLimit {
		t.dense = make([]int8, 1<<uint(t.width))
		for i := range t.dense {
			t.dense[i] = -1
		}
	} else {
		t.sparse = make(map[gf2.Poly]int, n)
	}

	for i, s := range byPosition {
		if s == 0 || len(bySyndrome[s]) > 1 {
			continue
		}
		if t.dense != nil {
			t.dense[s] = int8(i) //nolint:gosec // i < 64
		} else {
			t.sparse[s] = i
		}
		t.entries = append(t.entries, Entry{Syndrome: s.Bits(t.width), Position: i})
	}

	return t, nil
}

// Lookup returns the error position for syndrome s. The zero syndrome and
// ambiguous syndromes are never found. A nil table finds nothing.
func (t *Table) Lookup(s gf2.Poly) (int, bool) {
	if t == nil || s == 0 {
		return 0, false
	}
	if t.dense != nil {
		if uint64(s) >= uint64(len(t.dense)) {
			return 0, false
		}
		pos := t.dense[s]
		return int(pos), pos >= 0
	}
	pos, ok := t.sparse[s]
	return pos, ok
}

// Width returns the syndrome length n-k.
func (t *Table) Width() int { return t.width }

// Len returns the number of correctable positions.
func (t *Table) Len() int { return len(t.entries) }

// Entries returns the table sorted by error position.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Collisions returns the ambiguous syndromes found while building.
func (t *Table) Collisions() []Collision {
	out := make([]Collision, len(t.collisions))
	copy(out, t.collisions)
	return out
}

// Ambiguous reports whether any collision was recorded.
func (t *Table) Ambiguous() bool { return len(t.collisions) > 0 }

func formatCollisions(cs []Collision) string {
	groups := make([]string, len(cs))
	for i, c := range cs {
		ps := make([]string, len(c.Positions))
		for j, p := range c.Positions {
			ps[j] = strconv.Itoa(p)
		}
		groups[i] = strings.Join(ps, ",")
	}
	return strings.Join(groups, ";")
}
