package actor

import (
	"math"
	"strconv"

	"github.com/akmonengine/ballast/contract"
)

// InactiveRaw is the numeric encoding of an inactive index, higher than any active index
const InactiveRaw uint32 = math.MaxUint32

// ActiveIndex is the position of a body in the active body list, or inactive.
// The zero value is inactive.
type ActiveIndex struct {
	index  uint32
	active bool
}

// InactiveIndex marks a body that is not in the active list
var InactiveIndex = ActiveIndex{}

// ActiveAt returns the index of a body stored at position i of the active list.
func ActiveAt(i uint32) ActiveIndex {
	contract.Require(i != InactiveRaw, "active index collides with the inactive encoding")

	return ActiveIndex{index: i, active: true}
}

func (a ActiveIndex) IsActive() bool {
	return a.active
}

// Get returns the index and whether the body is active.
func (a ActiveIndex) Get() (uint32, bool) {
	return a.index, a.active
}

// Less orders active indices by value, and inactive after every active index.
// Two inactive indices are never less than each other.
func (a ActiveIndex) Less(b ActiveIndex) bool {
	if !a.active {
		return false
	}
	if !b.active {
		return true
	}
	return a.index < b.index
}

// Raw returns the index, or InactiveRaw.
func (a ActiveIndex) Raw() uint32 {
	if !a.active {
		return InactiveRaw
	}
	return a.index
}

func (a ActiveIndex) String() string {
	if !a.active {
		return "inactive"
	}
	return strconv.FormatUint(uint64(a.index), 10)
}
