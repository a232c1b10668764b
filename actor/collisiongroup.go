package actor

import "github.com/akmonengine/ballast/contract"

// NoGroup is the GroupID of a body that belongs to no group, it collides with every group
const NoGroup uint32 = 0

// GroupFilter decides if two collision groups can collide
type GroupFilter interface {
	CanCollide(group1, group2 CollisionGroup) bool
}

// CollisionGroup is the collision filter value of a body.
// The zero value collides with everything.
type CollisionGroup struct {
	Filter     GroupFilter
	GroupID    uint32
	SubGroupID uint32
}

// CanCollide asks the first non nil filter of the two groups.
func (g CollisionGroup) CanCollide(other CollisionGroup) bool {
	if g.Filter != nil {
		return g.Filter.CanCollide(g, other)
	}
	if other.Filter != nil {
		return other.Filter.CanCollide(other, g)
	}
	return true
}

// ExclusiveGroupFilter prevents collisions between bodies sharing the same group.
// Typical use: the parts of a composite object should not collide with each other.
type ExclusiveGroupFilter struct{}

func (ExclusiveGroupFilter) CanCollide(group1, group2 CollisionGroup) bool {
	return group1.GroupID == NoGroup || group1.GroupID != group2.GroupID
}

// GroupFilterTable enables or disables collisions between sub groups of the same group.
// Bodies of different groups always collide, two bodies of the same sub group never do.
type GroupFilterTable struct {
	numSubGroups uint32
	enabled      []bool // lower triangle, one entry per sub group pair
}

// NewGroupFilterTable creates a table where all sub groups collide with each other.
func NewGroupFilterTable(numSubGroups uint32) *GroupFilterTable {
	n := int(numSubGroups)
	table := &GroupFilterTable{
		numSubGroups: numSubGroups,
		enabled:      make([]bool, n*(n-1)/2),
	}
	for i := range table.enabled {
		table.enabled[i] = true
	}

	return table
}

func (t *GroupFilterTable) pairIndex(subGroup1, subGroup2 uint32) int {
	contract.Require(subGroup1 != subGroup2 && subGroup1 < t.numSubGroups && subGroup2 < t.numSubGroups,
		"invalid sub group pair")

	low, high := int(subGroup1), int(subGroup2)
	if low > high {
		low, high = high, low
	}
	return high*(high-1)/2 + low
}

func (t *GroupFilterTable) DisableCollision(subGroup1, subGroup2 uint32) {
	t.enabled[t.pairIndex(subGroup1, subGroup2)] = false
}

func (t *GroupFilterTable) EnableCollision(subGroup1, subGroup2 uint32) {
	t.enabled[t.pairIndex(subGroup1, subGroup2)] = true
}

func (t *GroupFilterTable) IsCollisionEnabled(subGroup1, subGroup2 uint32) bool {
	if subGroup1 == subGroup2 {
		return false
	}
	return t.enabled[t.pairIndex(subGroup1, subGroup2)]
}

func (t *GroupFilterTable) CanCollide(group1, group2 CollisionGroup) bool {
	if group1.GroupID == NoGroup || group2.GroupID == NoGroup {
		return true
	}
	if group1.GroupID != group2.GroupID {
		return true
	}
	// Same group but another table: we can't compare sub groups
	if group1.Filter != group2.Filter {
		return false
	}
	return t.IsCollisionEnabled(group1.SubGroupID, group2.SubGroupID)
}
