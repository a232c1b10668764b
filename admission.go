package ballast

import (
	"github.com/akmonengine/ballast/actor"
	"github.com/akmonengine/ballast/contract"
	"go.uber.org/zap"
)

const DEFAULT_WORKERS = 1

// Pair of bodies whose bounds overlap, as reported by the broad phase
type Pair struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

// CanCollide decides if the ordered pair (body1, body2) reported by the broad phase
// produces a collision pair. body1 must be active.
//
// For an unordered pair of bodies that can collide, exactly one ordering is admitted.
func CanCollide(body1, body2 *actor.RigidBody) bool {
	// One of the bodies must be dynamic, a kinematic body can still trigger a sensor
	if !body1.IsDynamic() && !body2.IsDynamic() && !(body1.IsKinematic() && body2.IsSensor()) {
		return false
	}

	index1 := body1.ActiveIndex()
	if contract.Enabled && (body1.IsStatic() || !index1.IsActive()) {
		contract.Fail("the first body of a pair must be active",
			zap.Uint32("body", uint32(body1.ID())), zap.Stringer("motion_type", body1.MotionType()))
	}

	// Active indices are unique and inactive sorts after every active index:
	// - a body never pairs with itself
	// - a static or not yet active body2 is admitted from body1's side only
	// - a body2 activated during this step is appended to the active list, so it
	//   keeps a higher index than body1
	// - between two active bodies, the one activated first wins the tie
	if !index1.Less(body2.ActiveIndex()) {
		return false
	}
	if contract.Enabled && body1.ID() == body2.ID() {
		contract.Fail("two bodies share an active index", zap.Uint32("body", uint32(body1.ID())))
	}

	return body1.CollisionGroup().CanCollide(body2.CollisionGroup())
}

// PairFilter admits the candidate pairs of a broad phase
type PairFilter struct {
	Workers int
	Logger  *zap.Logger
}

// Admit returns the candidates that produce a collision pair, active body first, in the
// input order. Candidates may come in any order: each active side is tried as body1.
// Indices must not be compacted while Admit runs.
func (f PairFilter) Admit(candidates []Pair) []Pair {
	workers := max(DEFAULT_WORKERS, f.Workers)
	admitted := make([][]Pair, workers)

	task(workers, candidates, func(worker int, pair Pair) {
		if p, ok := admit(pair); ok {
			admitted[worker] = append(admitted[worker], p)
		}
	})

	pairs := make([]Pair, 0, len(candidates))
	for _, chunk := range admitted {
		pairs = append(pairs, chunk...)
	}

	f.logger().Debug("collision pairs admitted",
		zap.Int("candidates", len(candidates)),
		zap.Int("admitted", len(pairs)),
		zap.Int("workers", workers))

	return pairs
}

func admit(pair Pair) (Pair, bool) {
	if pair.BodyA.IsActive() && CanCollide(pair.BodyA, pair.BodyB) {
		return pair, true
	}
	if pair.BodyB.IsActive() && CanCollide(pair.BodyB, pair.BodyA) {
		return Pair{BodyA: pair.BodyB, BodyB: pair.BodyA}, true
	}
	return Pair{}, false
}

func (f PairFilter) logger() *zap.Logger {
	if f.Logger == nil {
		return zap.NewNop()
	}
	return f.Logger
}
