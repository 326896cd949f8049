package component

import "github.com/milk9111/statemachine/common"

// Bullet moves in a straight line until it hits something or despawns.
type Bullet struct {
	Owner     uint64
	Direction common.Vec3
	Speed     float64
	Force     float64
	Damage    int
}

var BulletComponent = NewComponent[Bullet]()

// BulletHit is added to a bullet by the physics step when it touches a
// target.
type BulletHit struct {
	Target uint64
}

var BulletHitComponent = NewComponent[BulletHit]()
