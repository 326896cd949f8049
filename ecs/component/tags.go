package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()

type SentryTag struct{}

var SentryTagComponent = NewComponent[SentryTag]()

type BulletTag struct{}

var BulletTagComponent = NewComponent[BulletTag]()
