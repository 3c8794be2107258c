package domain

// ItemComponent - сущность с ним можно положить в инвентарь
type ItemComponent struct {
	Weight uint `json:"weight"`
	Key    int  `json:"key,omitempty"` // номер двери, которую открывает ключ
}

// TerrainComponent - стоимость прохода через клетку для поиска пути
type TerrainComponent struct {
	MovementFactor int `json:"movementFactor"`
}

// Entity - фиксированная запись с набором возможностей.
// Если поле nil - значит возможность отсутствует.
type Entity struct {
	// Идентификация
	ID   EntityID   `json:"id"`
	Kind EntityKind `json:"kind"`

	Pos    Position  `json:"pos"`
	Facing Direction `json:"facing"`

	// Поведение (реализуется пакетом entities)
	Blocker   MovableOntoChecker `json:"-"`
	Overlap   OverlapReactor     `json:"-"`
	MovedAway MovedAwayReactor   `json:"-"`
	Destroyed DestroyedReactor   `json:"-"`
	Logic     Subscriber         `json:"-"`
	Explosive ExplosiveItem      `json:"-"`
	Picker    Picker             `json:"-"`
	Mover     Mover              `json:"-"`
	Spawner   Spawner            `json:"-"`

	// Данные
	Item    *ItemComponent    `json:"item,omitempty"`
	Terrain *TerrainComponent `json:"terrain,omitempty"`
	Portal  *PortalComponent  `json:"portal,omitempty"`
}

// IsPlayer - только игрок подбирает предметы при наложении
func (e *Entity) IsPlayer() bool {
	return e.Picker != nil
}

// IsActive - активен ли узел логической сети (false для не-участников)
func (e *Entity) IsActive() bool {
	return e.Logic != nil && e.Logic.IsActive()
}

// CanBeEnteredBy спрашивает у сущности, пустит ли она mover'а.
// Сущность без проверки никого не блокирует.
func (e *Entity) CanBeEnteredBy(w World, mover *Entity) bool {
	if e.Blocker == nil {
		return true
	}
	return e.Blocker.CanMoveOnto(w, mover)
}
