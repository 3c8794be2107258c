package domain

import "strings"

// EntityKind - конкретный тип сущности. Диспетчер на него не смотрит,
// он нужен только таблице совместимости логической сети и фабрике.
type EntityKind uint8

const (
	KindUnknown EntityKind = iota
	KindPlayer
	KindWall
	KindBoulder
	KindSwamp
	KindSwitch
	KindWire
	KindLightBulb
	KindSwitchDoor
	KindBomb
	KindLogicalBomb
	KindPortal
	KindTreasure
	KindKey
	KindSunStone
	KindZombie
	KindMercenary
	KindZombieSpawner
	KindDoor
)

var kindToString = map[EntityKind]string{
	KindPlayer:        "player",
	KindWall:          "wall",
	KindBoulder:       "boulder",
	KindSwamp:         "swamp_tile",
	KindSwitch:        "switch",
	KindWire:          "wire",
	KindLightBulb:     "light_bulb_off",
	KindSwitchDoor:    "switch_door",
	KindBomb:          "bomb",
	KindLogicalBomb:   "logical_bomb",
	KindPortal:        "portal",
	KindTreasure:      "treasure",
	KindKey:           "key",
	KindSunStone:      "sun_stone",
	KindZombie:        "zombie_toast",
	KindMercenary:     "mercenary",
	KindZombieSpawner: "zombie_toast_spawner",
	KindDoor:          "door",
}

var stringToKind = func() map[string]EntityKind {
	m := make(map[string]EntityKind, len(kindToString))
	for k, v := range kindToString {
		m[v] = k
	}
	return m
}()

// String возвращает строковое представление (для логов и дебага)
func (k EntityKind) String() string {
	if val, ok := kindToString[k]; ok {
		return val
	}
	return "unknown"
}

// ParseEntityKind конвертирует строку в EntityKind
func ParseEntityKind(s string) EntityKind {
	if val, ok := stringToKind[strings.ToLower(s)]; ok {
		return val
	}
	return KindUnknown
}
