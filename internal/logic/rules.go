package logic

import (
	"strings"

	"dungeon-sim/internal/domain"

	"github.com/zyedidia/generic/mapset"
)

// Rule - логическое правило приёмника
type Rule uint8

const (
	RuleOr Rule = iota
	RuleAnd
	RuleXor
)

var ruleNames = map[Rule]string{
	RuleOr:  "or",
	RuleAnd: "and",
	RuleXor: "xor",
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return "unknown"
}

// ParseRule конвертирует строку в Rule. Неизвестное правило трактуется как "or".
func ParseRule(s string) Rule {
	for r, name := range ruleNames {
		if name == strings.ToLower(s) {
			return r
		}
	}
	return RuleOr
}

// Evaluate считает правило по входам приёмника (выключатели и провода рядом)
func (r Rule) Evaluate(inputs []*domain.Entity) bool {
	active := 0
	for _, in := range inputs {
		if in.IsActive() {
			active++
		}
	}
	switch r {
	case RuleAnd:
		return active >= 2 && active == len(inputs)
	case RuleXor:
		return active == 1
	default:
		return active >= 1
	}
}

// Inputs - соседи-источники сигнала (выключатели и провода)
func Inputs(bus domain.SignalBus, e *domain.Entity) []*domain.Entity {
	var out []*domain.Entity
	for _, nb := range bus.Neighbors(e) {
		role := nb.Logic.Role()
		if role == domain.RoleActivator || role == domain.RoleConductor {
			out = append(out, nb)
		}
	}
	return out
}

// Powered - связан ли проводник цепочкой проводников с включённым выключателем.
// Обход в ширину по подграфу проводников.
func Powered(bus domain.SignalBus, e *domain.Entity) bool {
	visited := mapset.New[domain.EntityID]()
	visited.Put(e.ID)
	queue := []*domain.Entity{e}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, nb := range bus.Neighbors(current) {
			switch nb.Logic.Role() {
			case domain.RoleActivator:
				if nb.IsActive() {
					return true
				}
			case domain.RoleConductor:
				if !visited.Has(nb.ID) {
					visited.Put(nb.ID)
					queue = append(queue, nb)
				}
			}
		}
	}
	return false
}
