package entity

import "github.com/samdwyer/linguaquest/internal/geom"

// Class represents a companion's class.
type Class int

const (
	ClassWarrior Class = iota
	ClassRogue
	ClassWizard
	ClassCleric
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassWarrior:
		return "Warrior"
	case ClassRogue:
		return "Rogue"
	case ClassWizard:
		return "Wizard"
	case ClassCleric:
		return "Cleric"
	default:
		return "Unknown"
	}
}

// ParseClass maps a class name (case-sensitive ID form) to a Class.
func ParseClass(id string) (Class, bool) {
	switch id {
	case "warrior":
		return ClassWarrior, true
	case "rogue":
		return ClassRogue, true
	case "wizard":
		return ClassWizard, true
	case "cleric":
		return ClassCleric, true
	default:
		return ClassWarrior, false
	}
}

// Symbol returns the display symbol for a class.
func (c Class) Symbol() rune {
	switch c {
	case ClassWarrior:
		return 'W'
	case ClassRogue:
		return 'R'
	case ClassWizard:
		return 'Z'
	case ClassCleric:
		return 'C'
	default:
		return '?'
	}
}

// StatType identifies a character stat.
type StatType int

const (
	StatAttack StatType = iota
	StatDefense
	StatSpeed
	StatHealth
)

// String returns the stat name.
func (s StatType) String() string {
	switch s {
	case StatAttack:
		return "attack"
	case StatDefense:
		return "defense"
	case StatSpeed:
		return "speed"
	case StatHealth:
		return "health"
	default:
		return "unknown"
	}
}

// Stats are a character's numbers.
type Stats struct {
	Attack  int
	Defense int
	Speed   int
	Health  int
}

// BaseStats returns the starting stats of a class.
func (c Class) BaseStats() Stats {
	switch c {
	case ClassWarrior:
		return Stats{Attack: 6, Defense: 5, Speed: 3, Health: 20}
	case ClassRogue:
		return Stats{Attack: 5, Defense: 3, Speed: 6, Health: 15}
	case ClassWizard:
		return Stats{Attack: 3, Defense: 2, Speed: 4, Health: 12}
	case ClassCleric:
		return Stats{Attack: 3, Defense: 4, Speed: 4, Health: 16}
	default:
		return Stats{Attack: 1, Defense: 1, Speed: 1, Health: 10}
	}
}

// Member is a party companion.
type Member struct {
	Name     string
	Class    Class
	Symbol   rune
	Position geom.Vec
	Stats    Stats
}

// NewMember creates a companion with the base stats of its class.
func NewMember(name string, class Class) *Member {
	return &Member{
		Name:   name,
		Class:  class,
		Symbol: class.Symbol(),
		Stats:  class.BaseStats(),
	}
}

// ModifyStat adds amount to a stat. Health never drops below zero.
func (m *Member) ModifyStat(stat StatType, amount int) {
	switch stat {
	case StatAttack:
		m.Stats.Attack += amount
	case StatDefense:
		m.Stats.Defense += amount
	case StatSpeed:
		m.Stats.Speed += amount
	case StatHealth:
		m.Stats.Health = max(0, m.Stats.Health+amount)
	}
}

// baseFollowStat is the speed stat that follows at exactly FollowSpeed.
const baseFollowStat = 4

func (m *Member) followScale() float64 {
	return float64(max(1, m.Stats.Speed)) / baseFollowStat
}

// Stat returns the value of a stat.
func (m *Member) Stat(stat StatType) int {
	switch stat {
	case StatAttack:
		return m.Stats.Attack
	case StatDefense:
		return m.Stats.Defense
	case StatSpeed:
		return m.Stats.Speed
	case StatHealth:
		return m.Stats.Health
	default:
		return 0
	}
}
