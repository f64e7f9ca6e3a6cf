// Package entity provides the companions that follow the player and the
// winter creatures that roam the arena.
package entity

import (
	"log"

	"github.com/samdwyer/linguaquest/internal/geom"
)

// MemberSpec describes a companion in the tuning file.
type MemberSpec struct {
	Name  string `yaml:"name"`
	Class string `yaml:"class"`
}

// PartyConfig holds follower tuning.
type PartyConfig struct {
	FollowDistance float64      `yaml:"followDistance"` // Followers stop this far behind
	FollowSpeed    float64      `yaml:"followSpeed"`    // Lerp rate per second
	Members        []MemberSpec `yaml:"members"`
}

// DefaultPartyConfig returns the stock party.
func DefaultPartyConfig() PartyConfig {
	return PartyConfig{
		FollowDistance: 2,
		FollowSpeed:    5,
		Members: []MemberSpec{
			{Name: "Brann", Class: "warrior"},
			{Name: "Ysolde", Class: "wizard"},
		},
	}
}

// Party is the chain of companions trailing the player.
type Party struct {
	cfg     PartyConfig
	Members []*Member
}

// NewParty creates a party from the configured members, placed at start.
func NewParty(cfg PartyConfig, start geom.Vec) *Party {
	p := &Party{cfg: cfg}
	for _, spec := range cfg.Members {
		class, ok := ParseClass(spec.Class)
		if !ok {
			log.Printf("[Party] Unknown class %q for %s, using %s", spec.Class, spec.Name, class)
		}
		m := NewMember(spec.Name, class)
		m.Position = start
		p.Add(m)
	}
	return p
}

// Add appends a member. Returns false if a member with the same name is
// already in the party.
func (p *Party) Add(m *Member) bool {
	if m == nil {
		return false
	}
	if p.Find(m.Name) != nil {
		log.Printf("[Party] %s is already in the party", m.Name)
		return false
	}
	p.Members = append(p.Members, m)
	return true
}

// Find returns the member with the given name, or nil.
func (p *Party) Find(name string) *Member {
	for _, m := range p.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Follow moves each member toward the one ahead of it (the first toward
// the leader) while the leader is moving and the gap exceeds FollowDistance.
// A member's speed stat scales FollowSpeed relative to baseFollowStat.
func (p *Party) Follow(dt float64, leader geom.Vec, leaderMoving bool) {
	if !leaderMoving || dt <= 0 {
		return
	}
	target := leader
	for _, m := range p.Members {
		if geom.Dist(m.Position, target) > p.cfg.FollowDistance {
			m.Position = geom.Lerp(m.Position, target, p.cfg.FollowSpeed*m.followScale()*dt)
		}
		target = m.Position
	}
}

// Train raises a stat of every member.
func (p *Party) Train(stat StatType, amount int) {
	for _, m := range p.Members {
		m.ModifyStat(stat, amount)
	}
}

// Len returns the number of members.
func (p *Party) Len() int {
	return len(p.Members)
}
