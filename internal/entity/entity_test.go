package entity

import (
	"math"
	"math/rand"
	"testing"

	"github.com/samdwyer/linguaquest/internal/geom"
)

func TestPartyAddDeduplicates(t *testing.T) {
	p := NewParty(PartyConfig{FollowDistance: 2, FollowSpeed: 5}, geom.Zero)

	if !p.Add(NewMember("Brann", ClassWarrior)) {
		t.Fatal("first add failed")
	}
	if p.Add(NewMember("Brann", ClassCleric)) {
		t.Error("duplicate name accepted")
	}
	if p.Add(nil) {
		t.Error("nil member accepted")
	}
	if p.Len() != 1 {
		t.Errorf("party size = %d, want 1", p.Len())
	}
}

func TestNewPartyFromConfig(t *testing.T) {
	cfg := DefaultPartyConfig()
	cfg.Members = append(cfg.Members,
		MemberSpec{Name: "Brann", Class: "rogue"},
		MemberSpec{Name: "Odo", Class: "bard"},
	)
	p := NewParty(cfg, geom.V(1, 1))

	if p.Len() != 3 {
		t.Fatalf("party size = %d, want 3", p.Len())
	}
	if m := p.Find("Odo"); m == nil || m.Class != ClassWarrior {
		t.Errorf("unknown class not defaulted: %+v", m)
	}
	if m := p.Find("Ysolde"); m == nil || m.Symbol != 'Z' || m.Position != geom.V(1, 1) {
		t.Errorf("wizard not set up: %+v", m)
	}
}

func TestFollowLerpsWhileLeaderMoves(t *testing.T) {
	cfg := PartyConfig{FollowDistance: 2, FollowSpeed: 5}
	p := NewParty(cfg, geom.Zero)
	first := NewMember("A", ClassRogue)
	second := NewMember("B", ClassCleric)
	second.Position = geom.V(-3, 0)
	p.Add(first)
	p.Add(second)

	p.Follow(0.1, geom.V(10, 0), false)
	if first.Position != geom.Zero {
		t.Fatalf("follower moved while the leader stood still: %v", first.Position)
	}

	// Rogue speed 6 lerps at 1.5x, cleric speed 4 at 1x.
	p.Follow(0.1, geom.V(10, 0), true)
	if math.Abs(first.Position.X()-7.5) > 1e-9 {
		t.Errorf("first follower at %v, want (7.5, 0)", first.Position)
	}
	// The second follows the first's new position.
	if math.Abs(second.Position.X()-2.25) > 1e-9 {
		t.Errorf("second follower at %v, want (2.25, 0)", second.Position)
	}

	nearby := NewParty(cfg, geom.Zero)
	m := NewMember("C", ClassWizard)
	m.Position = geom.V(9, 0)
	nearby.Add(m)
	nearby.Follow(0.1, geom.V(10, 0), true)
	if m.Position != geom.V(9, 0) {
		t.Errorf("follower inside follow distance moved: %v", m.Position)
	}
}

func TestModifyStat(t *testing.T) {
	m := NewMember("A", ClassWarrior)
	base := ClassWarrior.BaseStats()

	tests := []struct {
		stat   StatType
		amount int
		want   int
	}{
		{StatAttack, 2, base.Attack + 2},
		{StatDefense, -1, base.Defense - 1},
		{StatSpeed, 3, base.Speed + 3},
		{StatHealth, -1000, 0},
	}
	for _, tt := range tests {
		m.ModifyStat(tt.stat, tt.amount)
		if got := m.Stat(tt.stat); got != tt.want {
			t.Errorf("%s = %d, want %d", tt.stat, got, tt.want)
		}
	}
}

func TestTrainRaisesFollowSpeed(t *testing.T) {
	cfg := PartyConfig{FollowDistance: 1, FollowSpeed: 1}
	slow := NewParty(cfg, geom.Zero)
	fast := NewParty(cfg, geom.Zero)
	slow.Add(NewMember("A", ClassCleric))
	fast.Add(NewMember("A", ClassCleric))

	fast.Train(StatSpeed, 4)
	if got := fast.Find("A").Stat(StatSpeed); got != ClassCleric.BaseStats().Speed+4 {
		t.Fatalf("speed = %d after training", got)
	}

	slow.Follow(0.1, geom.V(10, 0), true)
	fast.Follow(0.1, geom.V(10, 0), true)
	s, f := slow.Find("A").Position.X(), fast.Find("A").Position.X()
	if math.Abs(s-1) > 1e-9 || math.Abs(f-2) > 1e-9 {
		t.Errorf("positions = %v, %v, want 1, 2", s, f)
	}
}

func TestEnemyInchwormRhythm(t *testing.T) {
	cfg := DefaultEnemyConfig()
	e := NewEnemy(cfg, geom.Zero, rand.New(rand.NewSource(1)))
	target := geom.V(3, 0)
	const dt = 0.125

	for i := 0; i < 4; i++ {
		d := e.Tick(dt, target)
		if d.X() <= 0 {
			t.Fatalf("tick %d: no lunge toward target: %v", i, d)
		}
		e.Move(d)
	}
	if e.Mode() != ModeChase {
		t.Errorf("mode = %v, want chase", e.Mode())
	}
	if math.Abs(e.Position.X()-1) > 1e-9 {
		t.Errorf("position after lunge = %v, want (1, 0)", e.Position)
	}

	for i := 0; i < 8; i++ {
		if d := e.Tick(dt, target); !geom.IsZero(d) {
			t.Fatalf("pause tick %d moved: %v", i, d)
		}
	}
	if d := e.Tick(dt, target); geom.IsZero(d) {
		t.Error("did not lunge again after the pause")
	}
}

func TestEnemyHoldsInAttackRange(t *testing.T) {
	e := NewEnemy(DefaultEnemyConfig(), geom.Zero, nil)
	if d := e.Tick(0.1, geom.V(0.5, 0)); !geom.IsZero(d) {
		t.Errorf("moved while in reach: %v", d)
	}
	if !e.Lunging() {
		t.Error("expected the lunge phase")
	}
}

func TestEnemyWandersHome(t *testing.T) {
	e := NewEnemy(DefaultEnemyConfig(), geom.Zero, rand.New(rand.NewSource(2)))
	e.Position = geom.V(10, 0)

	d := e.Tick(0.1, geom.V(100, 100))
	if e.Mode() != ModeWander {
		t.Fatalf("mode = %v, want wander", e.Mode())
	}
	if d.X() >= 0 {
		t.Errorf("did not head home: %v", d)
	}
}

func TestEnemyContactCooldown(t *testing.T) {
	cfg := DefaultEnemyConfig()
	e := NewEnemy(cfg, geom.Zero, nil)
	target := geom.V(0.5, 0)

	dir, ok := e.TryContact(target)
	if !ok || dir != geom.V(1, 0) {
		t.Fatalf("contact = %v %v, want (1, 0) true", dir, ok)
	}
	if _, ok := e.TryContact(target); ok {
		t.Error("second contact allowed during cooldown")
	}
	if _, ok := e.TryContact(geom.V(5, 0)); ok {
		t.Error("contact out of reach")
	}

	for i := 0; i < 5; i++ {
		e.Tick(0.25, target)
	}
	if _, ok := e.TryContact(target); !ok {
		t.Error("contact refused after cooldown")
	}
	if e.SlipDuration() != cfg.ContactSlipDuration || e.Damage() != cfg.ContactDamage {
		t.Error("contact tuning not exposed")
	}
}
