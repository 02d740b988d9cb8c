package models

const (
	MinCodingSkill    = 1
	MaxCodingSkill    = 5
	DefaultRoverPower = 100
	TotalMissions     = 3
)

// Player is the mutable state of the single engineer playing a session.
type Player struct {
	Name              string `yaml:"name"`
	CodingSkill       int    `yaml:"coding_skill"`
	RoverPower        int    `yaml:"rover_power"`
	CommsOnline       bool   `yaml:"comms_online"`
	MissionsCompleted int    `yaml:"missions_completed"`
}

// NewPlayer returns a player with starting attributes.
func NewPlayer(name string) Player {
	return Player{
		Name:        name,
		CodingSkill: MinCodingSkill,
		RoverPower:  DefaultRoverPower,
	}
}

// PlayerForMission returns a player whose progress unlocks m directly, the
// way a classroom session starts partway through the unit.
func PlayerForMission(name string, m MissionID) Player {
	p := NewPlayer(name)
	if !m.Valid() {
		return p
	}
	p.MissionsCompleted = int(m) - 1
	if m >= MissionRetrieval {
		p.CommsOnline = true
	}
	return p
}

// AddSkill raises CodingSkill by delta, clamped to [MinCodingSkill,
// MaxCodingSkill], and returns the change actually applied. Negative deltas
// are ignored.
func (p *Player) AddSkill(delta int) int {
	if delta <= 0 {
		return 0
	}
	before := p.CodingSkill
	p.CodingSkill = clamp(p.CodingSkill+delta, MinCodingSkill, MaxCodingSkill)
	return p.CodingSkill - before
}

// Reset restores starting attributes but keeps the name.
func (p *Player) Reset() {
	*p = NewPlayer(p.Name)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rank is the title awarded at the end of the game.
type Rank struct {
	Title   string
	Message string
}

// RankFor maps a final coding skill to a rank.
func RankFor(codingSkill int) Rank {
	switch {
	case codingSkill >= 5:
		return Rank{Title: "MASTER ROVER ENGINEER", Message: "You demonstrated exceptional coding skills!"}
	case codingSkill >= 3:
		return Rank{Title: "SENIOR ROVER ENGINEER", Message: "You showed solid programming abilities!"}
	default:
		return Rank{Title: "JUNIOR ROVER ENGINEER", Message: "You completed the mission and learned a lot!"}
	}
}
