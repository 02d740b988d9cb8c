package runs

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tatianab/rover-rescue/internal/models"
)

const (
	HexagonAngle = 60.0
	HexagonSides = 6

	// Mission 2 distance bands, in cm.
	perfectDistanceMin = 180.0
	perfectDistanceMax = 240.0
	goodDistanceMin    = 150.0
	goodDistanceMax    = 300.0

	complexSegments = 8
)

// Scorecard is the feedback for one run, in display order, and the coding
// skill it earns.
type Scorecard struct {
	Feedback   []string
	SkillDelta int
}

func (s *Scorecard) say(format string, args ...any) {
	s.Feedback = append(s.Feedback, fmt.Sprintf(format, args...))
}

func (s *Scorecard) earn(format string, args ...any) {
	s.say(format, args...)
	s.SkillDelta++
}

// Score grades a validated run. It has no side effects; the caller applies
// SkillDelta to the player.
func Score(rec models.RunRecord) Scorecard {
	switch {
	case rec.Survey != nil:
		return scoreSurvey(*rec.Survey)
	case rec.Retrieval != nil:
		return scoreRetrieval(*rec.Retrieval)
	case rec.Final != nil:
		return scoreFinal(*rec.Final)
	}
	return Scorecard{}
}

// AngleDeviation is how far a turn angle is from a perfect hexagon turn.
func AngleDeviation(angle float64) float64 {
	return math.Abs(angle - HexagonAngle)
}

func scoreSurvey(r models.SurveyRun) Scorecard {
	var s Scorecard

	dev := AngleDeviation(r.ActualAngle)
	switch {
	case dev <= 5:
		s.say("✅ Excellent! Your actual angle is correct for a hexagon!")
	case dev <= 15:
		s.say("⚠️ Your angle (%s°) differs from perfect (60°) by %.1f°.", FormatNumber(r.ActualAngle), dev)
	default:
		s.say("📝 Note: Perfect hexagon uses 60° turns. You used %s°.", FormatNumber(r.ActualAngle))
	}
	if r.TargetAngleGiven && r.TargetAngle != r.ActualAngle {
		s.say("📐 You adjusted from %s° to %s° (%+.1f°)", FormatNumber(r.TargetAngle), FormatNumber(r.ActualAngle), r.ActualAngle-r.TargetAngle)
	}

	if r.Sides == HexagonSides {
		s.say("✅ Perfect! A hexagon has exactly 6 sides!")
	} else {
		s.say("📝 A hexagon should have 6 sides. You completed %d.", r.Sides)
	}

	switch r.Returned {
	case models.ArrivedYes:
		s.say("✅ Great precision! Your robot returned to start!")
	case models.ArrivedClose:
		s.say("👍 Good job! Almost perfect return to start.")
	default:
		s.say("📝 Keep practicing to improve your return accuracy.")
	}

	switch {
	case r.Attempts == 1:
		s.earn("🌟 First try success! Outstanding!")
	case r.Attempts <= 3:
		s.say("👍 Good persistence! A few attempts is normal.")
	default:
		s.say("💪 Great job not giving up! Debugging takes practice.")
	}
	return s
}

func scoreRetrieval(r models.RetrievalRun) Scorecard {
	var s Scorecard

	switch {
	case r.Distance >= perfectDistanceMin && r.Distance <= perfectDistanceMax:
		s.say("✅ Perfect distance! Within the 180-240 cm target range.")
	case r.Distance >= goodDistanceMin && r.Distance <= goodDistanceMax:
		s.say("👍 Good distance traveled for this mission.")
	default:
		s.say("📝 Distance traveled: %s cm.", FormatNumber(r.Distance))
	}

	switch {
	case r.Collisions == 0:
		s.earn("🌟 Zero collisions! Perfect navigation!")
	case r.Collisions <= 2:
		s.say("👍 Minimal collisions - good obstacle avoidance!")
	default:
		s.say("📝 %d collisions recorded. Practice will improve this!", r.Collisions)
	}

	switch r.Reached {
	case models.ArrivedYes:
		s.say("✅ Pathfinder located! Mission objective achieved!")
	case models.ArrivedClose:
		s.say("👍 Close to target - great effort!")
	default:
		s.say("📝 Target not reached, but valuable experience gained.")
	}

	if r.Conditionals == models.Yes {
		s.earn("✅ Great use of conditionals in your code!")
	}
	return s
}

func scoreFinal(r models.FinalRun) Scorecard {
	var s Scorecard

	loops, conds := r.Loops == models.Yes, r.Conditionals == models.Yes
	switch {
	case loops && conds:
		s.earn("🌟 EXCELLENT! You used both loops AND conditionals!")
	case loops || conds:
		s.say("👍 Good use of programming concepts!")
	}

	switch r.Reached {
	case models.ArrivedYes:
		s.earn("✅ SCHIAPARELLI REACHED! Supplies delivered!")
	case models.ArrivedClose:
		s.say("👍 Very close to the crater - great navigation!")
	default:
		s.say("📝 Mission attempted - valuable learning experience!")
	}

	if r.Bugs > 0 {
		s.say("🔧 You found and fixed %d bugs - that's real engineering!", r.Bugs)
	}
	if r.Segments >= complexSegments {
		s.say("✅ Complex program with multiple segments - impressive!")
	}
	return s
}

// FormatNumber formats a measurement the way it was typed: no trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
