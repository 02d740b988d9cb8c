package engine

import (
	"fmt"

	"github.com/tatianab/rover-rescue/internal/errs"
	"github.com/tatianab/rover-rescue/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return errs.New(errs.CodeLockedMission, r.Reason)
}

// StartMissionContext provides context for the mission start guard.
type StartMissionContext struct {
	Mission           models.MissionID
	MissionsCompleted int
}

// CanStartMission evaluates whether a mission can be started.
// Rules:
// - Mission must exist
// - Every earlier mission must be complete
func CanStartMission(ctx StartMissionContext) GuardResult {
	if !ctx.Mission.Valid() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("mission %d does not exist", int(ctx.Mission)),
		}
	}

	required := int(ctx.Mission) - 1
	if ctx.MissionsCompleted < required {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("mission %d is locked: complete mission %d first", int(ctx.Mission), ctx.MissionsCompleted+1),
		}
	}

	return GuardResult{Allowed: true}
}

// MissionStatus is how a mission appears on mission select.
type MissionStatus string

const (
	StatusLocked    MissionStatus = "LOCKED"
	StatusAvailable MissionStatus = "AVAILABLE"
	StatusComplete  MissionStatus = "COMPLETE"
)

// StatusOf reports a mission's status for a player with missionsCompleted.
func StatusOf(m models.MissionID, missionsCompleted int) MissionStatus {
	switch {
	case missionsCompleted >= int(m):
		return StatusComplete
	case CanStartMission(StartMissionContext{Mission: m, MissionsCompleted: missionsCompleted}).Allowed:
		return StatusAvailable
	default:
		return StatusLocked
	}
}
