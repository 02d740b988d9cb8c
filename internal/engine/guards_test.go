package engine

import (
	"testing"

	"github.com/tatianab/rover-rescue/internal/errs"
	"github.com/tatianab/rover-rescue/internal/models"
)

func TestCanStartMission(t *testing.T) {
	tests := []struct {
		name        string
		ctx         StartMissionContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "mission 1 always available",
			ctx:         StartMissionContext{Mission: models.MissionSurvey},
			wantAllowed: true,
		},
		{
			name:        "mission 2 locked before mission 1",
			ctx:         StartMissionContext{Mission: models.MissionRetrieval, MissionsCompleted: 0},
			wantAllowed: false,
			wantReason:  "mission 2 is locked: complete mission 1 first",
		},
		{
			name:        "mission 2 unlocks at threshold",
			ctx:         StartMissionContext{Mission: models.MissionRetrieval, MissionsCompleted: 1},
			wantAllowed: true,
		},
		{
			name:        "mission 3 locked after one mission",
			ctx:         StartMissionContext{Mission: models.MissionFinal, MissionsCompleted: 1},
			wantAllowed: false,
			wantReason:  "mission 3 is locked: complete mission 2 first",
		},
		{
			name:        "mission 3 unlocks at threshold",
			ctx:         StartMissionContext{Mission: models.MissionFinal, MissionsCompleted: 2},
			wantAllowed: true,
		},
		{
			name:        "replay after completion",
			ctx:         StartMissionContext{Mission: models.MissionSurvey, MissionsCompleted: 3},
			wantAllowed: true,
		},
		{
			name:        "unknown mission",
			ctx:         StartMissionContext{Mission: models.MissionID(4), MissionsCompleted: 3},
			wantAllowed: false,
			wantReason:  "mission 4 does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanStartMission(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if tt.wantReason != "" && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestGuardResultError(t *testing.T) {
	if err := (GuardResult{Allowed: true}).Error(); err != nil {
		t.Errorf("Error() = %v, want nil", err)
	}
	err := (GuardResult{Allowed: false, Reason: "locked"}).Error()
	if !errs.IsCode(err, errs.CodeLockedMission) {
		t.Errorf("Error() = %v, want %s", err, errs.CodeLockedMission)
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		mission   models.MissionID
		completed int
		want      MissionStatus
	}{
		{models.MissionSurvey, 0, StatusAvailable},
		{models.MissionRetrieval, 0, StatusLocked},
		{models.MissionFinal, 0, StatusLocked},
		{models.MissionSurvey, 1, StatusComplete},
		{models.MissionRetrieval, 1, StatusAvailable},
		{models.MissionFinal, 1, StatusLocked},
		{models.MissionFinal, 2, StatusAvailable},
		{models.MissionFinal, 3, StatusComplete},
	}
	for _, tt := range tests {
		if got := StatusOf(tt.mission, tt.completed); got != tt.want {
			t.Errorf("StatusOf(%d, %d) = %s, want %s", tt.mission, tt.completed, got, tt.want)
		}
	}
}
