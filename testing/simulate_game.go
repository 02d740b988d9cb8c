package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"

	"github.com/tatianab/rover-rescue/internal/coach"
	"github.com/tatianab/rover-rescue/internal/config"
	"github.com/tatianab/rover-rescue/internal/engine"
	"github.com/tatianab/rover-rescue/internal/history"
	"github.com/tatianab/rover-rescue/internal/models"
)

const engineer = "Simulated Engineer"

// robotRuns is the data a class might bring back from its Sphero, two runs
// per mission so the history has something to compare.
var robotRuns = map[models.MissionID][]map[string]string{
	models.MissionSurvey: {
		{"time": "52", "targetAngle": "60", "actualAngle": "68", "sides": "6", "distance": "30",
			"returned": "close", "attempts": "3", "angleNotes": "the carpet made it overshoot"},
		{"time": "44", "targetAngle": "60", "actualAngle": "62", "sides": "6", "distance": "30",
			"returned": "yes", "attempts": "1"},
	},
	models.MissionRetrieval: {
		{"time": "95", "distance": "260", "obstacles": "3", "collisions": "3", "reached": "close",
			"conditionals": "no", "attempts": "4"},
		{"time": "71", "distance": "210", "obstacles": "3", "collisions": "0", "reached": "yes",
			"conditionals": "yes", "attempts": "2"},
	},
	models.MissionFinal: {
		{"time": "180", "distance": "420", "segments": "7", "loops": "yes", "conditionals": "no",
			"reached": "no", "bugs": "3", "attempts": "5"},
		{"time": "150", "distance": "400", "segments": "9", "loops": "yes", "conditionals": "yes",
			"reached": "yes", "bugs": "2", "attempts": "2"},
	},
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var debriefer *coach.Coach
	if cfg.CoachEnabled() {
		debriefer, err = coach.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to create coach: %v", err)
		}
		defer debriefer.Close()
	}

	// The simulation never touches the real run history.
	store, err := history.Open(history.NewMemoryMedium())
	if err != nil {
		log.Fatalf("Failed to open history: %v", err)
	}
	rng := rand.New(rand.NewPCG(2035, 6))
	eng, err := engine.New(store, engine.WithRand(rng))
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	if err := eng.SetName(engineer); err != nil {
		log.Fatalf("Failed to set name: %v", err)
	}

	fmt.Println(strings.Join(eng.Introduction(), "\n"))

	for _, m := range models.Missions {
		for attempt, raw := range robotRuns[m] {
			fmt.Printf("\n--- Mission %d, run %d ---\n", int(m), attempt+1)
			fmt.Printf("Mars fact: %s\n", eng.MarsFact())
			if !eng.StartMission(m) {
				log.Fatalf("Mission %d is locked: %s", int(m), eng.CanStart(m).Reason)
			}
			play(eng, rng)

			step := eng.Current()
			sub, err := eng.Submit(step.Seq, raw)
			if err != nil {
				log.Fatalf("Run rejected: %v", err)
			}
			report(sub)

			if debriefer != nil {
				var prev *models.RunRecord
				if rs := store.Runs(m); len(rs) >= 2 {
					prev = &rs[len(rs)-2]
				}
				text, err := debriefer.Debrief(ctx, sub.Record, sub.Feedback, prev)
				if err != nil {
					fmt.Printf("Coach unavailable: %v\n", err)
				} else {
					fmt.Printf("Mission Control: %s\n", text)
				}
			}

			done := eng.Current()
			if s := done.Summary; s != nil {
				fmt.Printf("%s (%s)\n", s.Title, done.Kind)
				if s.Rank != nil {
					fmt.Printf("Rank: %s - %s\n", s.Rank.Title, s.Rank.Message)
				}
			}
			eng.Continue(done.Seq)
		}
	}

	fmt.Println("\n--- Run history ---")
	for _, m := range models.Missions {
		fmt.Printf("Mission %d: %s\n", int(m), m)
		for _, line := range history.Comparison(m, store.Runs(m)) {
			fmt.Println("  " + line)
		}
	}
	fmt.Println(history.Totals(store.Snapshot()))
}

// play walks a mission up to its data entry step. The simulated engineer
// picks choices at random and gets most knowledge checks right.
func play(eng *engine.Engine, rng *rand.Rand) {
	for {
		step := eng.Current()
		switch step.Kind {
		case engine.StepNarrative:
			eng.Continue(step.Seq)
		case engine.StepChoice:
			idx := rng.IntN(len(step.Options))
			fmt.Printf("Choice: %s\n", step.Options[idx])
			eng.Choose(step.Seq, idx)
		case engine.StepChallenge:
			idx := 1
			if rng.IntN(4) == 0 {
				idx = 0
			}
			res, _ := eng.Answer(step.Seq, idx)
			fmt.Printf("Knowledge check %q: %s\n", step.Challenge.Title, res.Feedback)
			eng.Continue(step.Seq)
		case engine.StepDataEntry:
			return
		default:
			log.Fatalf("Unexpected %s step during a mission", step.Kind)
		}
	}
}

func report(sub engine.Submission) {
	fmt.Println(sub.Transmission.Heading)
	for _, line := range sub.Feedback {
		fmt.Println("  " + line)
	}
	fmt.Println(sub.RecordedLine())
	p := sub.Player
	fmt.Printf("Skill %d/%d, power %d%%, comms online %v, missions %d/%d\n",
		p.CodingSkill, models.MaxCodingSkill, p.RoverPower, p.CommsOnline, p.MissionsCompleted, models.TotalMissions)
	if sub.PersistErr != nil {
		fmt.Printf("Warning: %v\n", sub.PersistErr)
	}
}
