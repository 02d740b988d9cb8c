// Package challenge runs single-answer multiple-choice knowledge checks.
package challenge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tatianab/rover-rescue/internal/errs"
	"github.com/tatianab/rover-rescue/internal/models"
)

// Spec describes one knowledge check.
type Spec struct {
	ID                string   `yaml:"id"`
	Title             string   `yaml:"title"`
	Prompt            string   `yaml:"prompt"`
	Options           []string `yaml:"options"`
	Correct           int      `yaml:"correct"`
	CorrectFeedback   string   `yaml:"correct_feedback"`
	IncorrectFeedback string   `yaml:"incorrect_feedback"`
}

// Validate checks the challenge has at least two options and a correct index
// among them.
func (s Spec) Validate() error {
	if len(s.Options) < 2 {
		return errs.WithMetadata(errs.CodeInvalidChallenge, "a challenge needs at least two options", map[string]string{"challenge": s.ID})
	}
	if s.Correct < 0 || s.Correct >= len(s.Options) {
		return errs.WithMetadata(errs.CodeInvalidChallenge,
			fmt.Sprintf("correct option %d is not one of %d options", s.Correct, len(s.Options)),
			map[string]string{"challenge": s.ID})
	}
	return nil
}

func (s Spec) clone() Spec {
	s.Options = append([]string(nil), s.Options...)
	return s
}

// Result is the graded answer to a presentation. Correct is always the index
// of the right option, whatever was selected.
type Result struct {
	Selected   int
	Correct    int
	IsCorrect  bool
	Feedback   string
	SkillDelta int
}

// Presentation is one showing of a challenge. It accepts a single answer;
// after that its options are locked.
type Presentation struct {
	spec     Spec
	answered bool
	result   Result
}

// Present starts a presentation of spec.
func Present(spec Spec) (*Presentation, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Presentation{spec: spec.clone()}, nil
}

// Spec returns a copy of the challenge being presented.
func (p *Presentation) Spec() Spec {
	return p.spec.clone()
}

// Answer grades the option at index selected. A correct answer adds one
// coding skill to player, if one is given. It returns false and changes
// nothing when the presentation was already answered or selected is not an
// option.
func (p *Presentation) Answer(selected int, player *models.Player) (Result, bool) {
	if p.answered || selected < 0 || selected >= len(p.spec.Options) {
		return p.result, false
	}
	p.answered = true
	p.result = Result{Selected: selected, Correct: p.spec.Correct}
	if selected == p.spec.Correct {
		p.result.IsCorrect = true
		p.result.Feedback = "✅ " + p.spec.CorrectFeedback
		if player != nil {
			p.result.SkillDelta = player.AddSkill(1)
		}
	} else {
		p.result.Feedback = "❌ " + p.spec.IncorrectFeedback
	}
	return p.result, true
}

// Answered reports whether the options are locked.
func (p *Presentation) Answered() bool {
	return p.answered
}

// Result returns the graded answer once there is one.
func (p *Presentation) Result() (Result, bool) {
	return p.result, p.answered
}

// ParseAnswer reads a 1-based number or an option letter as a 0-based index
// into n options.
func ParseAnswer(text string, n int) (int, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if i, err := strconv.Atoi(text); err == nil {
		return i - 1, i >= 1 && i <= n
	}
	if len(text) == 1 && text[0] >= 'a' && int(text[0]-'a') < n {
		return int(text[0] - 'a'), true
	}
	return 0, false
}
