package challenge

// Practice is a challenges-only round. It keeps its own score and never
// touches a player.
type Practice struct {
	specs   []Spec
	index   int
	current *Presentation
	score   int
}

// NewPractice builds a round over specs, or over the whole bank when none
// are given.
func NewPractice(specs ...Spec) (*Practice, error) {
	if len(specs) == 0 {
		specs = Bank()
	}
	p := &Practice{specs: specs}
	if err := p.present(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Practice) present() error {
	pres, err := Present(p.specs[p.index])
	if err != nil {
		return err
	}
	p.current = pres
	return nil
}

// Current is the challenge being asked and its 1-based position.
func (p *Practice) Current() (*Presentation, int) {
	return p.current, p.index + 1
}

// Total is the number of challenges in the round.
func (p *Practice) Total() int {
	return len(p.specs)
}

// Answer grades the current challenge.
func (p *Practice) Answer(selected int) (Result, bool) {
	res, ok := p.current.Answer(selected, nil)
	if ok && res.IsCorrect {
		p.score++
	}
	return res, ok
}

// Next moves to the following challenge once the current one is answered.
// It returns false at the end of the round or before an answer.
func (p *Practice) Next() (bool, error) {
	if !p.current.Answered() || p.index+1 >= len(p.specs) {
		return false, nil
	}
	p.index++
	if err := p.present(); err != nil {
		return false, err
	}
	return true, nil
}

// Done reports whether the last challenge has been answered.
func (p *Practice) Done() bool {
	return p.index == len(p.specs)-1 && p.current.Answered()
}

// Score is the number of correct answers so far.
func (p *Practice) Score() int {
	return p.score
}

// Verdict is the closing remark for a practice score.
func Verdict(score, total int) string {
	switch {
	case score == total:
		return "🌟 PERFECT SCORE! You're ready for Mars!"
	case score >= 3:
		return "⭐ Great job! Keep practicing!"
	default:
		return "🔧 Good effort! Review and try again!"
	}
}
