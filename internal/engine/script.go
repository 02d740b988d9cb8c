package engine

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/tatianab/rover-rescue/internal/challenge"
	"github.com/tatianab/rover-rescue/internal/models"
)

//go:embed missions/mission*.yaml
var missionFS embed.FS

//go:embed missions/story.yaml
var storyYAML []byte

const (
	kindNarrative = "narrative"
	kindChoice    = "choice"
	kindChallenge = "challenge"
	kindDataEntry = "data_entry"
)

// script is one mission's fixed step sequence. Text fields are templates
// rendered with the player's name when a step goes live.
type script struct {
	Mission      models.MissionID `yaml:"mission"`
	Location     string           `yaml:"location"`
	Steps        []scriptStep     `yaml:"steps"`
	Transmission Transmission     `yaml:"transmission"`
	Complete     completion       `yaml:"complete"`
}

type scriptStep struct {
	Kind      string         `yaml:"kind"`
	Text      string         `yaml:"text"`
	Options   []scriptOption `yaml:"options"`
	Challenge string         `yaml:"challenge"`
}

type scriptOption struct {
	Label    string `yaml:"label"`
	Skill    int    `yaml:"skill"`
	Response string `yaml:"response"`
}

// Transmission is shown while a submitted run is confirmed.
type Transmission struct {
	Heading string `yaml:"heading"`
	Status  string `yaml:"status"`
}

type completion struct {
	Title   string `yaml:"title"`
	Message string `yaml:"message"`
	Tip     string `yaml:"tip"`
}

type story struct {
	Introduction string   `yaml:"introduction"`
	Letter       string   `yaml:"letter"`
	Facts        []string `yaml:"facts"`
}

// templateData is what mission text templates can refer to.
type templateData struct {
	Name string
}

func loadScripts() (map[models.MissionID]*script, error) {
	scripts := make(map[models.MissionID]*script)
	for _, m := range models.Missions {
		name := fmt.Sprintf("missions/mission%d.yaml", int(m))
		data, err := missionFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		s, err := parseScript(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if s.Mission != m {
			return nil, fmt.Errorf("%s: declares mission %d", name, int(s.Mission))
		}
		scripts[m] = s
	}
	return scripts, nil
}

// parseScript decodes a mission script and checks its shape: every step
// kind is known, challenges exist, templates parse, and the run data entry
// is the single, final step.
func parseScript(data []byte) (*script, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse mission script: %w", err)
	}
	if !s.Mission.Valid() {
		return nil, fmt.Errorf("unknown mission %d", int(s.Mission))
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("mission %d has no steps", int(s.Mission))
	}
	for i, st := range s.Steps {
		last := i == len(s.Steps)-1
		if (st.Kind == kindDataEntry) != last {
			return nil, fmt.Errorf("step %d: run data entry must be the last step, and only the last", i+1)
		}
		switch st.Kind {
		case kindNarrative, kindDataEntry:
		case kindChoice:
			if len(st.Options) < 2 {
				return nil, fmt.Errorf("step %d: a choice needs at least two options", i+1)
			}
			for _, o := range st.Options {
				if err := checkTemplate(o.Response); err != nil {
					return nil, fmt.Errorf("step %d: %w", i+1, err)
				}
			}
		case kindChallenge:
			if _, ok := challenge.Lookup(st.Challenge); !ok {
				return nil, fmt.Errorf("step %d: unknown challenge %q", i+1, st.Challenge)
			}
		default:
			return nil, fmt.Errorf("step %d: unknown step kind %q", i+1, st.Kind)
		}
		if err := checkTemplate(st.Text); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

func loadStory() (*story, error) {
	var s story
	if err := yaml.Unmarshal(storyYAML, &s); err != nil {
		return nil, fmt.Errorf("parse story: %w", err)
	}
	if len(s.Facts) == 0 {
		return nil, fmt.Errorf("parse story: no Mars facts")
	}
	for _, t := range []string{s.Introduction, s.Letter} {
		if err := checkTemplate(t); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func checkTemplate(text string) error {
	_, err := template.New("").Parse(text)
	return err
}

// render executes a text template and splits the result into lines.
func render(text string, data templateData) []string {
	if text == "" {
		return nil
	}
	tmpl, err := template.New("").Parse(text)
	if err != nil {
		// Scripts are checked when loaded.
		return splitLines(text)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return splitLines(text)
	}
	return splitLines(buf.String())
}

func splitLines(text string) []string {
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}
