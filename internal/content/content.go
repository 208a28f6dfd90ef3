// Package content holds the static datasets the lab teaches from: the
// hardware component list, the final quiz bank, and the greeting and
// credits text. Defaults are embedded; an asset directory may override
// them with files of the same names.
package content

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed data/components.yaml data/quiz.yaml data/text.yaml
var defaults embed.FS

// Question is a single two-answer question. The same shape serves both
// per-component check questions and the final quiz bank.
type Question struct {
	Prompt  string   `yaml:"question"`
	Answers []string `yaml:"answers"`
	Correct int      `yaml:"correct"`
}

// Component describes one piece of hardware shown in the viewer.
// Unlocked is the only field that mutates at runtime; it flips to true
// when the learner passes the component's check question.
type Component struct {
	Label       string    `yaml:"label"`
	Model       string    `yaml:"model"`
	Audio       string    `yaml:"audio,omitempty"`
	Description []string  `yaml:"description"`
	Check       *Question `yaml:"check,omitempty"`
	Unlocked    bool      `yaml:"unlocked"`
}

// Library bundles everything the controller and screen builder read.
type Library struct {
	Components []Component
	Quiz       []Question
	Greeting   []string
	Credits    []string
}

type componentsFile struct {
	Components []Component `yaml:"components"`
}

type quizFile struct {
	Quiz []Question `yaml:"quiz"`
}

type textFile struct {
	Greeting []string `yaml:"greeting"`
	Credits  []string `yaml:"credits"`
}

// Default returns the embedded datasets.
func Default() (*Library, error) {
	return load(func(name string) ([]byte, error) {
		return defaults.ReadFile("data/" + name)
	})
}

// Load reads datasets from dir, falling back to the embedded defaults for
// any file that is absent there.
func Load(dir string) (*Library, error) {
	return load(func(name string) ([]byte, error) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			return defaults.ReadFile("data/" + name)
		}
		return data, err
	})
}

func load(read func(name string) ([]byte, error)) (*Library, error) {
	lib := &Library{}

	data, err := read("components.yaml")
	if err != nil {
		return nil, fmt.Errorf("content: reading components: %w", err)
	}
	var cf componentsFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("content: parsing components: %w", err)
	}
	lib.Components = cf.Components

	data, err = read("quiz.yaml")
	if err != nil {
		return nil, fmt.Errorf("content: reading quiz: %w", err)
	}
	var qf quizFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("content: parsing quiz: %w", err)
	}
	lib.Quiz = qf.Quiz

	data, err = read("text.yaml")
	if err != nil {
		return nil, fmt.Errorf("content: reading text: %w", err)
	}
	var tf textFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("content: parsing text: %w", err)
	}
	lib.Greeting = tf.Greeting
	lib.Credits = tf.Credits

	if err := lib.validate(); err != nil {
		return nil, err
	}
	return lib, nil
}

func (q *Question) validate() error {
	if q.Prompt == "" {
		return fmt.Errorf("empty prompt")
	}
	if len(q.Answers) != 2 {
		return fmt.Errorf("question %q: want 2 answers, got %d", q.Prompt, len(q.Answers))
	}
	if q.Correct < 0 || q.Correct > 1 {
		return fmt.Errorf("question %q: correct index %d out of range", q.Prompt, q.Correct)
	}
	return nil
}

func (lib *Library) validate() error {
	if len(lib.Components) == 0 {
		return fmt.Errorf("content: no components")
	}
	for i, comp := range lib.Components {
		if comp.Label == "" {
			return fmt.Errorf("content: component %d has no label", i)
		}
		if len(comp.Description) == 0 {
			return fmt.Errorf("content: component %q has no description pages", comp.Label)
		}
		if comp.Check != nil {
			if err := comp.Check.validate(); err != nil {
				return fmt.Errorf("content: component %q check: %w", comp.Label, err)
			}
		}
	}
	if len(lib.Quiz) == 0 {
		return fmt.Errorf("content: empty quiz bank")
	}
	for i := range lib.Quiz {
		if err := lib.Quiz[i].validate(); err != nil {
			return fmt.Errorf("content: quiz: %w", err)
		}
	}
	if len(lib.Greeting) == 0 {
		return fmt.Errorf("content: no greeting pages")
	}
	if len(lib.Credits) == 0 {
		return fmt.Errorf("content: no credits pages")
	}
	return nil
}
