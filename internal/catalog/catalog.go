package catalog

import (
	"encoding/json"
	"fmt"
)

// Option is one substitution choice for an exercise. In JSON it is either a
// bare string or an object carrying overrides.
type Option struct {
	Name       string
	RepRange   string // empty = keep the template's range
	Bodyweight *bool  // nil = infer from the name
}

func (o Option) MarshalJSON() ([]byte, error) {
	if o.RepRange == "" && o.Bodyweight == nil {
		return json.Marshal(o.Name)
	}
	return json.Marshal(optionObject{Name: o.Name, RepRange: o.RepRange, Bodyweight: o.Bodyweight})
}

func (o *Option) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*o = Option{Name: name}
		return nil
	}
	var obj optionObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode option: %w", err)
	}
	if obj.Name == "" {
		return fmt.Errorf("decode option: missing name")
	}
	*o = Option{Name: obj.Name, RepRange: obj.RepRange, Bodyweight: obj.Bodyweight}
	return nil
}

type optionObject struct {
	Name       string `json:"name"`
	RepRange   string `json:"repRange,omitempty"`
	Bodyweight *bool  `json:"bodyweight,omitempty"`
}

// Exercise is one entry of a workout template.
type Exercise struct {
	Name       string   `json:"name"`
	Sets       int      `json:"sets"`
	RepRange   string   `json:"repRange"`
	Note       string   `json:"note,omitempty"`
	Bodyweight *bool    `json:"bodyweight"`
	Options    []Option `json:"options,omitempty"`
	Superset   string   `json:"superset,omitempty"`   // partner that follows this entry
	IsSuperset bool     `json:"isSuperset,omitempty"` // second half of a pair
	Stopwatch  bool     `json:"stopwatch,omitempty"`  // measured by duration, not reps
}

// HasOptions reports whether the exercise offers substitutions.
func (e Exercise) HasOptions() bool { return len(e.Options) > 0 }

// Option returns the option with the given name.
func (e Exercise) Option(name string) (Option, bool) {
	for _, o := range e.Options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// Workout is a named, ordered template.
type Workout struct {
	Key       string     `json:"key"`
	Name      string     `json:"name"`
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
}

// Index returns the position of the exercise with the given template name, or -1.
func (w Workout) Index(name string) int {
	for i, ex := range w.Exercises {
		if ex.Name == name {
			return i
		}
	}
	return -1
}

// Pairs returns the template names of every first-half superset entry.
func (w Workout) Pairs() []string {
	var keys []string
	for _, ex := range w.Exercises {
		if ex.Superset != "" && !ex.IsSuperset {
			keys = append(keys, ex.Name)
		}
	}
	return keys
}

// Validate checks the template's structural invariants.
func (w Workout) Validate() error {
	if len(w.Exercises) == 0 {
		return fmt.Errorf("workout %s: no exercises", w.Key)
	}
	seen := make(map[string]bool, len(w.Exercises))
	for i, ex := range w.Exercises {
		if ex.Sets <= 0 {
			return fmt.Errorf("workout %s: exercise %q has %d sets", w.Key, ex.Name, ex.Sets)
		}
		if seen[ex.Name] {
			return fmt.Errorf("workout %s: duplicate exercise %q", w.Key, ex.Name)
		}
		seen[ex.Name] = true

		if ex.Superset != "" {
			if ex.IsSuperset {
				return fmt.Errorf("workout %s: %q is both halves of a superset", w.Key, ex.Name)
			}
			if i+1 >= len(w.Exercises) {
				return fmt.Errorf("workout %s: superset partner %q missing", w.Key, ex.Superset)
			}
			next := w.Exercises[i+1]
			if next.Name != ex.Superset || !next.IsSuperset {
				return fmt.Errorf("workout %s: %q must be followed by superset partner %q", w.Key, ex.Name, ex.Superset)
			}
		}
		if ex.IsSuperset {
			if i == 0 || w.Exercises[i-1].Superset != ex.Name {
				return fmt.Errorf("workout %s: %q marked as superset without a partner", w.Key, ex.Name)
			}
		}
	}
	return nil
}

// Order is the fixed rotation of templates.
var Order = []string{"A", "B", "C"}

// Get returns the template for key.
func Get(key string) (Workout, bool) {
	w, ok := workouts[key]
	return w, ok
}

// All returns the templates in rotation order.
func All() []Workout {
	out := make([]Workout, 0, len(Order))
	for _, k := range Order {
		out = append(out, workouts[k])
	}
	return out
}

// Next returns the template that follows last in the rotation. An empty or
// unknown last key starts the rotation over.
func Next(last string) string {
	for i, k := range Order {
		if k == last {
			return Order[(i+1)%len(Order)]
		}
	}
	return Order[0]
}

func boolPtr(b bool) *bool { return &b }
