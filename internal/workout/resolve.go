package workout

import (
	"strings"

	"github.com/sadopc/liftlog/internal/catalog"
)

// Exercise is a template entry after substitution.
type Exercise struct {
	Name       string // resolved name, used for logging and set counts
	Template   string // template entry name, used for choices and pairing
	Sets       int
	RepRange   string
	Note       string
	Bodyweight bool
	Superset   string
	IsSuperset bool
	Stopwatch  bool
}

// Resolve applies choice to the template entry. With no options or no choice
// the entry is returned as-is.
func Resolve(tmpl catalog.Exercise, choice string) Exercise {
	ex := Exercise{
		Name:       tmpl.Name,
		Template:   tmpl.Name,
		Sets:       tmpl.Sets,
		RepRange:   tmpl.RepRange,
		Note:       tmpl.Note,
		Superset:   tmpl.Superset,
		IsSuperset: tmpl.IsSuperset,
		Stopwatch:  tmpl.Stopwatch,
	}
	if !tmpl.HasOptions() || choice == "" {
		ex.Bodyweight = tmpl.Bodyweight != nil && *tmpl.Bodyweight
		return ex
	}

	ex.Name = choice
	bodyweight := tmpl.Bodyweight
	if opt, ok := tmpl.Option(choice); ok {
		if opt.RepRange != "" {
			ex.RepRange = opt.RepRange
		}
		if opt.Bodyweight != nil {
			bodyweight = opt.Bodyweight
		}
	}
	if bodyweight != nil {
		ex.Bodyweight = *bodyweight
	} else {
		ex.Bodyweight = InferBodyweight(choice)
	}
	return ex
}

var bodyweightLexemes = []string{"push-up", "pushup", "pull-up", "pullup"}

// InferBodyweight reports whether a movement name reads as unloaded bodyweight.
// Assisted variants are loaded (the assistance is the weight).
func InferBodyweight(name string) bool {
	lower := strings.ToLower(name)
	if IsAssisted(lower) {
		return false
	}
	for _, lex := range bodyweightLexemes {
		if strings.Contains(lower, lex) {
			return true
		}
	}
	return false
}

// IsAssisted reports whether the name is an assisted movement, where less
// weight is better.
func IsAssisted(name string) bool {
	return strings.Contains(strings.ToLower(name), "assisted")
}
