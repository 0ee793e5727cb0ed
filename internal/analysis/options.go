package analysis

import (
	"fmt"
	"strings"
)

// Step names an optional analysis step.
type Step string

// Analysis steps. Keyword matching is not listed: it always runs.
const (
	StepContact    Step = "contact"
	StepExperience Step = "experience"
	StepSkills     Step = "skills"
	StepAudit      Step = "audit"
	StepQuestions  Step = "questions"
	StepRoadmap    Step = "roadmap"
)

// AllSteps lists every step in execution order.
var AllSteps = []Step{StepContact, StepExperience, StepSkills, StepAudit, StepQuestions, StepRoadmap}

// Options selects which steps run for a document.
type Options struct {
	Contact    bool
	Experience bool
	Skills     bool
	Audit      bool
	Questions  bool
	Roadmap    bool
}

// SeekerOptions is what a job seeker sees: contact check, skills, audit and a roadmap for gaps.
func SeekerOptions() Options {
	return Options{Contact: true, Skills: true, Audit: true, Roadmap: true}
}

// RecruiterOptions screens a single candidate.
func RecruiterOptions() Options {
	return Options{Contact: true, Experience: true, Skills: true, Questions: true}
}

// BatchOptions is the minimal set the leaderboard needs.
func BatchOptions() Options {
	return Options{Contact: true, Experience: true, Skills: true}
}

// AllOptions enables every step.
func AllOptions() Options {
	return Options{Contact: true, Experience: true, Skills: true, Audit: true, Questions: true, Roadmap: true}
}

// Enabled reports whether step s is selected.
func (o Options) Enabled(s Step) bool {
	switch s {
	case StepContact:
		return o.Contact
	case StepExperience:
		return o.Experience
	case StepSkills:
		return o.Skills
	case StepAudit:
		return o.Audit
	case StepQuestions:
		return o.Questions
	case StepRoadmap:
		return o.Roadmap
	}
	return false
}

func (o *Options) set(s Step) bool {
	switch s {
	case StepContact:
		o.Contact = true
	case StepExperience:
		o.Experience = true
	case StepSkills:
		o.Skills = true
	case StepAudit:
		o.Audit = true
	case StepQuestions:
		o.Questions = true
	case StepRoadmap:
		o.Roadmap = true
	default:
		return false
	}
	return true
}

// Steps returns the selected steps in execution order.
func (o Options) Steps() []Step {
	steps := make([]Step, 0, len(AllSteps))
	for _, s := range AllSteps {
		if o.Enabled(s) {
			steps = append(steps, s)
		}
	}
	return steps
}

// String returns the selected steps as a comma-separated list, the format ParseSteps accepts.
func (o Options) String() string {
	names := make([]string, 0, len(AllSteps))
	for _, s := range o.Steps() {
		names = append(names, string(s))
	}
	return strings.Join(names, ",")
}

// Validate rejects an Options value that selects nothing.
func (o Options) Validate() error {
	if len(o.Steps()) == 0 {
		return &ConfigurationError{Message: "no analysis steps selected"}
	}
	return nil
}

// ParseSteps parses a comma-separated step list such as "contact,audit".
// The presets "seeker", "recruiter", "batch" and "all" are accepted as whole values.
func ParseSteps(list string) (Options, error) {
	switch strings.ToLower(strings.TrimSpace(list)) {
	case "seeker":
		return SeekerOptions(), nil
	case "recruiter":
		return RecruiterOptions(), nil
	case "batch":
		return BatchOptions(), nil
	case "all":
		return AllOptions(), nil
	}

	var opts Options
	for _, part := range strings.Split(list, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if !opts.set(Step(name)) {
			return Options{}, &ConfigurationError{Message: fmt.Sprintf("unknown analysis step %q", name)}
		}
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
