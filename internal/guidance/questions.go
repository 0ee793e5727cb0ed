// Package guidance derives follow-up material from a keyword match: interview
// questions for the skills a candidate has, a learning roadmap for the ones
// they lack, and a recruiter email draft.
package guidance

import "fmt"

// MaxQuestions is the maximum number of interview questions returned.
const MaxQuestions = 5

// DefaultQuestionBank maps a skill, exactly as it appears in a keyword list, to a technical question.
var DefaultQuestionBank = map[string]string{
	"Python": "Explain the Global Interpreter Lock (GIL).",
	"SQL":    "Difference between TRUNCATE and DELETE?",
	"React":  "Explain 'Lifting State Up' and useEffect.",
	"AWS":    "Difference between S3, EBS, and EFS?",
	"Docker": "Difference between Image and Container?",
}

// GenericQuestions pad the list when too few skill questions apply.
var GenericQuestions = []string{
	"Describe a challenging technical bug you solved.",
	"How do you handle tight deadlines?",
}

// InterviewQuestions returns one "<Skill>: <question>" entry per found skill that has
// a question in bank, in found order. When that yields fewer than MaxQuestions, both
// generic questions are appended. The result never exceeds MaxQuestions.
func InterviewQuestions(found []string, bank map[string]string) []string {
	questions := make([]string, 0, MaxQuestions+len(GenericQuestions))
	for _, skill := range found {
		if q, ok := bank[skill]; ok {
			questions = append(questions, fmt.Sprintf("%s: %s", skill, q))
		}
	}

	if len(questions) < MaxQuestions {
		questions = append(questions, GenericQuestions...)
	}
	if len(questions) > MaxQuestions {
		questions = questions[:MaxQuestions]
	}
	return questions
}
