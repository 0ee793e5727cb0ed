package guidance

import (
	"fmt"
	"net/url"
)

const courseSearchURL = "https://www.coursera.org/search?query="

// CourseLink returns the course search link for skill. No request is made.
func CourseLink(skill string) string {
	return courseSearchURL + url.QueryEscape(skill)
}

// LearningRoadmap returns one "Learn <skill>: <link>" step per missing keyword, in order.
func LearningRoadmap(missing []string) []string {
	roadmap := make([]string, 0, len(missing))
	for _, skill := range missing {
		roadmap = append(roadmap, fmt.Sprintf("Learn %s: %s", skill, CourseLink(skill)))
	}
	return roadmap
}
