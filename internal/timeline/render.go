package timeline

import (
	"fmt"
	"strings"

	"learning-advisor/internal/domain"
)

const tips = "Tips:\n" +
	"- Practice by building small projects after each stage.\n" +
	"- Use curated courses (Coursera, fast.ai, Udemy) and official docs.\n" +
	"- Pair learning with hands-on projects and version control (Git).\n"

// Render arma el mensaje que se muestra en el chat.
func Render(t domain.Timeline, profile domain.Profile, timeCommitment string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Here is a recommended learning path for %s based on your profile:\n", t.Domain)
	fmt.Fprintf(&b, "(Degree: %s, Semester: %s, GPA: %s, Daily study: %s)\n",
		orNA(profile.Degree), orNA(profile.Semester), orNA(profile.GPA), timeCommitment)
	if profile.LearningGoal != "" {
		fmt.Fprintf(&b, "Primary goal: %s\n\n", profile.LearningGoal)
	}

	path := strings.Join(t.StageLabels(), " "+PathSeparator+" ")
	if path == "" {
		path = t.BasePath
	}
	b.WriteString("Path: " + path + "\n\nTimeline:\n")

	lines := make([]string, 0, len(t.Stages))
	for _, s := range t.Stages {
		lines = append(lines, fmt.Sprintf("%s: ~%d week(s)", s.Stage, s.Weeks))
	}
	b.WriteString(strings.Join(lines, "\n"))

	fmt.Fprintf(&b, "\nEstimated total time: ~%d week(s) (depends on consistency). "+
		"These estimates scale with your daily study time.\n", t.TotalWeeks)
	b.WriteString("\n" + tips)
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
