package cmd

import (
	"strings"

	"github.com/fatih/color"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
	colorLabel   = color.New(color.Bold).SprintFunc()
)

func formatStatusWithColor(status string) string {
	switch strings.ToLower(status) {
	case "ok", "success", "pass", "hit":
		return colorSuccess(status)
	case "error", "fail", "failed":
		return colorError(status)
	case "miss":
		return colorInfo(status)
	default:
		return status
	}
}

// gradeColor colours a letter grade: A/B green, C/D yellow, anything else red.
func gradeColor(grade string) string {
	switch grade {
	case "A", "B":
		return colorSuccess(grade)
	case "C", "D":
		return colorWarn(grade)
	default:
		return colorError(grade)
	}
}

func yesNo(ok bool) string {
	if ok {
		return colorSuccess("yes")
	}
	return colorError("no")
}
