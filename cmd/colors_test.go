package cmd

import "testing"

func TestFormatStatusWithColor(t *testing.T) {
	disableColor(t)

	tests := []struct {
		name   string
		status string
		want   string
	}{
		{name: "success", status: "OK", want: "OK"},
		{name: "pass synonym", status: "pass", want: "pass"},
		{name: "cache hit", status: "hit", want: "hit"},
		{name: "failure", status: "FAILED", want: "FAILED"},
		{name: "unknown", status: "pending", want: "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatStatusWithColor(tt.status); got != tt.want {
				t.Fatalf("formatStatusWithColor(%q) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestGradeColorKeepsLetter(t *testing.T) {
	disableColor(t)

	for _, grade := range []string{"A", "B", "C", "D", "E", "F"} {
		if got := gradeColor(grade); got != grade {
			t.Fatalf("gradeColor(%q) = %q", grade, got)
		}
	}
	if yesNo(true) != "yes" || yesNo(false) != "no" {
		t.Fatalf("unexpected yesNo output: %q/%q", yesNo(true), yesNo(false))
	}
}
