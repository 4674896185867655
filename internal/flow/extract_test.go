package flow

import "testing"

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"english low", "low", "low", true},
		{"english urgent", "urgent", "urgent", true},
		{"mixed case with spaces", "  High ", "high", true},
		{"hebrew feminine urgent", "דחופה", "urgent", true},
		{"hebrew masculine low", "נמוך", "low", true},
		{"hebrew medium", "בינונית", "medium", true},
		{"unknown word", "critical", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePriority(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParsePriority(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"open", "open", "open", true},
		{"in progress with space", "in progress", "in_progress", true},
		{"done", "done", "done", true},
		{"completed alias", "completed", "done", true},
		{"hebrew open", "פתוחה", "open", true},
		{"hebrew done", "הושלמה", "done", true},
		{"unknown", "paused", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseStatus(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseStatus(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPriorityLabel(t *testing.T) {
	if got := priorityLabel("urgent"); got != "urgent (דחופה)" {
		t.Errorf("priorityLabel(urgent) = %q, want bilingual rendering", got)
	}
	if got := priorityLabel("unknown"); got != "unknown" {
		t.Errorf("priorityLabel(unknown) = %q, want passthrough", got)
	}
}
