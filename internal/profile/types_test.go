package profile

import (
	"encoding/json"
	"testing"
)

func TestParseSkillLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    SkillLevel
		wantErr bool
	}{
		{"beginner", Beginner, false},
		{" Expert ", Expert, false},
		{"INTERMEDIATE", Intermediate, false},
		{"guru", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSkillLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSkillLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSkillLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOrdinalsFollowDeclarationOrder(t *testing.T) {
	for i, l := range AllSkillLevels() {
		if l.Ordinal() != i {
			t.Errorf("%s ordinal = %d, want %d", l, l.Ordinal(), i)
		}
	}
	for i, tone := range AllTones() {
		if tone.Ordinal() != i {
			t.Errorf("%s ordinal = %d, want %d", tone, tone.Ordinal(), i)
		}
	}
	if SkillLevel("nope").Ordinal() != -1 || Tone("nope").Ordinal() != -1 {
		t.Error("undefined values must have ordinal -1")
	}
}

func TestFormatSkillLevel(t *testing.T) {
	if got := FormatSkillLevel("intermediate"); got != "Intermediate" {
		t.Errorf("got %q", got)
	}
	if got := FormatSkillLevel(""); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestSkillSetJSON_RejectsUndefinedLevel(t *testing.T) {
	var s SkillSet
	if err := json.Unmarshal([]byte(`{"react":"expert","custom":"beginner"}`), &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s["custom"] != Beginner {
		t.Errorf("expected extra area to decode, got %v", s)
	}

	if err := json.Unmarshal([]byte(`{"react":"ninja"}`), &s); err == nil {
		t.Error("expected error for undefined level")
	}
}

func TestInterviewContextJSON_RequiresAllFields(t *testing.T) {
	var c InterviewContext
	err := json.Unmarshal([]byte(`{"companyType":"midsize","interviewStage":"phone_screen","desiredVibe":"casual"}`), &c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.CompanyType != Midsize || c.InterviewStage != PhoneScreen || c.DesiredVibe != Casual {
		t.Errorf("unexpected context: %+v", c)
	}

	if err := json.Unmarshal([]byte(`{"companyType":"midsize","desiredVibe":"casual"}`), &c); err == nil {
		t.Error("expected error when interviewStage is missing")
	}
	if err := json.Unmarshal([]byte(`{"companyType":"corp","interviewStage":"technical","desiredVibe":"casual"}`), &c); err == nil {
		t.Error("expected error for undefined company type")
	}
}

func TestLabels(t *testing.T) {
	if Midsize.Label() != "Mid-Size" {
		t.Errorf("Midsize label = %q", Midsize.Label())
	}
	if FinalRound.Label() != "Final Round" {
		t.Errorf("FinalRound label = %q", FinalRound.Label())
	}
	if Formal.Description() != "Structured, precise, corporate" {
		t.Errorf("Formal description = %q", Formal.Description())
	}
}
