package main

import (
	"encoding/json"
	"testing"
	"time"

	"gymfuel/recommend-api/internal/recommend"
)

func ptr[T any](v T) *T { return &v }

// makeProfile constructs a fully-populated memberProfile for the reference
// 175cm, 70kg male. Tests nil out fields to exercise the incomplete path.
func makeProfile(category, goal string, dob time.Time) memberProfile {
	d := DateOnly{dob}
	return memberProfile{
		MemberID:          1,
		Gender:            ptr("male"),
		DateOfBirth:       &d,
		HeightCM:          ptr(175.0),
		WeightKG:          ptr(70.0),
		Category:          ptr(category),
		BodyFatPercent:    ptr(15.0),
		TrainingFrequency: ptr("2-3"),
		Goal:              ptr(goal),
	}
}

/* ─── Age derivation ─────────────────────────────────────────────────── */

func TestAgeOn(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		dob    time.Time
		want   int
		wantOK bool
	}{
		{"birthday passed", time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC), 25, true},
		{"birthday today", time.Date(2001, 6, 15, 0, 0, 0, 0, time.UTC), 25, true},
		{"birthday tomorrow", time.Date(2001, 6, 16, 0, 0, 0, 0, time.UTC), 24, true},
		{"future DOB", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), 0, false},
		{"over 130", time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC), 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ageOn(tc.dob, now)
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("ageOn = %d, %v; want %d, %v", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

/* ─── Stored profile → engine input ──────────────────────────────────── */

// TestEngineProfile_ReferenceMember verifies a stored row reproduces the
// general reference result once age is derived from DOB.
func TestEngineProfile_ReferenceMember(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	p := makeProfile("general", "maintain", time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC))

	ep := p.engineProfile(now)
	if ep.AgeYears != 25 {
		t.Fatalf("age = %v, want 25", ep.AgeYears)
	}
	r, err := recommend.Compute(ep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := recommend.Result{CaloriesKcal: 2343, ProteinGrams: 119, CarbsGrams: 420, FatGrams: 56}
	if r != want {
		t.Errorf("result = %+v, want %+v", r, want)
	}
}

// TestStoredBreakdown_Incomplete verifies nil fields give an incomplete
// breakdown and no error.
func TestStoredBreakdown_Incomplete(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name  string
		mutFn func(p *memberProfile)
	}{
		{"nil Gender", func(p *memberProfile) { p.Gender = nil }},
		{"nil Goal", func(p *memberProfile) { p.Goal = nil }},
		{"nil TrainingFrequency", func(p *memberProfile) { p.TrainingFrequency = nil }},
		{"nil WeightKG", func(p *memberProfile) { p.WeightKG = nil }},
		{"nil DateOfBirth", func(p *memberProfile) { p.DateOfBirth = nil }},
		{"future DateOfBirth", func(p *memberProfile) { p.DateOfBirth = &DateOnly{now.AddDate(1, 0, 0)} }},
		{"athlete nil BodyFat", func(p *memberProfile) { p.Category = ptr("athlete"); p.BodyFatPercent = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := makeProfile("general", "maintain", now.AddDate(-30, 0, 0))
			tc.mutFn(&p)
			b, err := storedBreakdown(p, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b.Complete || !b.Result.IsZero() {
				t.Errorf("expected incomplete zero breakdown, got %+v", b)
			}
		})
	}
}

// TestStoredBreakdown_GoalMismatch verifies a stored athlete goal on a
// general member surfaces the engine error.
func TestStoredBreakdown_GoalMismatch(t *testing.T) {
	p := makeProfile("general", "lean_bulk", time.Now().AddDate(-30, 0, 0))
	_, err := storedBreakdown(p, time.Now())
	if _, ok := engineErrorMessage(err); !ok {
		t.Errorf("expected engine contract error, got %v", err)
	}
}

/* ─── DateOnly ───────────────────────────────────────────────────────── */

func TestDateOnly_JSON(t *testing.T) {
	var d DateOnly
	if err := json.Unmarshal([]byte(`"2026-02-03"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"2026-02-03"` {
		t.Errorf("marshal = %s, want \"2026-02-03\"", out)
	}
	if err := json.Unmarshal([]byte(`"02/03/2026"`), &d); err == nil {
		t.Error("expected error for non-ISO date")
	}
}
