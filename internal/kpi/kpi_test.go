package kpi

import "testing"

func TestPeriodFormat(t *testing.T) {
	valid := []string{"2026-01", "2026-09", "2026-12", "1999-10"}
	for _, p := range valid {
		if !periodRe.MatchString(p) {
			t.Errorf("expected %q to be a valid period", p)
		}
	}

	invalid := []string{"2026-00", "2026-13", "2026-1", "2026/01", "202601", "2026-01-15", ""}
	for _, p := range invalid {
		if periodRe.MatchString(p) {
			t.Errorf("expected %q to be rejected", p)
		}
	}
}

func TestValidMetric(t *testing.T) {
	for _, m := range []string{MetricVisitsCompleted, MetricCoverage, MetricExhibitions} {
		if !ValidMetric(m) {
			t.Errorf("ValidMetric(%q) = false, want true", m)
		}
	}
	for _, m := range []string{"revenue", "", "Coverage"} {
		if ValidMetric(m) {
			t.Errorf("ValidMetric(%q) = true, want false", m)
		}
	}
}
