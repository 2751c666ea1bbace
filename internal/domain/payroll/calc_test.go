package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"bizops/internal/domain/core"
	"bizops/internal/domain/timesheet"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func rate(v float64) *float64 { return &v }

func TestComputeForProfileHoursTimesRate(t *testing.T) {
	profile := core.Profile{ID: "p1", HourlyRate: rate(25)}
	hours := []timesheet.WorkingHour{
		{ProfileID: "p1", Status: timesheet.StatusApproved, Date: date(2024, 3, 4), TotalHours: 8},
		{ProfileID: "p1", Status: timesheet.StatusApproved, Date: date(2024, 3, 5), TotalHours: 6},
	}

	result, err := ComputeForProfile(profile, hours, date(2024, 3, 1), date(2024, 3, 31), Filter{}, 35)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalHours != 14 {
		t.Fatalf("expected 14 hours, got %v", result.TotalHours)
	}
	if result.GrossPay != 350 {
		t.Fatalf("expected gross 350, got %v", result.GrossPay)
	}
	if result.NetPay != 315 {
		t.Fatalf("expected net 315, got %v", result.NetPay)
	}
	if result.HourlyRate != 25 {
		t.Fatalf("expected snapshotted rate 25, got %v", result.HourlyRate)
	}
}

func TestComputeForProfileInvalidPeriod(t *testing.T) {
	profile := core.Profile{ID: "p1", HourlyRate: rate(25)}

	_, err := ComputeForProfile(profile, nil, date(2024, 2, 1), date(2024, 1, 1), Filter{}, 0)
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestComputeForProfilePayableAmountsWin(t *testing.T) {
	profile := core.Profile{ID: "p1", HourlyRate: rate(100)}
	hours := []timesheet.WorkingHour{
		{ProfileID: "p1", Status: timesheet.StatusApproved, Date: date(2024, 3, 4), TotalHours: 8, PayableAmount: rate(180)},
		{ProfileID: "p1", Status: timesheet.StatusApproved, Date: date(2024, 3, 5), TotalHours: 6, PayableAmount: rate(120)},
	}

	result, err := ComputeForProfile(profile, hours, date(2024, 3, 1), date(2024, 3, 31), Filter{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.GrossPay != 300 {
		t.Fatalf("expected gross 300 from payable amounts, got %v", result.GrossPay)
	}
}

func TestComputeForProfileMixedPayableFallsBackToRate(t *testing.T) {
	profile := core.Profile{ID: "p1", HourlyRate: rate(10)}
	hours := []timesheet.WorkingHour{
		{ProfileID: "p1", Status: timesheet.StatusApproved, Date: date(2024, 3, 4), TotalHours: 4, PayableAmount: rate(999)},
		{ProfileID: "p1", Status: timesheet.StatusApproved, Date: date(2024, 3, 5), TotalHours: 6},
	}

	result, err := ComputeForProfile(profile, hours, date(2024, 3, 1), date(2024, 3, 31), Filter{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.GrossPay != 100 {
		t.Fatalf("expected gross 100 via rate fallback, got %v", result.GrossPay)
	}
}

func TestComputeForProfileUnknownProfile(t *testing.T) {
	profile := core.Profile{ID: "p1"}
	hours := []timesheet.WorkingHour{
		{ProfileID: "p1", Status: timesheet.StatusApproved, Date: date(2024, 3, 4), TotalHours: 8},
	}

	_, err := ComputeForProfile(profile, hours, date(2024, 3, 1), date(2024, 3, 31), Filter{}, 0)
	if !errors.Is(err, ErrUnknownProfile) {
		t.Fatalf("expected ErrUnknownProfile, got %v", err)
	}
}

func TestComputeForProfileActualHoursOverride(t *testing.T) {
	profile := core.Profile{ID: "p1", HourlyRate: rate(10)}
	hours := []timesheet.WorkingHour{
		{ProfileID: "p1", Status: timesheet.StatusApproved, Date: date(2024, 3, 4), TotalHours: 8, ActualHours: rate(7.5)},
	}

	result, err := ComputeForProfile(profile, hours, date(2024, 3, 1), date(2024, 3, 31), Filter{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalHours != 7.5 {
		t.Fatalf("expected actual hours 7.5, got %v", result.TotalHours)
	}
	if result.GrossPay != 75 {
		t.Fatalf("expected gross 75, got %v", result.GrossPay)
	}
}

func TestComputeForProfileFilters(t *testing.T) {
	profile := core.Profile{ID: "p1", HourlyRate: rate(10)}
	hours := []timesheet.WorkingHour{
		{ProfileID: "p1", ClientID: "c1", ProjectID: "j1", Status: timesheet.StatusApproved, Date: date(2024, 3, 4), TotalHours: 3},
		{ProfileID: "p1", ClientID: "c2", ProjectID: "j2", Status: timesheet.StatusApproved, Date: date(2024, 3, 4), TotalHours: 5},
		{ProfileID: "p2", ClientID: "c1", ProjectID: "j1", Status: timesheet.StatusApproved, Date: date(2024, 3, 4), TotalHours: 9},
		{ProfileID: "p1", ClientID: "c1", ProjectID: "j1", Status: timesheet.StatusPending, Date: date(2024, 3, 4), TotalHours: 9},
		{ProfileID: "p1", ClientID: "c1", ProjectID: "j1", Status: timesheet.StatusApproved, Date: date(2024, 4, 1), TotalHours: 9},
	}

	result, err := ComputeForProfile(profile, hours, date(2024, 3, 1), date(2024, 3, 31), Filter{ClientID: "c1"}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalHours != 3 {
		t.Fatalf("expected 3 hours after filtering, got %v", result.TotalHours)
	}
}

func TestComputeForProfilePeriodBoundsInclusive(t *testing.T) {
	profile := core.Profile{ID: "p1", HourlyRate: rate(10)}
	hours := []timesheet.WorkingHour{
		{ProfileID: "p1", Status: timesheet.StatusApproved, Date: date(2024, 3, 1), TotalHours: 1},
		{ProfileID: "p1", Status: timesheet.StatusApproved, Date: date(2024, 3, 31), TotalHours: 2},
		{ProfileID: "p1", Status: timesheet.StatusApproved, Date: date(2024, 2, 29), TotalHours: 4},
	}

	result, err := ComputeForProfile(profile, hours, date(2024, 3, 1), date(2024, 3, 31), Filter{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalHours != 3 {
		t.Fatalf("expected boundary dates included, got %v hours", result.TotalHours)
	}
}

func TestComputeForProfileNegativeNet(t *testing.T) {
	profile := core.Profile{ID: "p1", HourlyRate: rate(10)}
	hours := []timesheet.WorkingHour{
		{ProfileID: "p1", Status: timesheet.StatusApproved, Date: date(2024, 3, 4), TotalHours: 2},
	}

	result, err := ComputeForProfile(profile, hours, date(2024, 3, 1), date(2024, 3, 31), Filter{}, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.NetPay != -30 {
		t.Fatalf("expected net -30, got %v", result.NetPay)
	}
	if result.NetPay != result.GrossPay-result.Deductions {
		t.Fatal("net must equal gross minus deductions")
	}
}

func TestComputeBulk(t *testing.T) {
	profiles := []core.Profile{
		{ID: "p1", HourlyRate: rate(20)},
		{ID: "p2", HourlyRate: rate(30)},
	}
	hours := []timesheet.WorkingHour{
		{ProfileID: "p1", Status: timesheet.StatusApproved, Date: date(2024, 3, 4), TotalHours: 10},
		{ProfileID: "p2", Status: timesheet.StatusApproved, Date: date(2024, 3, 5), TotalHours: 10},
	}
	policy := DeductionPolicy{Kind: DeductionPercent, Value: 10}

	results, err := ComputeBulk(context.Background(), profiles, hours, date(2024, 3, 1), date(2024, 3, 31), Filter{}, policy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ProfileID != "p1" || results[0].GrossPay != 200 || results[0].Deductions != 20 || results[0].NetPay != 180 {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	if results[1].ProfileID != "p2" || results[1].GrossPay != 300 || results[1].NetPay != 270 {
		t.Fatalf("unexpected second result: %+v", results[1])
	}
}

func TestComputeBulkInvalidPeriod(t *testing.T) {
	_, err := ComputeBulk(context.Background(), nil, nil, date(2024, 2, 1), date(2024, 1, 1), Filter{}, DeductionPolicy{})
	if !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestDeductionPolicyResolve(t *testing.T) {
	flat := DeductionPolicy{Kind: DeductionFlat, Value: 35}
	if got := flat.Resolve(350); got != 35 {
		t.Fatalf("expected flat 35, got %v", got)
	}

	percent := DeductionPolicy{Kind: DeductionPercent, Value: 10}
	if got := percent.Resolve(350); got != 35 {
		t.Fatalf("expected percent 35, got %v", got)
	}

	if got := (DeductionPolicy{}).Resolve(350); got != 0 {
		t.Fatalf("expected zero for empty policy, got %v", got)
	}
}

func TestCanAdvance(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusApproved, StatusPaid, true},
		{StatusPending, StatusPaid, true},
		{StatusPaid, StatusApproved, false},
		{StatusApproved, StatusPending, false},
		{StatusPending, StatusPending, false},
		{"unknown", StatusPaid, false},
	}

	for _, tc := range tests {
		if got := CanAdvance(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanAdvance(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestRecomputeAmounts(t *testing.T) {
	gross, net := RecomputeAmounts(25, 14, 35)
	if gross != 350 {
		t.Fatalf("expected gross 350, got %v", gross)
	}
	if net != 315 {
		t.Fatalf("expected net 315, got %v", net)
	}

	gross, net = RecomputeAmounts(1, 10, 50)
	if gross != 10 || net != -40 {
		t.Fatalf("expected gross 10 net -40, got %v %v", gross, net)
	}
}

func TestSelectProfilesReportsSkipped(t *testing.T) {
	candidates := []core.Profile{{ID: "p1"}, {ID: "p2"}}

	selected, skipped := SelectProfiles(candidates, []string{"p1", "missing", "p2"})
	if len(selected) != 2 || selected[0].ID != "p1" || selected[1].ID != "p2" {
		t.Fatalf("unexpected selection: %+v", selected)
	}
	if len(skipped) != 1 || skipped[0] != "missing" {
		t.Fatalf("expected missing id reported, got %v", skipped)
	}

	selected, skipped = SelectProfiles(candidates, nil)
	if len(selected) != 2 || skipped != nil {
		t.Fatalf("expected all candidates and no skips, got %+v %v", selected, skipped)
	}
}
