package payroll

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"bizops/internal/domain/core"
	"bizops/internal/domain/timesheet"
)

// ComputeForProfile derives pay for one profile over an inclusive date
// range from approved working hours. Hours come from actual_hours when
// recorded, else total_hours. Gross is the sum of per-record payable
// amounts when every matching record carries one; otherwise it falls
// back to hours times the profile's current rate, which the caller
// snapshots into the stored payroll. Deductions are supplied already
// resolved; net may go negative when deductions exceed gross.
func ComputeForProfile(profile core.Profile, workingHours []timesheet.WorkingHour, periodStart, periodEnd time.Time, filter Filter, deductions float64) (Result, error) {
	if periodStart.After(periodEnd) {
		return Result{}, ErrInvalidPeriod
	}

	var matched []timesheet.WorkingHour
	for _, wh := range workingHours {
		if wh.ProfileID != profile.ID || wh.Status != timesheet.StatusApproved {
			continue
		}
		if wh.Date.Before(periodStart) || wh.Date.After(periodEnd) {
			continue
		}
		if filter.ClientID != "" && wh.ClientID != filter.ClientID {
			continue
		}
		if filter.ProjectID != "" && wh.ProjectID != filter.ProjectID {
			continue
		}
		matched = append(matched, wh)
	}

	totalHours := 0.0
	allPriced := len(matched) > 0
	pricedSum := 0.0
	for _, wh := range matched {
		if wh.ActualHours != nil {
			totalHours += *wh.ActualHours
		} else {
			totalHours += wh.TotalHours
		}
		if wh.PayableAmount != nil {
			pricedSum += *wh.PayableAmount
		} else {
			allPriced = false
		}
	}

	hourlyRate := 0.0
	if profile.HourlyRate != nil {
		hourlyRate = *profile.HourlyRate
	}

	var gross float64
	switch {
	case allPriced:
		gross = pricedSum
	case len(matched) > 0 && profile.HourlyRate == nil:
		return Result{}, ErrUnknownProfile
	default:
		gross = totalHours * hourlyRate
	}

	return Result{
		ProfileID:  profile.ID,
		TotalHours: totalHours,
		HourlyRate: hourlyRate,
		GrossPay:   gross,
		Deductions: deductions,
		NetPay:     gross - deductions,
	}, nil
}

// RecomputeAmounts re-derives gross and net for a manual correction of a
// stored payroll. Net may go negative when deductions exceed gross.
func RecomputeAmounts(totalHours, hourlyRate, deductions float64) (gross, net float64) {
	gross = totalHours * hourlyRate
	return gross, gross - deductions
}

// SelectProfiles picks the profiles named by ids out of the candidate
// set, reporting ids with no candidate so a bulk run never drops a
// requested profile silently. An empty ids list selects every candidate.
func SelectProfiles(candidates []core.Profile, ids []string) (selected []core.Profile, skipped []string) {
	if len(ids) == 0 {
		return candidates, nil
	}
	byID := make(map[string]core.Profile, len(candidates))
	for _, p := range candidates {
		byID[p.ID] = p
	}
	selected = make([]core.Profile, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			skipped = append(skipped, id)
			continue
		}
		selected = append(selected, p)
	}
	return selected, skipped
}

// ComputeBulk computes one result per profile. Results are independent,
// so profiles are priced concurrently; the deduction policy resolves
// against each profile's gross before the net is fixed.
func ComputeBulk(ctx context.Context, profiles []core.Profile, workingHours []timesheet.WorkingHour, periodStart, periodEnd time.Time, filter Filter, policy DeductionPolicy) ([]Result, error) {
	if periodStart.After(periodEnd) {
		return nil, ErrInvalidPeriod
	}

	results := make([]Result, len(profiles))
	group, _ := errgroup.WithContext(ctx)
	for i, profile := range profiles {
		i, profile := i, profile
		group.Go(func() error {
			result, err := ComputeForProfile(profile, workingHours, periodStart, periodEnd, filter, 0)
			if err != nil {
				return fmt.Errorf("profile %s: %w", profile.ID, err)
			}
			result.Deductions = policy.Resolve(result.GrossPay)
			result.NetPay = result.GrossPay - result.Deductions
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
