package services

// PenaltyRule maps a minimum notice period, in hours before shift start, to
// the dollar amount charged for cancelling inside that window.
type PenaltyRule struct {
	ThresholdHours float64
	Amount         float64
	Label          string
}

// penaltyRules is ordered by descending threshold; ComputePenalty relies on
// that ordering.
var penaltyRules = []PenaltyRule{
	{ThresholdHours: 48, Amount: 0, Label: "> 48 Hours (No Penalty)"},
	{ThresholdHours: 24, Amount: 5, Label: "> 24 Hours (1st Time)"},
	{ThresholdHours: 12, Amount: 10, Label: "> 12 Hours (2nd Time)"},
	{ThresholdHours: 6, Amount: 15, Label: "> 6 Hours (3rd Time)"},
	{ThresholdHours: 0, Amount: 50, Label: "< 6 Hours (Last Minute)"},
}

// immediateCancellation applies when the shift has already started
// (hoursBeforeStart is negative).
var immediateCancellation = PenaltyRule{Amount: 50, Label: "Immediate Cancellation"}

// ComputePenalty returns the penalty amount and label for a cancellation made
// hoursBeforeStart hours ahead of the shift's start. The value may be
// fractional or negative; the first rule whose threshold does not exceed it
// wins, and nothing matching falls through to immediate cancellation.
func ComputePenalty(hoursBeforeStart float64) (float64, string) {
	for _, rule := range penaltyRules {
		if rule.ThresholdHours <= hoursBeforeStart {
			return rule.Amount, rule.Label
		}
	}
	return immediateCancellation.Amount, immediateCancellation.Label
}
