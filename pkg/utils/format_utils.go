package utils

import "strconv"

// FormatMoney renders a dollar amount the way the mobile clients display it:
// "$" followed by the shortest decimal representation ("$5", "$12.5").
func FormatMoney(amount float64) string {
	return "$" + strconv.FormatFloat(amount, 'f', -1, 64)
}

// FormatPenalty renders a penalty amount for the cancelled-jobs screen.
// Zero-amount penalties display as "No Penalty".
func FormatPenalty(amount float64) string {
	if amount == 0 {
		return "No Penalty"
	}
	return "- " + FormatMoney(amount)
}
