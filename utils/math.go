package utils

import "math"

// RoundFloat rounds a float64 to the given number of decimal places. All
// balance arithmetic goes through this with precision 2 so stored amounts
// stay aligned with the decimal(15,2) columns.
func RoundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
