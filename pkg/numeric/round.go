package numeric

import "github.com/shopspring/decimal"

// exactExponent is below the smallest float64 exponent, so the conversion
// keeps every binary digit of the value.
const exactExponent = -1074

// Round rounds the exact binary value of v to the given number of decimal
// places, ties to even. 2.675 is stored as 2.67499999... and rounds to 2.67;
// 3.125 is an exact tie and rounds to 3.12.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloatWithExponent(v, exactExponent).RoundBank(places).InexactFloat64()
}
