package rational

import (
	"fmt"
	"math/big"
	"strings"
)

var (
	thousand = big.NewInt(1000)
	two      = big.NewInt(2)
)

// Parse converts a CPL rational string into an exact value. CPL elements use
// the space-separated form ("24000 1001"), RegXML descriptor values the slash
// form ("24000/1001"); a bare integer parses with denominator 1.
func Parse(s string) (*big.Rat, error) {
	fields := strings.Fields(s)
	if len(fields) == 1 && strings.Contains(fields[0], "/") {
		parts := strings.SplitN(fields[0], "/", 2)
		fields = []string{parts[0], parts[1]}
	}

	var numText, denText string
	switch len(fields) {
	case 1:
		numText, denText = fields[0], "1"
	case 2:
		numText, denText = fields[0], fields[1]
	default:
		return nil, fmt.Errorf("rational %q: expected one or two integers", s)
	}

	num, ok := new(big.Int).SetString(numText, 10)
	if !ok {
		return nil, fmt.Errorf("rational %q: invalid numerator", s)
	}
	den, ok := new(big.Int).SetString(denText, 10)
	if !ok {
		return nil, fmt.Errorf("rational %q: invalid denominator", s)
	}
	if den.Sign() == 0 {
		return nil, fmt.Errorf("rational %q: zero denominator", s)
	}

	return new(big.Rat).SetFrac(num, den), nil
}

// Canonical renders a rational in its reduced canonical form: "n/d", or just
// "n" for integral values. This is the form folded into track fingerprints,
// so equivalent spellings ("24000 1001" vs "48000 2002") render identically.
func Canonical(r *big.Rat) string {
	return r.RatString()
}

// Clock renders a duration in seconds as a zero-padded "HH:MM:SS.mmm"
// string, rounded to the nearest millisecond. Negative durations clamp to
// zero.
func Clock(seconds *big.Rat) string {
	if seconds == nil || seconds.Sign() < 0 {
		return "00:00:00.000"
	}

	// Round seconds*1000 to the nearest integer: floor((2*num + den) / (2*den)).
	scaled := new(big.Rat).Mul(seconds, new(big.Rat).SetInt(thousand))
	num := new(big.Int).Mul(scaled.Num(), two)
	num.Add(num, scaled.Denom())
	den := new(big.Int).Mul(scaled.Denom(), two)
	millis := new(big.Int).Div(num, den)

	var rem big.Int
	secs, _ := new(big.Int).DivMod(millis, thousand, &rem)
	ms := rem.Int64()

	sixty := big.NewInt(60)
	var secRem big.Int
	mins, _ := new(big.Int).DivMod(secs, sixty, &secRem)
	var minRem big.Int
	hours, _ := new(big.Int).DivMod(mins, sixty, &minRem)

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours.Int64(), minRem.Int64(), secRem.Int64(), ms)
}
