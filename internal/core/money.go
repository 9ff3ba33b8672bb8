// Package core provides money parsing and handling utilities.
//
// Amounts are kept as integer cents. Parsing rounds to the cent using
// half-away-from-zero on the third decimal place, so every stored value and
// every sum of stored values is an exact two-decimal quantity.
package core

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
)

type Money struct {
	Cents int64
}

// MaxAmountCents bounds a single stored amount (ten trillion in currency
// units). Larger magnitudes are treated as unparsable, which keeps report
// sums far from int64 overflow.
const MaxAmountCents int64 = 1_000_000_000_000_000

var maxAmount = big.NewInt(MaxAmountCents)

// ParseAmount converts free-form amount text to cents.
//
// It reads the longest numeric prefix of the trimmed input (sign, digits,
// fraction and exponent are accepted) and ignores any trailing text. A decimal
// comma is accepted when the input has no dot. Input without a numeric prefix,
// or whose magnitude exceeds MaxAmountCents, yields zero.
//
// Examples:
//
//	ParseAmount("12.34")    -> 1234
//	ParseAmount("12,34")    -> 1234
//	ParseAmount("1000.555") -> 100056
//	ParseAmount("-0.005")   -> -1
//	ParseAmount("15 reais") -> 1500
//	ParseAmount("abc")      -> 0
func ParseAmount(s string) Money {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}
	prefix := numericPrefix(s)
	if prefix == "" {
		return Money{}
	}
	r, ok := new(big.Rat).SetString(prefix)
	if !ok {
		return Money{}
	}
	cents, ok := roundToCents(r)
	if !ok {
		return Money{}
	}
	return Money{Cents: cents}
}

// MoneyFromFloat converts a binary float using its shortest decimal form, so
// 1000.555 rounds as the decimal 1000.555 rather than its binary neighbour.
func MoneyFromFloat(f float64) Money {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}
	}
	return ParseAmount(strconv.FormatFloat(f, 'f', -1, 64))
}

// numericPrefix returns the longest prefix of s shaped like
// [+-]digits[.digits][e[+-]digits]. It returns "" when no digit is present.
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 4 {
			return ""
		}
		if exp > 0 {
			end = j
		}
	}
	out := s[:end]
	out = strings.Replace(out, ".e", "e", 1)
	out = strings.Replace(out, ".E", "E", 1)
	out = strings.TrimSuffix(out, ".")
	sign := ""
	if out[0] == '+' || out[0] == '-' {
		sign, out = out[:1], out[1:]
	}
	if out[0] == '.' {
		out = "0" + out
	}
	return sign + out
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// roundToCents multiplies r by 100 and rounds half away from zero.
func roundToCents(r *big.Rat) (int64, bool) {
	scaled := new(big.Rat).Mul(r, big.NewRat(100, 1))
	num := new(big.Int).Abs(scaled.Num())
	den := scaled.Denom()
	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Lsh(rem, 1).Cmp(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if scaled.Sign() < 0 {
		q.Neg(q)
	}
	if q.CmpAbs(maxAmount) > 0 {
		return 0, false
	}
	return q.Int64(), true
}

// Float returns the value as a float64 for display purposes.
// Use cents for calculations.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// String renders the amount with exactly two decimals.
func (m Money) String() string {
	sign := ""
	c := m.Cents
	if c < 0 {
		sign = "-"
	}
	u := uint64(c)
	if c < 0 {
		u = uint64(-(c + 1)) + 1
	}
	return sign + strconv.FormatUint(u/100, 10) + "." + pad2(u%100)
}

func pad2(v uint64) string {
	if v < 10 {
		return "0" + strconv.FormatUint(v, 10)
	}
	return strconv.FormatUint(v, 10)
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }
func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

// MarshalJSON encodes the amount as a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or string.
func (m *Money) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*m = ParseAmount(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*m = ParseAmount(s)
	return nil
}
