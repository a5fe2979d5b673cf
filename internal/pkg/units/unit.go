package units

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxDecimalPlaces is the largest scale whose power of ten still fits in a uint64.
const MaxDecimalPlaces = 19

var (
	// ErrUnitParse is returned when a value does not match the decimal literal grammar.
	ErrUnitParse = errors.New("unit parse error")
	// ErrOverflow is returned when a value does not fit the uint64 integer domain.
	ErrOverflow = errors.New("unit overflow")
)

var maxUint64 = new(big.Int).SetUint64(math.MaxUint64)

// Unit is a non-negative fixed-point decimal: integer + fraction / 10^decimalPlaces.
// The fraction keeps its leading zeros through decimalPlaces, so {1, 45, 4} is 1.0045.
type Unit struct {
	integer       uint64
	fraction      uint64
	decimalPlaces int
}

// pow10 returns 10^decimals as uint64. decimals must be within [0, MaxDecimalPlaces].
func pow10(decimals int) uint64 {
	p := uint64(1)
	for i := 0; i < decimals; i++ {
		p *= 10
	}
	return p
}

// New builds a Unit from its parts, checking that the fraction fits the scale.
func New(integer, fraction uint64, decimalPlaces int) (Unit, error) {
	if decimalPlaces < 0 || decimalPlaces > MaxDecimalPlaces {
		return Unit{}, fmt.Errorf("%w: decimal places %d out of range [0, %d]", ErrOverflow, decimalPlaces, MaxDecimalPlaces)
	}
	if fraction >= pow10(decimalPlaces) {
		return Unit{}, fmt.Errorf("%w: fraction %d does not fit %d decimal places", ErrOverflow, fraction, decimalPlaces)
	}
	return Unit{integer: integer, fraction: fraction, decimalPlaces: decimalPlaces}, nil
}

// Zero returns 0 at the given scale.
func Zero(decimalPlaces int) Unit {
	if decimalPlaces < 0 {
		decimalPlaces = 0
	}
	if decimalPlaces > MaxDecimalPlaces {
		decimalPlaces = MaxDecimalPlaces
	}
	return Unit{decimalPlaces: decimalPlaces}
}

// FromScaledInteger splits an on-chain scaled integer into whole units and fraction
// by division and remainder against 10^decimalPlaces. The split is exact.
// Example: raw=10045, decimalPlaces=4 => 1.0045
func FromScaledInteger(raw *big.Int, decimalPlaces int) (Unit, error) {
	if raw == nil {
		return Unit{}, fmt.Errorf("%w: nil amount", ErrUnitParse)
	}
	if raw.Sign() < 0 {
		return Unit{}, fmt.Errorf("%w: negative amount %s", ErrUnitParse, raw.String())
	}
	if decimalPlaces < 0 || decimalPlaces > MaxDecimalPlaces {
		return Unit{}, fmt.Errorf("%w: decimal places %d out of range [0, %d]", ErrOverflow, decimalPlaces, MaxDecimalPlaces)
	}

	divisor := new(big.Int).SetUint64(pow10(decimalPlaces))
	integer, fraction := new(big.Int).QuoRem(raw, divisor, new(big.Int))
	if integer.Cmp(maxUint64) > 0 {
		return Unit{}, fmt.Errorf("%w: integer part of %s at %d decimals exceeds uint64", ErrOverflow, raw.String(), decimalPlaces)
	}

	return Unit{
		integer:       integer.Uint64(),
		fraction:      fraction.Uint64(),
		decimalPlaces: decimalPlaces,
	}, nil
}

// ParseDecimal parses a literal of the form "<digits>.<digits>".
// The scale is the length of the fractional digit string, so "1.0045" keeps its zeros.
func ParseDecimal(s string) (Unit, error) {
	intPart, fracPart, found := strings.Cut(s, ".")
	if !found {
		return Unit{}, fmt.Errorf("%w: %q has no decimal point", ErrUnitParse, s)
	}
	if intPart == "" || fracPart == "" {
		return Unit{}, fmt.Errorf("%w: %q must have digits on both sides of the decimal point", ErrUnitParse, s)
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return Unit{}, fmt.Errorf("%w: %q contains non-digit characters", ErrUnitParse, s)
	}
	if len(fracPart) > MaxDecimalPlaces {
		return Unit{}, fmt.Errorf("%w: %q has more than %d fractional digits", ErrUnitParse, s, MaxDecimalPlaces)
	}

	integer, err := strconv.ParseUint(intPart, 10, 64)
	if err != nil {
		return Unit{}, fmt.Errorf("%w: integer part of %q: %v", ErrUnitParse, s, err)
	}
	fraction, err := strconv.ParseUint(fracPart, 10, 64)
	if err != nil {
		return Unit{}, fmt.Errorf("%w: fractional part of %q: %v", ErrUnitParse, s, err)
	}

	return Unit{integer: integer, fraction: fraction, decimalPlaces: len(fracPart)}, nil
}

// FromFloat64 converts a float through its shortest decimal representation.
// Whole numbers get a single zero fraction digit: 5 => 5.0.
func FromFloat64(f float64) (Unit, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return Unit{}, fmt.Errorf("%w: %v is not a finite non-negative number", ErrUnitParse, f)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return ParseDecimal(s)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Integer returns the whole-unit part.
func (u Unit) Integer() uint64 { return u.integer }

// Fraction returns the fractional digits as an integer.
func (u Unit) Fraction() uint64 { return u.fraction }

// DecimalPlaces returns the number of digits the fraction represents.
func (u Unit) DecimalPlaces() int { return u.decimalPlaces }

// IsZero reports whether the value is exactly zero.
func (u Unit) IsZero() bool { return u.integer == 0 && u.fraction == 0 }

// Float64 returns integer + fraction / 10^decimalPlaces.
func (u Unit) Float64() float64 {
	return float64(u.integer) + float64(u.fraction)/math.Pow10(u.decimalPlaces)
}

// StringFixed formats the float value with exactly precision fractional digits,
// rounding the way strconv does.
func (u Unit) StringFixed(precision int) string {
	if precision < 0 {
		precision = 0
	}
	return strconv.FormatFloat(u.Float64(), 'f', precision, 64)
}

// String renders "<integer>.<fraction>" with the fraction padded to decimalPlaces digits.
func (u Unit) String() string {
	return fmt.Sprintf("%d.%0*d", u.integer, u.decimalPlaces, u.fraction)
}

// ScaledInteger reassembles integer * 10^decimalPlaces + fraction.
func (u Unit) ScaledInteger() *big.Int {
	raw := new(big.Int).SetUint64(u.integer)
	raw.Mul(raw, new(big.Int).SetUint64(pow10(u.decimalPlaces)))
	return raw.Add(raw, new(big.Int).SetUint64(u.fraction))
}

// Decimal returns the exact value as a decimal.Decimal.
func (u Unit) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(u.ScaledInteger(), -int32(u.decimalPlaces))
}
