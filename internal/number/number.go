package number

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// MaxSafeInteger is the largest integer exactly representable as an IEEE-754 double.
const MaxSafeInteger = 1<<53 - 1

// IsNumber reports whether value is one of the numeric kinds a decoded document may hold.
func IsNumber(value any) bool {
	_, ok := ToFloat64(value)
	return ok
}

// ToFloat64 converts supported numeric values to float64.
func ToFloat64(value any) (float64, bool) {
	switch current := value.(type) {
	case int:
		return float64(current), true
	case int8:
		return float64(current), true
	case int16:
		return float64(current), true
	case int32:
		return float64(current), true
	case int64:
		return float64(current), true
	case uint:
		return float64(current), true
	case uint8:
		return float64(current), true
	case uint16:
		return float64(current), true
	case uint32:
		return float64(current), true
	case uint64:
		return float64(current), true
	case float32:
		return float64(current), true
	case float64:
		return current, true
	case json.Number:
		parsed, err := current.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// ToInt64 converts integer-valued numbers into int64.
// Floats are accepted only when they carry no fractional part.
func ToInt64(value any) (int64, bool) {
	switch current := value.(type) {
	case int:
		return int64(current), true
	case int8:
		return int64(current), true
	case int16:
		return int64(current), true
	case int32:
		return int64(current), true
	case int64:
		return current, true
	case uint:
		if uint64(current) > math.MaxInt64 {
			return 0, false
		}
		return int64(current), true
	case uint8:
		return int64(current), true
	case uint16:
		return int64(current), true
	case uint32:
		return int64(current), true
	case uint64:
		if current > math.MaxInt64 {
			return 0, false
		}
		return int64(current), true
	case json.Number:
		if i, err := strconv.ParseInt(string(current), 10, 64); err == nil {
			return i, true
		}
		f, err := current.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	case float32:
		return floatToInt64(float64(current))
	case float64:
		return floatToInt64(current)
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// Compare orders two numeric values, returning -1, 0 or +1.
// Integers are compared exactly; any other pairing falls back to float64.
// ok is false when either value is not a number.
func Compare(a, b any) (int, bool) {
	if isIntegral(a) && isIntegral(b) {
		ai, aok := ToInt64(a)
		bi, bok := ToInt64(b)
		if aok && bok {
			return cmpOrdered(ai, bi), true
		}
	}

	af, aok := ToFloat64(a)
	bf, bok := ToFloat64(b)
	if !aok || !bok {
		return 0, false
	}
	return cmpOrdered(af, bf), true
}

func isIntegral(value any) bool {
	switch current := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		return !strings.ContainsAny(string(current), ".eE")
	default:
		return false
	}
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
