package payroll

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	floatPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
)

// parseLeadingFloat reads the longest numeric prefix of raw, ignoring leading
// whitespace and any trailing garbage. It returns NaN when there is none.
func parseLeadingFloat(raw string) float64 {
	s := strings.TrimSpace(raw)
	match := floatPrefix.FindString(s)
	if match == "" {
		return math.NaN()
	}
	switch strings.TrimLeft(match, "+-") {
	case "Infinity":
		if strings.HasPrefix(match, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		// Out-of-range exponents still carry a usable ±Inf or 0.
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return value
		}
		return math.NaN()
	}
	return value
}

// ParsePercent normalises a percentage typed with either decimal separator.
// Only the first comma is treated as the decimal point.
func ParsePercent(raw string) float64 {
	return parseLeadingFloat(strings.Replace(raw, ",", ".", 1))
}

// ParseCount reads a whole, non-negative count. Unparseable input is 0.
func ParseCount(raw string) int {
	match := intPrefix.FindString(strings.TrimSpace(raw))
	if match == "" {
		return 0
	}
	value, err := strconv.Atoi(match)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

func ParseTitleTier(raw string) TitleTier {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(TitleSpecialization), "specialization":
		return TitleSpecialization
	case string(TitleMaster), "master":
		return TitleMaster
	case string(TitleDoctorate), "doctorate":
		return TitleDoctorate
	default:
		return TitleNone
	}
}

func ParseFunctionTier(raw string) FunctionTier {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(FunctionManager), "manager":
		return FunctionManager
	case string(FunctionCoordinator), "coordinator":
		return FunctionCoordinator
	default:
		return FunctionNone
	}
}

// ParseUnionType matches a contribution type code case-insensitively.
func ParseUnionType(raw string) (UnionType, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	for _, known := range KnownUnionTypes {
		if normalized == string(known) {
			return known, true
		}
	}
	return "", false
}

func clamp(value, lo, hi float64) float64 {
	if math.IsNaN(value) || value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
