package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// PriceParserMode selects how a display price becomes a number.
type PriceParserMode int

const (
	// PriceParserLegacy concatenates every digit and multiplies by 100 when
	// the text mentions crore. "₹ 2.5 Cr" becomes 2500.
	PriceParserLegacy PriceParserMode = iota
	// PriceParserDecimal reads the first decimal number instead, so
	// "₹ 2.5 Cr" becomes 250. Units are handled the same way as legacy.
	PriceParserDecimal
)

func (m PriceParserMode) String() string {
	if m == PriceParserDecimal {
		return "decimal"
	}
	return "legacy"
}

// ParsePriceParserMode accepts "legacy" or "decimal". Empty means legacy.
func ParsePriceParserMode(raw string) (PriceParserMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "legacy":
		return PriceParserLegacy, nil
	case "decimal":
		return PriceParserDecimal, nil
	default:
		return PriceParserLegacy, fmt.Errorf("unknown price parser %q", raw)
	}
}

const croreMultiplier = 100

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func mentionsCrore(display string) bool {
	return strings.Contains(strings.ToLower(display), "cr")
}

// ExtractPriceLakhs is the legacy heuristic: every ASCII digit in order,
// read as one integer (no digits reads as 0), times 100 if the text
// contains "cr" in any case. Monthly rents come out at face value.
func ExtractPriceLakhs(display string) float64 {
	var value float64
	for _, r := range display {
		if isDigit(r) {
			value = value*10 + float64(r-'0')
		}
	}
	if mentionsCrore(display) {
		value *= croreMultiplier
	}
	return value
}

// ExtractPrice dispatches on mode.
func ExtractPrice(display string, mode PriceParserMode) float64 {
	if mode == PriceParserDecimal {
		return extractDecimalPrice(display)
	}
	return ExtractPriceLakhs(display)
}

func extractDecimalPrice(display string) float64 {
	runes := []rune(display)
	start := -1
	for i, r := range runes {
		if isDigit(r) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0
	}

	var b strings.Builder
	seenPoint := false
	// ".5 Cr" keeps its point, "Rs.5" does not.
	if start > 0 && runes[start-1] == '.' && (start == 1 || !unicode.IsLetter(runes[start-2])) {
		b.WriteString("0.")
		seenPoint = true
	}
scan:
	for i := start; i < len(runes); i++ {
		r := runes[i]
		switch {
		case isDigit(r):
			b.WriteRune(r)
		case r == ',' && i+1 < len(runes) && isDigit(runes[i+1]):
			// thousands separator
		case r == '.' && !seenPoint && i+1 < len(runes) && isDigit(runes[i+1]):
			seenPoint = true
			b.WriteRune(r)
		default:
			break scan
		}
	}

	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	if mentionsCrore(display) {
		value *= croreMultiplier
	}
	return value
}

// PriceReading describes how the legacy heuristic sees a display price.
type PriceReading struct {
	Lakhs     float64 `json:"lakhs"`
	DigitRuns int     `json:"digitRuns"`
	Crore     bool    `json:"crore"`
	// Ambiguous is set when digit runs are split by anything other than a
	// thousands comma, e.g. "2.5 Cr" or "1-2 Cr", or when "cr" only appears
	// inside another word such as "acres". The legacy value is then not the
	// advertised magnitude.
	Ambiguous bool `json:"ambiguous"`
}

// InspectPrice reports the legacy reading and whether it is trustworthy.
func InspectPrice(display string) PriceReading {
	reading := PriceReading{
		Lakhs: ExtractPriceLakhs(display),
		Crore: mentionsCrore(display),
	}

	inRun := false
	var gap strings.Builder
	for _, r := range display {
		if isDigit(r) {
			if !inRun {
				if reading.DigitRuns > 0 && gap.String() != "," {
					reading.Ambiguous = true
				}
				reading.DigitRuns++
				inRun = true
			}
			continue
		}
		if inRun {
			gap.Reset()
			inRun = false
		}
		gap.WriteRune(r)
	}
	if reading.Crore && strayCrore(display) {
		reading.Ambiguous = true
	}
	return reading
}

// strayCrore reports a word containing "cr" that is not a crore unit.
func strayCrore(display string) bool {
	words := strings.FieldsFunc(strings.ToLower(display), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if !strings.Contains(w, "cr") {
			continue
		}
		switch w {
		case "cr", "crore", "crores":
		default:
			return true
		}
	}
	return false
}
