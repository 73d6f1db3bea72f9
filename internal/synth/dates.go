package synth

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// FormatDOB renders a date of birth using a layout drawn from the weighted
// format table.
func FormatDOB(r *rand.Rand, t time.Time, formats Table[string]) (string, error) {
	layout, err := formats.Pick(r)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// parseDOB recovers year, month and day from free-text date of birth in
// any of the stored encodings. When day and month are both 12 or less the
// slash layouts are ambiguous; day-first wins, which is occasionally wrong
// and deliberately so. Returns false when the text cannot be read back as
// a real calendar date.
func parseDOB(text string) (year, month, day int, ok bool) {
	var sep string
	switch {
	case strings.Contains(text, "-"):
		sep = "-"
	case strings.Contains(text, "/"):
		sep = "/"
	default:
		return 0, 0, 0, false
	}

	parts := strings.Split(text, sep)
	if len(parts) != 3 {
		return 0, 0, 0, false
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, false
		}
		nums[i] = n
	}

	switch {
	case len(parts[0]) == 4: // YYYY sep MM sep DD
		year, month, day = nums[0], nums[1], nums[2]
	case len(parts[2]) == 4:
		if nums[0] <= 12 && nums[1] <= 12 {
			// Ambiguous; assume day-first.
			day, month, year = nums[0], nums[1], nums[2]
		} else if nums[0] <= 12 {
			month, day, year = nums[0], nums[1], nums[2]
		} else {
			day, month, year = nums[0], nums[1], nums[2]
		}
	default:
		return 0, 0, 0, false
	}

	// Reject values that do not survive a calendar round trip (month 13,
	// February 30 and the like).
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

// ReformatDOB rewrites a stored date of birth in a different (still valid)
// encoding, chosen uniformly over the known layouts. Returns the input
// unchanged with ok=false when parsing is ambiguous beyond repair or
// fails outright.
func ReformatDOB(r *rand.Rand, text string, formats Table[string]) (string, bool) {
	year, month, day, ok := parseDOB(text)
	if !ok {
		return text, false
	}

	layouts := make([]string, 0, len(formats))
	for layout := range formats {
		layouts = append(layouts, layout)
	}
	if len(layouts) == 0 {
		return text, false
	}

	layout := layouts[r.Intn(len(layouts))]
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Format(layout), true
}

// yearFromDOB extracts a 4-digit birth year from free-text date of birth,
// trying the dash and slash separated layouts. Empty when no 4-digit year
// is found.
func yearFromDOB(text string) string {
	var sep string
	switch {
	case strings.Contains(text, "-"):
		sep = "-"
	case strings.Contains(text, "/"):
		sep = "/"
	default:
		return ""
	}

	parts := strings.Split(text, sep)
	if len(parts) != 3 {
		return ""
	}
	for _, candidate := range []string{parts[0], parts[2]} {
		if len(candidate) == 4 {
			if _, err := strconv.Atoi(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
