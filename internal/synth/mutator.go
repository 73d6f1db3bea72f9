package synth

import "math/rand"

// Adjacent-key substitutions on a QWERTY layout.
var adjacentKeys = map[rune]string{
	'a': "sq", 'b': "vng", 'c': "xvd", 'd': "sfec", 'e': "wrd",
	'f': "dgt", 'g': "fhy", 'h': "gjy", 'i': "uok", 'j': "hkn",
	'k': "jli", 'l': "ko", 'm': "n", 'n': "mb", 'o': "ipk",
	'p': "o", 'q': "wa", 'r': "et", 's': "adz", 't': "rgy",
	'u': "yi", 'v': "cb", 'w': "qes", 'x': "czs", 'y': "thu",
	'z': "xs",
}

const forceMutateAttempts = 5

// Mutate applies one random typo to text with the given probability:
// transpose two adjacent characters, drop one, double one, or substitute
// an adjacent key. The chosen edit is skipped when the text is too short
// for it, in which case the input comes back unchanged.
func Mutate(r *rand.Rand, text string, probability float64) string {
	if r.Float64() > probability || text == "" {
		return text
	}

	runes := []rune(text)
	switch r.Intn(4) {
	case 0: // transpose
		if len(runes) < 2 {
			return text
		}
		pos := r.Intn(len(runes) - 1)
		runes[pos], runes[pos+1] = runes[pos+1], runes[pos]
		return string(runes)

	case 1: // delete
		if len(runes) < 3 {
			return text
		}
		pos := r.Intn(len(runes))
		return string(runes[:pos]) + string(runes[pos+1:])

	case 2: // duplicate
		pos := r.Intn(len(runes))
		return string(runes[:pos+1]) + string(runes[pos:])

	default: // adjacent key
		if len(runes) < 2 {
			return text
		}
		pos := r.Intn(len(runes))
		ch := runes[pos]
		lower := ch
		upper := false
		if ch >= 'A' && ch <= 'Z' {
			lower = ch + ('a' - 'A')
			upper = true
		}
		candidates, ok := adjacentKeys[lower]
		if !ok || candidates == "" {
			return text
		}
		sub := []rune(candidates)[r.Intn(len(candidates))]
		if upper {
			sub -= 'a' - 'A'
		}
		runes[pos] = sub
		return string(runes)
	}
}

// ForceMutate returns a mutated copy guaranteed to differ from the input
// for any non-empty input. It retries random mutations a bounded number
// of times, then falls back to an adjacent transposition and finally to
// appending a filler character.
func ForceMutate(r *rand.Rand, text string) string {
	if text == "" {
		return text
	}

	for i := 0; i < forceMutateAttempts; i++ {
		if mutated := Mutate(r, text, 1.0); mutated != text {
			return mutated
		}
	}

	runes := []rune(text)
	if len(runes) >= 2 {
		pos := r.Intn(len(runes) - 1)
		runes[pos], runes[pos+1] = runes[pos+1], runes[pos]
		if mutated := string(runes); mutated != text {
			return mutated
		}
	}

	return text + "x"
}
