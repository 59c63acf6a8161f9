package locale

import "strings"

// spellout holds the number words of a language.
type spellout struct {
	minus   string
	point   string
	hundred string
	units   map[string]int64 // words below one hundred
	scales  map[string]int64
}

var englishWords = &spellout{
	minus:   "minus",
	point:   "point",
	hundred: "hundred",
	units: map[string]int64{
		"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6, "seven": 7,
		"eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
		"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
		"nineteen": 19, "twenty": 20, "thirty": 30, "forty": 40, "fifty": 50, "sixty": 60,
		"seventy": 70, "eighty": 80, "ninety": 90,
	},
	scales: map[string]int64{
		"thousand": 1e3, "million": 1e6, "billion": 1e9, "trillion": 1e12,
	},
}

// parse reads number words separated by single blanks or hyphens, such as "minus two hundred
// forty-one point five". Only words that contribute to the value count as consumed.
func (w *spellout) parse(span []uint16) (float64, int) {
	var total, current int64
	var frac float64
	fracScale := 0.1
	neg, seen, inFrac := false, false, false
	consumed := 0
	i := 0
words:
	for first := true; ; first = false {
		j := i
		if !first {
			if j >= len(span) || (span[j] != ' ' && span[j] != '-') {
				break
			}
			j++
		}
		word, end := readWord(span, j)
		switch {
		case word == "":
			break words
		case first && word == w.minus:
			neg = true
			i = end
			continue
		case inFrac:
			d, ok := w.units[word]
			if !ok || d > 9 {
				break words
			}
			frac += float64(d) * fracScale
			fracScale /= 10
		case seen && word == w.point:
			inFrac = true
			i = end
			continue
		case seen && word == w.hundred:
			current *= 100
		case seen && w.scales[word] != 0:
			total += current * w.scales[word]
			current = 0
		default:
			v, ok := w.units[word]
			if !ok {
				break words
			}
			current += v
			seen = true
		}
		i = end
		consumed = end
	}
	if !seen {
		return 0, 0
	}
	v := float64(total+current) + frac
	if neg {
		v = -v
	}
	return v, consumed
}

func readWord(span []uint16, i int) (string, int) {
	j := i
	for j < len(span) && isLetter(span[j]) {
		j++
	}
	var sb strings.Builder
	for _, u := range span[i:j] {
		sb.WriteRune(rune(u))
	}
	return strings.ToLower(sb.String()), j
}

func isLetter(u uint16) bool {
	return (u >= 'a' && u <= 'z') || (u >= 'A' && u <= 'Z')
}
