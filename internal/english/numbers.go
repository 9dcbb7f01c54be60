package english

import "strconv"

var smallNumbers = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tensWords = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

var scales = []struct {
	value uint64
	name  string
}{
	{1_000_000_000, "billion"},
	{1_000_000, "million"},
	{1_000, "thousand"},
}

// numberWords spells a run of ASCII digits as English words. Values of a
// trillion or more are read digit by digit.
func numberWords(digits string) []string {
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || n >= 1_000_000_000_000 {
		out := make([]string, 0, len(digits))
		for _, d := range digits {
			out = append(out, smallNumbers[d-'0'])
		}
		return out
	}
	return cardinal(n)
}

func cardinal(n uint64) []string {
	if n == 0 {
		return []string{smallNumbers[0]}
	}

	var out []string
	for _, s := range scales {
		if n >= s.value {
			out = append(out, belowThousand(n/s.value)...)
			out = append(out, s.name)
			n %= s.value
		}
	}
	return append(out, belowThousand(n)...)
}

func belowThousand(n uint64) []string {
	var out []string
	if n >= 100 {
		out = append(out, smallNumbers[n/100], "hundred")
		n %= 100
	}
	switch {
	case n >= 20:
		out = append(out, tensWords[n/10])
		if n%10 > 0 {
			out = append(out, smallNumbers[n%10])
		}
	case n > 0:
		out = append(out, smallNumbers[n])
	}
	return out
}
