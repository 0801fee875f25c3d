package ocr

import "regexp"

const (
	FieldAmount = "amount"
	FieldDate   = "date"
	FieldCode   = "code"
)

// RequiredFields lists the fields a proof of payment must yield before it can
// be reconciled, in extraction order.
var RequiredFields = []string{FieldAmount, FieldDate, FieldCode}

// RawExtraction maps a field name to the raw string a pattern captured.
// A field with no matching pattern is simply absent.
type RawExtraction map[string]string

// fieldPatterns is evaluated in slice order per field; the first pattern that
// matches anywhere in the text wins and later ones are not consulted.
var fieldPatterns = map[string][]*regexp.Regexp{
	FieldAmount: {
		regexp.MustCompile(`Ksh\s*([\d,]+\.\d{2})`),
		regexp.MustCompile(`KES\s*([\d,]+\.\d{2})`),
	},
	FieldDate: {
		regexp.MustCompile(`on\s*(\d{1,2}/\d{1,2}/\d{2})\b`),
		regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`),
	},
	FieldCode: {
		regexp.MustCompile(`\b([A-Z0-9]{10})\b`),
	},
}

// ExtractFields runs the pattern table over detected text. It never fails:
// text with nothing recognizable produces an empty extraction.
func ExtractFields(text string) RawExtraction {
	matches := RawExtraction{}
	for _, field := range RequiredFields {
		for _, pattern := range fieldPatterns[field] {
			if m := pattern.FindStringSubmatch(text); m != nil {
				matches[field] = m[1]
				break
			}
		}
	}
	return matches
}

// MissingFields reports which required fields this extraction lacks.
func (r RawExtraction) MissingFields() []string {
	missing := []string{}
	for _, field := range RequiredFields {
		if _, ok := r[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}
