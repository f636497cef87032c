package patterns

import (
	"regexp"
	"strings"
)

// Entity represents a type of personal information that can be detected.
type Entity string

const (
	EntityCreditCard Entity = "credit_card"
	EntitySSN        Entity = "ssn"
	EntityEmail      Entity = "email"
	EntityPhone      Entity = "phone"
)

// EntityPatterns contains the structural regex for each entity type.
// Structural matches must also pass the corresponding validator before they
// count as detections.
var EntityPatterns = map[Entity]*regexp.Regexp{
	EntityCreditCard: regexp.MustCompile(`\b(?:\d[ -]?){13,19}\b`),
	EntitySSN:        regexp.MustCompile(`\b\d{3}[-\s]?\d{2}[-\s]?\d{4}\b`),
	EntityEmail:      regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	EntityPhone:      regexp.MustCompile(`\b(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`),
}

// EntityDetectionOrder fixes evaluation order: longer, more specific number
// shapes first so a card number is never consumed as a phone number.
var EntityDetectionOrder = []Entity{
	EntityCreditCard,
	EntitySSN,
	EntityEmail,
	EntityPhone,
}

// EntityPlaceholders are the typed redaction tokens.
var EntityPlaceholders = map[Entity]string{
	EntityCreditCard: "[CARD]",
	EntitySSN:        "[SSN]",
	EntityEmail:      "[EMAIL]",
	EntityPhone:      "[PHONE]",
}

// EntityValidators reject structural matches that fail semantic checks. A
// failed validation means "not detected", never an error.
var EntityValidators = map[Entity]func(string) bool{
	EntityCreditCard: ValidCreditCard,
	EntitySSN:        ValidSSN,
	EntityEmail:      ValidEmail,
	EntityPhone:      ValidPhone,
}

func digitsOf(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSameDigits(digits string) bool {
	if digits == "" {
		return false
	}
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

// ValidSSN requires exactly nine digits and rejects all-same-digit and
// sequential test numbers.
func ValidSSN(match string) bool {
	digits := digitsOf(match)
	if len(digits) != 9 {
		return false
	}
	if allSameDigits(digits) {
		return false
	}
	if digits == "123456789" || digits == "987654321" {
		return false
	}
	return true
}

// ValidPhone requires at least ten digits and rejects trivial repeats.
func ValidPhone(match string) bool {
	digits := digitsOf(match)
	if len(digits) < 10 {
		return false
	}
	return !allSameDigits(digits)
}

// ValidEmail requires an @ and a dotted domain.
func ValidEmail(match string) bool {
	at := strings.Index(match, "@")
	if at <= 0 || at >= len(match)-1 {
		return false
	}
	domain := match[at+1:]
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// ValidCreditCard accepts sixteen-digit sequences passing the Luhn checksum.
func ValidCreditCard(match string) bool {
	digits := digitsOf(match)
	if len(digits) != 16 {
		return false
	}
	return Luhn(digits)
}

// Luhn runs the standard checksum over a digit string.
func Luhn(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
