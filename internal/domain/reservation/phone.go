package reservation

import "strings"

// NormalizePhone keeps digits only and rewrites the +972 country prefix to
// the local 0 prefix, so "+972-50-123-4567" and "050 1234567" compare equal.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "972") && len(digits) > 9 {
		digits = "0" + strings.TrimPrefix(digits, "972")
	}
	return digits
}
