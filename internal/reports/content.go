package reports

import "strings"

// CleanContent turns a stored review body into display text: literal "\n"
// sequences become line breaks, backslashes are dropped and every run of
// four spaces is removed. Clean text passes through unchanged.
func CleanContent(raw string) string {
	cleaned := strings.ReplaceAll(raw, `\n`, "\n")
	cleaned = strings.ReplaceAll(cleaned, `\`, "")
	return strings.ReplaceAll(cleaned, "    ", "")
}
