package osched

import "strings"

// ShellQuote wraps s in single quotes for sh, closing and reopening the
// quote around embedded single quotes.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// AppleScriptString returns s as an AppleScript string literal.
func AppleScriptString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// PSString returns s as a single-quoted PowerShell literal, in which only
// the quote itself needs doubling.
func PSString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// xmlEscape escapes text placed inside a plist element.
func xmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;")
	return r.Replace(s)
}
