package docxwriter

import "strings"

// escapeXML escapes the five reserved XML characters, in the order that
// matters: & first, so the replacement text introduced by the other four
// rules is never itself re-escaped.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
