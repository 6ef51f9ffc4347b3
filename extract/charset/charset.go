// Package charset resolves HTML/XML character-entity escapes that show
// up in PDF content-stream strings and annotation URIs: some producers
// emit "&amp;"-style entities inside literal strings instead of the raw
// character, a habit carried over from their HTML/XML export path.
package charset

import "golang.org/x/net/html"

// Unescape decodes HTML/XML character entities (&amp; &lt; &gt; &quot;
// &apos; &#NN; &#xNN;) in s. Text with no entities is returned
// unchanged.
func Unescape(s string) string {
	return html.UnescapeString(s)
}
