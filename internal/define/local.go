// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package define

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball"

	"github.com/pdiddy/docsight/internal/keywords"
)

// Local derives definitions from the document itself. It never fails.
type Local struct{}

// Define implements Provider. Patterns are only searched in the context
// window around the first occurrence of the word. It tries, in order: a
// definitional sentence ("X is ...", "X refers to ..."), a parenthetical
// gloss, the same patterns around the word's stem, a sentence naming the
// document's domain, and a generic placeholder.
func (Local) Define(_ context.Context, req Request) (Definition, error) {
	word := strings.TrimSpace(req.Word)
	if word == "" {
		return Definition{Text: "A key term used in this document."}, nil
	}

	window := keywords.Window(req.Text, word, contextRadius)
	if def, ok := fromText(window, regexp.QuoteMeta(word), word); ok {
		return Definition{Text: def}, nil
	}

	if stem := stemOf(word); stem != "" {
		window := keywords.Window(req.Text, stem, contextRadius)
		if def, ok := fromText(window, regexp.QuoteMeta(stem)+`[a-z]*`, word); ok {
			return Definition{Text: def}, nil
		}
	}

	if len(req.Domains) > 0 {
		return Definition{Text: fmt.Sprintf("%s is a key concept in %s discussed in this document.", word, req.Domains[0])}, nil
	}
	return Definition{Text: fmt.Sprintf("%s is a key term used in this document.", word)}, nil
}

const definitionalVerbs = `is|are|refers to|means|denotes|describes|is defined as`

// fromText looks for a definition of the word matched by pattern. word is
// the display form used in glosses.
func fromText(text, pattern, word string) (string, bool) {
	if text == "" {
		return "", false
	}

	statement := regexp.MustCompile(`(?i)\b` + pattern + `\b\s+(?:` + definitionalVerbs + `)\s+[^.!?\n]{3,200}`)
	if m := statement.FindString(text); m != "" {
		return sentence(m), true
	}

	after := regexp.MustCompile(`(?i)\b` + pattern + `\b\s*\(([^()\n]{3,120})\)`)
	if m := after.FindStringSubmatch(text); m != nil {
		return sentence(word + ": " + strings.TrimSpace(m[1])), true
	}

	before := regexp.MustCompile(`(?i)([A-Za-z][A-Za-z \-]{2,80})\(\s*` + pattern + `\s*\)`)
	if m := before.FindStringSubmatch(text); m != nil {
		gloss := lastWords(m[1], glossWords(word))
		if gloss != "" {
			return sentence(word + ": " + gloss), true
		}
	}
	return "", false
}

// glossWords is how many words a parenthetical expansion of word is likely
// to span: one per letter for an acronym, otherwise four.
func glossWords(word string) int {
	if word == strings.ToUpper(word) && utf8.RuneCountInString(word) <= 6 {
		return utf8.RuneCountInString(word)
	}
	return 4
}

func lastWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[len(fields)-n:]
	}
	return strings.Join(fields, " ")
}

// stemOf returns the English stem of word when it differs from the word
// and is long enough to match usefully.
func stemOf(word string) string {
	lower := strings.ToLower(word)
	if strings.ContainsAny(lower, " -") {
		return ""
	}
	stem, err := snowball.Stem(lower, "english", true)
	if err != nil || stem == lower || len(stem) < 3 {
		return ""
	}
	return stem
}

// sentence capitalizes s and ends it with a period.
func sentence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ",;: ")
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[size:]
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}
