package catalog

import "strings"

// Words lowercases s and splits it on whitespace, hyphens, underscores and
// common punctuation.
func Words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', '-', '_', ',', '.', '(', ')', '/', ';', ':', '\'':
			return true
		}
		return false
	})
}

// ContainsPhrase reports whether the words of phrase appear consecutively in
// text as whole words. A trailing "s" or "es" on a text word is tolerated so
// "rows" matches "row".
func ContainsPhrase(text, phrase string) bool {
	return containsWords(Words(text), Words(phrase))
}

func containsWords(text, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(text) {
		return false
	}
	for i := 0; i+len(phrase) <= len(text); i++ {
		ok := true
		for j, p := range phrase {
			if !wordEq(text[i+j], p) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func wordEq(word, want string) bool {
	if word == want {
		return true
	}
	return word == want+"s" || word == want+"es"
}

// AnyPhrase returns the first phrase contained in text.
func AnyPhrase(text string, phrases []string) (string, bool) {
	words := Words(text)
	for _, p := range phrases {
		if containsWords(words, Words(p)) {
			return p, true
		}
	}
	return "", false
}
