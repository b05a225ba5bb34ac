package config

import "strings"

// SplitStdin tokenizes a blob of input paths piped into dano on stdin. It
// mirrors the three-tier sniffing the original tool used: prefer explicit
// null or newline separators when present (friendliest to `find -print0` and
// `find`), fall back to quoted tokens (friendliest to `ls -Q` style output),
// and only fall back to plain whitespace splitting when neither separator is
// present.
func SplitStdin(blob string) []string {
	if strings.ContainsAny(blob, "\n\x00") {
		return splitNonEmpty(blob, func(r rune) bool { return r == '\n' || r == '\x00' })
	}
	if strings.Contains(blob, "\"") {
		var tokens []string
		for _, field := range strings.Split(blob, "\"") {
			field = strings.TrimSpace(field)
			if field != "" {
				tokens = append(tokens, field)
			}
		}
		return tokens
	}
	return splitNonEmpty(blob, func(r rune) bool { return r == ' ' || r == '\t' })
}

func splitNonEmpty(blob string, isSep func(rune) bool) []string {
	var tokens []string
	for _, field := range strings.FieldsFunc(blob, isSep) {
		if field != "" {
			tokens = append(tokens, field)
		}
	}
	return tokens
}
