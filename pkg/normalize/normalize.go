package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Search normaliza un texto para búsqueda insensible a acentos y mayúsculas:
// descompone (NFD), elimina marcas diacríticas y recompone (NFC).
// "Construções São Pedro" -> "construcoes sao pedro".
func Search(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		// Si la transformación falla se degrada a lowercase simple
		return strings.ToLower(strings.TrimSpace(s))
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Contains indica si needle aparece en haystack tras normalizar ambos.
func Contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Search(haystack), Search(needle))
}
