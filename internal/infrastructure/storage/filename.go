// Package storage guarda en disco las imágenes subidas con los productos.
package storage

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// asciiFold descompone (NFKD) y descarta todo lo que no sea ASCII: "Café" → "Cafe".
var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
	return r > unicode.MaxASCII
})))

// SecureFilename reduce un nombre de archivo del cliente a uno seguro para el disco:
// sin separadores de ruta, espacios convertidos en "_", solo [A-Za-z0-9_.-] y sin
// "." o "_" al inicio o final. Puede devolver "" (nombre inutilizable).
func SecureFilename(name string) string {
	folded, _, err := transform.String(asciiFold, name)
	if err != nil {
		return ""
	}
	folded = strings.NewReplacer("/", " ", `\`, " ").Replace(folded)
	folded = strings.Join(strings.Fields(folded), "_")
	return strings.Trim(unsafeChars.ReplaceAllString(folded, ""), "._")
}
