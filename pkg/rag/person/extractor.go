// FILE: pkg/rag/person/extractor.go
// PURPOSE: Infer the CV subject at ingestion time and the query target at query time

package person

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Unknown is the sentinel subject name used when nothing in the filename or
// the document text looks like a person name.
const Unknown = "Unknown"

// Mode classifies a query as targeting one named person or a population.
type Mode string

const (
	ModeSpecific Mode = "specific"
	ModeGeneral  Mode = "general"
)

// QueryContext is derived per query and never persisted.
type QueryContext struct {
	RawQuery     string
	Mode         Mode
	TargetPerson string // lower-cased, empty in general mode
}

var (
	// Filename tokens that carry no identity information.
	filenameStopwords = map[string]bool{
		"cv": true, "curriculum": true, "currículum": true, "curriculo": true,
		"currículo": true, "vitae": true, "resume": true, "resumé": true,
	}

	// Lines containing these markers are contact/header noise, never a name.
	contactMarkers = []string{"@", "tel", "phone", ":", "http", "www", "+", "|"}

	capitalizedNameRe = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑÜ][a-záéíóúñü]+(?:\s+[A-ZÁÉÍÓÚÑÜ][a-záéíóúñü]+){1,3}$`)
	uppercaseRunRe    = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑÜ][A-ZÁÉÍÓÚÑÜ\s.]{9,59}$`)

	// Collective-search keywords force general mode even when the query
	// also contains something that looks like a name.
	collectiveRe = regexp.MustCompile(`(?i)\b(perfiles|profiles|candidatos|candidates|lista|listado|list|qui[eé]n|qui[eé]nes|who|empleados|employees|personas|people|todos|todas|cu[aá]les|cu[aá]ntos)\b`)

	// Name following a connector word wins over a bare capitalized run.
	connectorNameRe = regexp.MustCompile(`\b(?:de|sobre|tiene|about|of|has|para)\s+([A-ZÁÉÍÓÚÑÜ][a-záéíóúñü]+(?:\s+[A-ZÁÉÍÓÚÑÜ][a-záéíóúñü]+){1,3})`)
	bareNameRe      = regexp.MustCompile(`[A-ZÁÉÍÓÚÑÜ][a-záéíóúñü]+(?:\s+[A-ZÁÉÍÓÚÑÜ][a-záéíóúñü]+){1,3}`)

	separatorRe  = regexp.MustCompile(`[_\-.]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	titleCaser = cases.Title(language.Spanish)
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Normalize lower-cases s and strips combining marks, so "Pérez" and "perez"
// compare equal. Used for every name comparison downstream.
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Tokens returns the normalized words of a person name.
func Tokens(name string) []string {
	return strings.Fields(Normalize(name))
}

// FromDocument infers the CV subject from the filename and the first lines
// of the extracted text. Best effort and deterministic; never fails.
func FromDocument(filename, text string) string {
	cleaned := cleanFilename(filename)
	if len(strings.Fields(cleaned)) >= 2 && len(cleaned) > 5 {
		return titleCaser.String(strings.ToLower(cleaned))
	}

	if name := nameFromText(text); name != "" {
		return name
	}

	if cleaned != "" {
		return titleCaser.String(strings.ToLower(cleaned))
	}
	return Unknown
}

// FromQuery classifies the query and extracts the target person, if any.
// Collective intent always overrides name-pattern matching.
func FromQuery(query string) QueryContext {
	ctx := QueryContext{RawQuery: query, Mode: ModeGeneral}

	if collectiveRe.MatchString(Normalize(query)) {
		return ctx
	}

	if m := connectorNameRe.FindStringSubmatch(query); m != nil {
		ctx.Mode = ModeSpecific
		ctx.TargetPerson = strings.ToLower(m[1])
		return ctx
	}
	if m := bareNameRe.FindString(query); m != "" {
		ctx.Mode = ModeSpecific
		ctx.TargetPerson = strings.ToLower(m)
	}
	return ctx
}

func cleanFilename(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = separatorRe.ReplaceAllString(base, " ")
	base = strings.ToLower(base)
	base = strings.ReplaceAll(base, "hoja de vida", " ")

	var kept []string
	for _, token := range strings.Fields(base) {
		if !filenameStopwords[token] {
			kept = append(kept, token)
		}
	}
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(strings.Join(kept, " ")), " ")
}

// nameFromText scans the first 10 non-empty lines for something that looks
// like a person name: a capitalized 2-4 word sequence or an uppercase run.
func nameFromText(text string) string {
	scanned := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		scanned++
		if scanned > 10 {
			break
		}

		if len(line) < 6 || len(line) > 100 || hasContactMarker(line) {
			continue
		}

		if capitalizedNameRe.MatchString(line) {
			return line
		}
		if uppercaseRunRe.MatchString(line) {
			return titleCaser.String(strings.ToLower(whitespaceRe.ReplaceAllString(line, " ")))
		}
	}
	return ""
}

func hasContactMarker(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range contactMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
