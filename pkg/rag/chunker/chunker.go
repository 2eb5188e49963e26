// FILE: pkg/rag/chunker/chunker.go
// PURPOSE: Section-aware splitting of extracted CV text into labeled passages

package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"cv-insight-be/pkg/utils"
)

// Closed set of section labels. Anything the header scan cannot classify
// ends up as SectionGeneral (no headers at all) or SectionInfoGeneral
// (text before the first header).
const (
	SectionExperiencia     = "experiencia"
	SectionEducacion       = "educacion"
	SectionCertificaciones = "certificaciones"
	SectionHabilidades     = "habilidades"
	SectionIdiomas         = "idiomas"
	SectionPerfil          = "perfil"
	SectionProyectos       = "proyectos"
	SectionReferencias     = "referencias"
	SectionGeneral         = "general"
	SectionInfoGeneral     = "informacion_general"
)

// Chunk is one labeled passage of a CV. PartIndex/PartTotal are set only
// when a single section had to be split across several windows.
type Chunk struct {
	Text        string // body including the searchable header line
	Body        string // body without the header line
	SectionName string // header line as found in the document
	SectionType string // canonical label from the closed set above
	PartIndex   int    // 1-based, 0 when the section fit in one chunk
	PartTotal   int
}

type sectionPattern struct {
	sectionType string
	re          *regexp.Regexp
}

// Bilingual (Spanish/English) CV section headers. A line has to look like a
// header on its own: the whole line is the title, optionally ending in ':'.
var sectionPatterns = []sectionPattern{
	{SectionExperiencia, regexp.MustCompile(`(?i)^\s*(experiencias?(\s+(laboral(es)?|profesional(es)?))?|work\s+experience|professional\s+experience|employment(\s+history)?|historial\s+laboral)\s*:?\s*$`)},
	{SectionEducacion, regexp.MustCompile(`(?i)^\s*(educaci[oó]n|formaci[oó]n(\s+acad[eé]mica)?|education|academic\s+background|estudios)\s*:?\s*$`)},
	{SectionCertificaciones, regexp.MustCompile(`(?i)^\s*(certificaciones|certificados|certifications?|certificates|licencias|licenses)\s*:?\s*$`)},
	{SectionHabilidades, regexp.MustCompile(`(?i)^\s*(habilidades(\s+t[eé]cnicas)?|competencias|conocimientos(\s+t[eé]cnicos)?|(technical\s+)?skills)\s*:?\s*$`)},
	{SectionIdiomas, regexp.MustCompile(`(?i)^\s*(idiomas?|languages?)\s*:?\s*$`)},
	{SectionPerfil, regexp.MustCompile(`(?i)^\s*(perfil(\s+profesional)?|resumen(\s+profesional)?|objetivo(\s+profesional)?|(professional\s+)?profile|(professional\s+)?summary|objective|about\s+me|acerca\s+de\s+m[ií])\s*:?\s*$`)},
	{SectionProyectos, regexp.MustCompile(`(?i)^\s*(proyectos?(\s+destacados)?|projects?)\s*:?\s*$`)},
	{SectionReferencias, regexp.MustCompile(`(?i)^\s*(referencias?(\s+(personales|laborales))?|references?)\s*:?\s*$`)},
}

// Chunker splits extracted CV text into ordered, labeled chunks.
type Chunker struct {
	maxSize int
	overlap int
}

func New(maxSize, overlap int) *Chunker {
	if maxSize <= 0 {
		maxSize = 1000
	}
	if overlap < 0 || overlap >= maxSize {
		overlap = maxSize / 5
	}
	return &Chunker{maxSize: maxSize, overlap: overlap}
}

type rawSection struct {
	name        string
	sectionType string
	lines       []string
}

// Chunk splits text into labeled passages. The detected person name is
// denormalized into each chunk's first line so plain keyword search can
// match it without metadata filters. Never fails: unclassifiable text falls
// back to fixed-window 'general' chunks, empty sections emit nothing.
func (c *Chunker) Chunk(text, personName string) []Chunk {
	sections := c.scanSections(text)

	if sections == nil {
		return c.fallbackChunks(text, personName)
	}

	var chunks []Chunk
	for _, sec := range sections {
		body := strings.TrimSpace(strings.Join(sec.lines, "\n"))
		if body == "" {
			continue
		}

		if len(body) <= c.maxSize {
			chunks = append(chunks, Chunk{
				Text:        headerLine(personName, sec.name, 0, 0) + body,
				Body:        body,
				SectionName: sec.name,
				SectionType: sec.sectionType,
			})
			continue
		}

		parts := utils.SplitText(body, c.maxSize, c.overlap)
		for i, part := range parts {
			chunks = append(chunks, Chunk{
				Text:        headerLine(personName, sec.name, i+1, len(parts)) + part,
				Body:        part,
				SectionName: sec.name,
				SectionType: sec.sectionType,
				PartIndex:   i + 1,
				PartTotal:   len(parts),
			})
		}
	}

	if len(chunks) == 0 {
		return c.fallbackChunks(text, personName)
	}
	return chunks
}

// scanSections walks the text line by line, opening a new section on every
// header match. Returns nil when no header matched at all.
func (c *Chunker) scanSections(text string) []rawSection {
	current := rawSection{name: SectionInfoGeneral, sectionType: SectionInfoGeneral}
	sections := []rawSection{}
	matched := false

	for _, line := range strings.Split(text, "\n") {
		if sectionType, ok := matchHeader(line); ok {
			matched = true
			sections = append(sections, current)
			current = rawSection{
				name:        strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ":")),
				sectionType: sectionType,
			}
			continue
		}
		current.lines = append(current.lines, line)
	}
	sections = append(sections, current)

	if !matched {
		return nil
	}
	return sections
}

func (c *Chunker) fallbackChunks(text, personName string) []Chunk {
	body := strings.TrimSpace(text)
	if body == "" {
		return nil
	}

	parts := utils.SplitText(body, c.maxSize, c.overlap)
	chunks := make([]Chunk, 0, len(parts))
	for i, part := range parts {
		partIndex, partTotal := 0, 0
		if len(parts) > 1 {
			partIndex, partTotal = i+1, len(parts)
		}
		chunks = append(chunks, Chunk{
			Text:        headerLine(personName, SectionGeneral, partIndex, partTotal) + part,
			Body:        part,
			SectionName: SectionGeneral,
			SectionType: SectionGeneral,
			PartIndex:   partIndex,
			PartTotal:   partTotal,
		})
	}
	return chunks
}

func matchHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}
	for _, p := range sectionPatterns {
		if p.re.MatchString(trimmed) {
			return p.sectionType, true
		}
	}
	return "", false
}

// headerLine builds the searchable prefix embedded into every chunk body.
func headerLine(personName, sectionName string, partIndex, partTotal int) string {
	if partTotal > 1 {
		return fmt.Sprintf("CV: %s | SECCIÓN: %s (parte %d/%d)\n\n", personName, strings.ToUpper(sectionName), partIndex, partTotal)
	}
	return fmt.Sprintf("CV: %s | SECCIÓN: %s\n\n", personName, strings.ToUpper(sectionName))
}
