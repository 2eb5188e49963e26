package chunker

import (
	"strings"
	"testing"
)

const sampleCV = `JUAN PÉREZ GÓMEZ
Ingeniero de Software

EXPERIENCIA LABORAL
- Software Developer en TechCorp (2020-2023)
- Junior Developer en StartupXYZ (2018-2020)

EDUCACIÓN
- Ingeniería en Sistemas - Universidad Nacional (2014-2018)
- Diplomado en Big Data - Instituto Tecnológico (2019)

CERTIFICACIONES
- AWS Certified Solutions Architect
- Certified Scrum Master

HABILIDADES
- Python, Java, JavaScript
- AWS, Azure, Docker
`

func TestChunkDetectsSections(t *testing.T) {
	c := New(500, 50)
	chunks := c.Chunk(sampleCV, "Juan Pérez Gómez")

	if len(chunks) == 0 {
		t.Fatal("expected chunks, got none")
	}

	got := make(map[string]bool)
	for _, ch := range chunks {
		got[ch.SectionType] = true
	}

	for _, want := range []string{SectionInfoGeneral, SectionExperiencia, SectionEducacion, SectionCertificaciones, SectionHabilidades} {
		if !got[want] {
			t.Errorf("section %q not detected, got %v", want, got)
		}
	}
}

func TestChunkHeaderPrefix(t *testing.T) {
	c := New(500, 50)
	chunks := c.Chunk(sampleCV, "Juan Pérez Gómez")

	for _, ch := range chunks {
		if !strings.HasPrefix(ch.Text, "CV: Juan Pérez Gómez | SECCIÓN: ") {
			t.Errorf("chunk missing searchable header, got %q", firstLine(ch.Text))
		}
		if !strings.Contains(firstLine(ch.Text), strings.ToUpper(ch.SectionName)) {
			t.Errorf("header %q missing upper-cased section %q", firstLine(ch.Text), ch.SectionName)
		}
	}
}

func TestChunkBodyNeverExceedsMaxSize(t *testing.T) {
	maxSize := 120
	c := New(maxSize, 20)

	long := "EXPERIENCIA\n" + strings.Repeat("worked on backend systems and data pipelines. ", 30)
	chunks := c.Chunk(long, "Ana Silva")

	if len(chunks) < 2 {
		t.Fatalf("expected the section to be split, got %d chunks", len(chunks))
	}
	for i, ch := range chunks {
		if len(ch.Body) > maxSize {
			t.Errorf("chunk %d body is %d chars, max is %d", i, len(ch.Body), maxSize)
		}
		if ch.PartIndex == 0 || ch.PartTotal < 2 {
			t.Errorf("chunk %d missing part index, got %d/%d", i, ch.PartIndex, ch.PartTotal)
		}
	}
}

func TestChunkSplitReconstructsSection(t *testing.T) {
	maxSize, overlap := 100, 20
	c := New(maxSize, overlap)

	section := strings.Repeat("abcdefghij", 35) // 350 chars, forces a split
	chunks := c.Chunk("EXPERIENCIA\n"+section, "Ana Silva")

	// Strip the declared overlap duplication and rebuild the original.
	var rebuilt strings.Builder
	for i, ch := range chunks {
		body := []rune(ch.Body)
		if i == 0 {
			rebuilt.WriteString(string(body))
			continue
		}
		if len(body) > overlap {
			rebuilt.WriteString(string(body[overlap:]))
		}
	}
	if rebuilt.String() != section {
		t.Errorf("reconstructed section differs from original (len %d vs %d)", rebuilt.Len(), len(section))
	}
}

func TestChunkFallbackWithoutHeaders(t *testing.T) {
	c := New(80, 10)
	text := strings.Repeat("plain text with no recognizable structure. ", 10)

	chunks := c.Chunk(text, "Desconocido")
	if len(chunks) == 0 {
		t.Fatal("expected fallback chunks")
	}
	for _, ch := range chunks {
		if ch.SectionType != SectionGeneral {
			t.Errorf("fallback chunk labeled %q, want %q", ch.SectionType, SectionGeneral)
		}
	}
}

func TestChunkEmptyInput(t *testing.T) {
	c := New(500, 50)

	for _, text := range []string{"", "   \n\t\n  "} {
		if chunks := c.Chunk(text, "Nadie"); len(chunks) != 0 {
			t.Errorf("empty input produced %d chunks", len(chunks))
		}
	}
}

func TestChunkSkipsEmptySections(t *testing.T) {
	c := New(500, 50)
	text := "EXPERIENCIA\n\n\nEDUCACIÓN\n- Universidad Nacional\n"

	chunks := c.Chunk(text, "Ana Silva")
	for _, ch := range chunks {
		if ch.SectionType == SectionExperiencia {
			t.Errorf("empty experiencia section produced a chunk: %q", ch.Body)
		}
	}
}

func TestChunkEnglishHeaders(t *testing.T) {
	c := New(500, 50)
	text := "WORK EXPERIENCE\n- Backend engineer at Acme\n\nSKILLS\n- Go, Python\n\nLANGUAGES\n- English, Spanish\n"

	got := map[string]bool{}
	for _, ch := range c.Chunk(text, "John Doe") {
		got[ch.SectionType] = true
	}
	for _, want := range []string{SectionExperiencia, SectionHabilidades, SectionIdiomas} {
		if !got[want] {
			t.Errorf("english header for %q not detected, got %v", want, got)
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
