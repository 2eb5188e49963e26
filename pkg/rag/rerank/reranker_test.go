package rerank

import (
	"fmt"
	"testing"

	"cv-insight-be/internal/entity"
	"cv-insight-be/pkg/rag/person"
)

func cand(personName, content string, score float64) *entity.Candidate {
	return &entity.Candidate{
		Chunk: &entity.CVChunk{
			PersonName: personName,
			Content:    content,
		},
		Score: score,
	}
}

func specificCtx(target string) person.QueryContext {
	return person.QueryContext{Mode: person.ModeSpecific, TargetPerson: target}
}

func generalCtx() person.QueryContext {
	return person.QueryContext{Mode: person.ModeGeneral}
}

func TestSpecificModeFiltersOtherPersons(t *testing.T) {
	pool := []*entity.Candidate{
		cand("Juan Pérez", "Juan Pérez tiene certificación en AWS", 0.95),
		cand("María González", "María González tiene certificación en Azure", 0.90),
		cand("Juan Pérez", "Juan Pérez trabajó en Google", 0.85),
		cand("Pedro Sánchez", "Pedro Sánchez tiene certificación en SCRUM", 0.80),
	}

	sel := New().Rerank(specificCtx("juan pérez"), pool)

	if sel.InitialCount != 4 || sel.FilteredCount != 2 {
		t.Errorf("counters = %d/%d, want 4/2", sel.InitialCount, sel.FilteredCount)
	}
	for _, c := range sel.Candidates {
		if person.Normalize(c.Chunk.PersonName) != "juan perez" {
			t.Errorf("candidate from %q leaked through the filter", c.Chunk.PersonName)
		}
	}
}

func TestSpecificModeMatchesDiacriticInsensitive(t *testing.T) {
	pool := []*entity.Candidate{
		cand("JUAN PEREZ", "experiencia laboral en backend", 0.7),
	}

	sel := New().Rerank(specificCtx("juan pérez"), pool)
	if len(sel.Candidates) != 1 {
		t.Fatalf("diacritic variant filtered out, got %d candidates", len(sel.Candidates))
	}
}

func TestSpecificModeDiscardsEmptyContent(t *testing.T) {
	pool := []*entity.Candidate{
		cand("Juan Pérez", "", 0.99),
		cand("Juan Pérez", "   ", 0.98),
		cand("Juan Pérez", "certificaciones de Juan", 0.50),
	}

	sel := New().Rerank(specificCtx("juan pérez"), pool)
	if len(sel.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(sel.Candidates))
	}
	if sel.Candidates[0].Score != 0.50 {
		t.Errorf("wrong survivor: score %v", sel.Candidates[0].Score)
	}
}

func TestSpecificModeBoostReordersMultiPersonPool(t *testing.T) {
	// The second candidate matches both name tokens in metadata and content,
	// so its boost must overcome the raw-score lead of the first.
	pool := []*entity.Candidate{
		cand("Ana Torres", "worked with juan on the perez account", 0.60),
		cand("Juan Pérez", "Juan Pérez: AWS certified", 0.55),
	}

	sel := New().Rerank(specificCtx("juan pérez"), pool)
	if len(sel.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(sel.Candidates))
	}
	if person.Normalize(sel.Candidates[0].Chunk.PersonName) != "juan perez" {
		t.Errorf("boosted candidate not first, got %q", sel.Candidates[0].Chunk.PersonName)
	}
}

func TestSpecificModeSinglePersonPoolKeepsOriginalOrder(t *testing.T) {
	pool := []*entity.Candidate{
		cand("Juan Pérez", "experiencia en Google", 0.70),
		cand("Juan Pérez", "certificación AWS de Juan Pérez", 0.60),
		cand("Juan Pérez", "educación universitaria", 0.80),
	}

	sel := New().Rerank(specificCtx("juan pérez"), pool)

	want := []float64{0.80, 0.70, 0.60}
	for i, c := range sel.Candidates {
		if c.Score != want[i] {
			t.Errorf("position %d has score %v, want %v", i, c.Score, want[i])
		}
	}
}

func TestGeneralModeDiversityGuarantee(t *testing.T) {
	// 30 candidates across 8 persons: the selection must span at least
	// MinPersons distinct persons and stay within TopN, sorted by score.
	var pool []*entity.Candidate
	for p := 0; p < 8; p++ {
		name := fmt.Sprintf("Person %c", 'A'+p)
		for i := 0; i < 4; i++ {
			if len(pool) == 30 {
				break
			}
			pool = append(pool, cand(name, fmt.Sprintf("chunk %d of %s", i, name), float64(100-len(pool))))
		}
	}

	sel := New().Rerank(generalCtx(), pool)

	if len(sel.Candidates) > TopN {
		t.Errorf("selection has %d chunks, max %d", len(sel.Candidates), TopN)
	}
	if sel.DistinctPersons < MinPersons {
		t.Errorf("selection spans %d persons, want >= %d", sel.DistinctPersons, MinPersons)
	}
	for i := 1; i < len(sel.Candidates); i++ {
		if sel.Candidates[i].Score > sel.Candidates[i-1].Score {
			t.Errorf("selection not sorted by score at %d", i)
		}
	}
}

func TestGeneralModeSinglePersonPool(t *testing.T) {
	var pool []*entity.Candidate
	for i := 0; i < 30; i++ {
		pool = append(pool, cand("Ana Silva", fmt.Sprintf("chunk %d", i), float64(i)))
	}

	sel := New().Rerank(generalCtx(), pool)

	if len(sel.Candidates) != TopN {
		t.Fatalf("got %d chunks, want %d", len(sel.Candidates), TopN)
	}
	if sel.DistinctPersons != 1 {
		t.Errorf("distinct persons = %d, want 1", sel.DistinctPersons)
	}
	if sel.Candidates[0].Score != 29 {
		t.Errorf("top chunk score = %v, want 29", sel.Candidates[0].Score)
	}
}

func TestGeneralModeFewerPersonsThanMinimumStillFillsWindow(t *testing.T) {
	// Only 2 distinct persons but plenty of chunks: result is still full-N,
	// reported persons reflect the shortfall instead of failing.
	var pool []*entity.Candidate
	for i := 0; i < 20; i++ {
		pool = append(pool, cand("Ana Silva", fmt.Sprintf("a%d", i), float64(50-i)))
		pool = append(pool, cand("Luis Mora", fmt.Sprintf("b%d", i), float64(40-i)))
	}

	sel := New().Rerank(generalCtx(), pool)

	if len(sel.Candidates) != TopN {
		t.Errorf("got %d chunks, want full window of %d", len(sel.Candidates), TopN)
	}
	if sel.DistinctPersons != 2 {
		t.Errorf("distinct persons = %d, want 2", sel.DistinctPersons)
	}
}

func TestGeneralModeSmallPool(t *testing.T) {
	pool := []*entity.Candidate{
		cand("Ana Silva", "golang developer", 0.9),
		cand("Luis Mora", "python developer", 0.8),
	}

	sel := New().Rerank(generalCtx(), pool)
	if len(sel.Candidates) != 2 {
		t.Errorf("got %d chunks, want 2", len(sel.Candidates))
	}
}

func TestEmptyPoolIsNotAnError(t *testing.T) {
	for _, qc := range []person.QueryContext{specificCtx("juan pérez"), generalCtx()} {
		sel := New().Rerank(qc, nil)
		if len(sel.Candidates) != 0 || sel.InitialCount != 0 || sel.FilteredCount != 0 {
			t.Errorf("empty pool produced non-empty selection: %+v", sel)
		}
	}
}
