package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"cv-insight-be/pkg/store"
)

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()

	turns, err := repo.GetOrCreate(ctx, "s1")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("new session has %d turns", len(turns))
	}

	if err := repo.AppendTurn(ctx, "s1", "pregunta", "respuesta"); err != nil {
		t.Fatalf("AppendTurn: %v", err)
	}

	turns, _ = repo.GetOrCreate(ctx, "s1")
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Role != store.RoleUser || turns[1].Role != store.RoleAssistant {
		t.Errorf("turn roles wrong: %q, %q", turns[0].Role, turns[1].Role)
	}

	existed, err := repo.Clear(ctx, "s1")
	if err != nil || !existed {
		t.Errorf("Clear existing = (%v, %v), want (true, nil)", existed, err)
	}

	existed, err = repo.Clear(ctx, "s1")
	if err != nil || existed {
		t.Errorf("Clear missing = (%v, %v), want (false, nil)", existed, err)
	}
}

func TestConcurrentAppendsDoNotLoseTurns(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()

	const sessions = 8
	const appendsPerSession = 20

	var wg sync.WaitGroup
	for s := 0; s < sessions; s++ {
		sessionID := fmt.Sprintf("s%d", s)
		for i := 0; i < appendsPerSession; i++ {
			wg.Add(1)
			go func(id string, n int) {
				defer wg.Done()
				if err := repo.AppendTurn(ctx, id, fmt.Sprintf("q%d", n), fmt.Sprintf("a%d", n)); err != nil {
					t.Errorf("AppendTurn(%s): %v", id, err)
				}
			}(sessionID, i)
		}
	}
	wg.Wait()

	for s := 0; s < sessions; s++ {
		turns, err := repo.GetOrCreate(ctx, fmt.Sprintf("s%d", s))
		if err != nil {
			t.Fatalf("GetOrCreate: %v", err)
		}
		if len(turns) != appendsPerSession*2 {
			t.Errorf("session s%d has %d turns, want %d", s, len(turns), appendsPerSession*2)
		}
	}
}
