package redis

import (
	"context"
	"testing"

	"cv-insight-be/pkg/store"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestRepository(t *testing.T) (*SessionRepository, *miniredis.Miniredis) {
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return &SessionRepository{client: client}, srv
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

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
	if err := repo.AppendTurn(ctx, "s1", "otra pregunta", "otra respuesta"); err != nil {
		t.Fatalf("AppendTurn: %v", err)
	}

	turns, err = repo.GetOrCreate(ctx, "s1")
	if err != nil {
		t.Fatalf("GetOrCreate after append: %v", err)
	}
	if len(turns) != 4 {
		t.Fatalf("got %d turns, want 4", len(turns))
	}
	if turns[0].Role != store.RoleUser || turns[1].Role != store.RoleAssistant {
		t.Errorf("turn roles wrong: %q, %q", turns[0].Role, turns[1].Role)
	}
	if turns[2].Content != "otra pregunta" {
		t.Errorf("turn order lost: %q", turns[2].Content)
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

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	if err := repo.AppendTurn(ctx, "a", "hola", "buenas"); err != nil {
		t.Fatalf("AppendTurn: %v", err)
	}

	turns, err := repo.GetOrCreate(ctx, "b")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("session b sees %d turns from session a", len(turns))
	}
}

func TestCorruptTurnSurfacesError(t *testing.T) {
	ctx := context.Background()
	repo, srv := newTestRepository(t)

	if _, err := srv.RPush(sessionKey("bad"), "not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := repo.GetOrCreate(ctx, "bad"); err == nil {
		t.Fatal("expected error for corrupt turn")
	}
}
