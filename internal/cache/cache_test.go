package cache

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"
)

type payload struct {
	Username   string `json:"username"`
	SkillScore int    `json:"skillScore"`
}

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if got, err := c.Get(ctx, SourceGitHub, "octocat"); err != nil || got != nil {
		t.Fatalf("expected miss, got %+v, %v", got, err)
	}

	if err := c.Set(ctx, SourceGitHub, "octocat", json.RawMessage(`{"skillScore":30}`), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := c.Get(ctx, SourceGitHub, "octocat")
	if err != nil || got == nil {
		t.Fatalf("expected hit, got %+v, %v", got, err)
	}
	if string(got.Data) != `{"skillScore":30}` || got.Source != SourceGitHub || got.SubjectID != "octocat" {
		t.Errorf("unexpected cached result %+v", got)
	}

	// 不同source互不影响
	if other, _ := c.Get(ctx, SourceLinkedIn, "octocat"); other != nil {
		t.Error("expected sources to be isolated")
	}

	if err := c.Delete(ctx, SourceGitHub, "octocat"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got, _ := c.Get(ctx, SourceGitHub, "octocat"); got != nil {
		t.Error("expected miss after delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Set(ctx, SourceGitHub, "fresh", json.RawMessage(`{}`), time.Hour)
	c.Set(ctx, SourceGitHub, "stale", json.RawMessage(`{}`), time.Minute)

	c.now = func() time.Time { return base.Add(10 * time.Minute) }

	removed, err := c.CleanExpired(ctx)
	if err != nil {
		t.Fatalf("CleanExpired failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed entry, got %d", removed)
	}
	if got, _ := c.Get(ctx, SourceGitHub, "fresh"); got == nil {
		t.Error("expected fresh entry to survive")
	}

	c.now = func() time.Time { return base.Add(2 * time.Hour) }
	if got, _ := c.Get(ctx, SourceGitHub, "fresh"); got != nil {
		t.Error("expected expired entry to be a miss")
	}
}

func TestMemoryCache_ExpiredGetKeepsRefreshedEntry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	c.Set(ctx, SourceGitHub, "octocat", json.RawMessage(`{"v":1}`), time.Minute)

	c.now = func() time.Time { return base.Add(time.Hour) }
	if got, _ := c.Get(ctx, SourceGitHub, "octocat"); got != nil {
		t.Fatal("expected expired entry to be a miss")
	}
	c.Set(ctx, SourceGitHub, "octocat", json.RawMessage(`{"v":2}`), time.Hour)

	for i := 0; i < 3; i++ {
		got, err := c.Get(ctx, SourceGitHub, "octocat")
		if err != nil || got == nil {
			t.Fatalf("expected refreshed entry, got %v, %v", got, err)
		}
		if string(got.Data) != `{"v":2}` {
			t.Errorf("unexpected data %s", got.Data)
		}
	}
}

func TestLookupStore(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var out payload
	hit, err := Lookup(ctx, c, SourceGitHub, "octocat", &out)
	if err != nil || hit {
		t.Fatalf("expected miss, got hit=%v err=%v", hit, err)
	}

	if err := Store(ctx, c, SourceGitHub, "octocat", payload{Username: "octocat", SkillScore: 30}, time.Hour); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	hit, err = Lookup(ctx, c, SourceGitHub, "octocat", &out)
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if out.Username != "octocat" || out.SkillScore != 30 {
		t.Errorf("unexpected payload %+v", out)
	}

	c.Set(ctx, SourceGitHub, "broken", json.RawMessage(`not json`), time.Hour)
	if hit, err := Lookup(ctx, c, SourceGitHub, "broken", &out); err == nil || hit {
		t.Errorf("expected decode error, got hit=%v err=%v", hit, err)
	}
}

func TestSQLiteCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("NewSQLiteCache failed: %v", err)
	}
	defer c.Close()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	if got, err := c.Get(ctx, SourceLinkedIn, "https://www.linkedin.com/in/ada"); err != nil || got != nil {
		t.Fatalf("expected miss, got %+v, %v", got, err)
	}

	if err := c.Set(ctx, SourceLinkedIn, "https://www.linkedin.com/in/ada", json.RawMessage(`{"v":1}`), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	// upsert覆盖旧值
	if err := c.Set(ctx, SourceLinkedIn, "https://www.linkedin.com/in/ada", json.RawMessage(`{"v":2}`), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Set(ctx, SourceGitHub, "stale", json.RawMessage(`{}`), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := c.Get(ctx, SourceLinkedIn, "https://www.linkedin.com/in/ada")
	if err != nil || got == nil {
		t.Fatalf("expected hit, got %+v, %v", got, err)
	}
	if string(got.Data) != `{"v":2}` {
		t.Errorf("expected upserted data, got %s", got.Data)
	}
	if !got.ExpiresAt.Equal(base.Add(time.Hour)) {
		t.Errorf("unexpected expiry %v", got.ExpiresAt)
	}

	c.now = func() time.Time { return base.Add(10 * time.Minute) }
	if got, _ := c.Get(ctx, SourceGitHub, "stale"); got != nil {
		t.Error("expected expired entry to be a miss")
	}

	removed, err := c.CleanExpired(ctx)
	if err != nil {
		t.Fatalf("CleanExpired failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed row, got %d", removed)
	}

	if err := c.Delete(ctx, SourceLinkedIn, "https://www.linkedin.com/in/ada"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got, _ := c.Get(ctx, SourceLinkedIn, "https://www.linkedin.com/in/ada"); got != nil {
		t.Error("expected miss after delete")
	}
}

func TestJanitor(t *testing.T) {
	if _, err := NewJanitor(NewMemoryCache(), "not a schedule"); err == nil {
		t.Error("expected error for invalid schedule")
	}

	c := NewMemoryCache()
	base := time.Now()
	c.now = func() time.Time { return base }
	c.Set(context.Background(), SourceGitHub, "a", json.RawMessage(`{}`), time.Second)
	c.now = func() time.Time { return base.Add(time.Minute) }

	j, err := NewJanitor(c, "@every 1h")
	if err != nil {
		t.Fatalf("NewJanitor failed: %v", err)
	}
	j.Start()
	defer j.Stop()

	removed, err := j.Clean(context.Background())
	if err != nil || removed != 1 {
		t.Errorf("Clean() = %d, %v; want 1, nil", removed, err)
	}
}
