package sse

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"career-coach-go/internal/model"
)

// events 解析响应中的 data: 行
func events(t *testing.T, body string) []model.AnalysisProgress {
	t.Helper()
	var out []model.AnalysisProgress
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev model.AnalysisProgress
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
			t.Fatalf("invalid event %q: %v", line, err)
		}
		out = append(out, ev)
	}
	return out
}

func TestWriter_ProgressOnlyIncreases(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := newWriter(rec, "octocat", time.Hour)
	if err != nil {
		t.Fatalf("newWriter failed: %v", err)
	}
	defer w.Close()

	w.SetAction(10, "Fetching repositories")
	w.SetAction(40, "Sampling repository contents")
	w.SetAction(20, "Detecting technologies")
	w.SendResult(map[string]int{"skillScore": 30})

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}

	evs := events(t, rec.Body.String())
	if len(evs) != 4 {
		t.Fatalf("expected 4 events, got %d", len(evs))
	}
	if evs[2].Overall != 40 || evs[2].CurrentAction != "Detecting technologies" {
		t.Errorf("progress must not decrease, got %+v", evs[2])
	}
	last := evs[3]
	if last.Status != "completed" || last.Overall != 100 || last.Result == nil || last.Username != "octocat" {
		t.Errorf("unexpected final event %+v", last)
	}
}

func TestWriter_SendError(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := newWriter(rec, "ghost", time.Hour)
	if err != nil {
		t.Fatalf("newWriter failed: %v", err)
	}
	w.SetAction(10, "Fetching repositories")
	w.SendError(http.StatusNotFound, "GitHub user not found")
	w.Close()
	w.Close()

	evs := events(t, rec.Body.String())
	last := evs[len(evs)-1]
	if last.Status != "error" || last.ErrorStatus != http.StatusNotFound || last.Error != "GitHub user not found" {
		t.Errorf("unexpected error event %+v", last)
	}
	if last.Overall != 10 {
		t.Errorf("error event should keep progress, got %d", last.Overall)
	}
}

func TestWriter_Heartbeat(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := newWriter(rec, "octocat", 5*time.Millisecond)
	if err != nil {
		t.Fatalf("newWriter failed: %v", err)
	}
	w.SetAction(25, "Sampling repository contents")
	time.Sleep(40 * time.Millisecond)
	w.Close()

	w.mu.Lock()
	body := rec.Body.String()
	w.mu.Unlock()

	var current int
	for _, ev := range events(t, body) {
		if ev.Status == "heartbeat" && ev.Overall == 25 {
			current++
		}
	}
	if current == 0 {
		t.Error("expected a heartbeat carrying the current progress")
	}
}

func TestWriter_CloseStopsWrites(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := newWriter(rec, "octocat", time.Millisecond)
	if err != nil {
		t.Fatalf("newWriter failed: %v", err)
	}
	w.SetAction(10, "Fetching repositories")
	time.Sleep(10 * time.Millisecond)
	w.Close()

	// Close返回后直接读取，不加锁
	before := rec.Body.Len()
	time.Sleep(20 * time.Millisecond)
	w.SendResult("late")
	w.Close()

	if after := rec.Body.Len(); after != before {
		t.Errorf("body grew from %d to %d bytes after Close", before, after)
	}
}

type noFlushWriter struct {
	http.ResponseWriter
}

func TestNewWriter_RequiresFlusher(t *testing.T) {
	_, err := NewWriter(noFlushWriter{httptest.NewRecorder()}, "octocat")
	if err != ErrStreamingUnsupported {
		t.Errorf("expected ErrStreamingUnsupported, got %v", err)
	}
}
