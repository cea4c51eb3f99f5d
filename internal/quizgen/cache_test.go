package quizgen

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type countingGenerator struct {
	calls int
	qs    []Question
	err   error
}

func (g *countingGenerator) Generate(context.Context, string, string) ([]Question, error) {
	g.calls++
	return g.qs, g.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseRedisURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid-redis", "redis://localhost:6379", false},
		{"valid-with-db", "redis://localhost:6379/2", false},
		{"empty", "", true},
		{"wrong-scheme", "http://localhost:6379", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRedisURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseRedisURL() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCacheKey(t *testing.T) {
	a := cacheKey("Savings", "content", 10)
	if a != cacheKey("Savings", "content", 10) {
		t.Error("cacheKey should be deterministic")
	}
	for _, other := range []string{
		cacheKey("Savings", "content", 5),
		cacheKey("Savings", "other content", 10),
		cacheKey("Budgeting", "content", 10),
	} {
		if other == a {
			t.Errorf("cacheKey collision: %s", other)
		}
	}
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping unreachable host test in short mode")
	}

	_, err := NewRedisClient(t.Context(), "redis://localhost:59999")
	if err == nil {
		t.Fatal("NewRedisClient() should return error for unreachable host")
	}
}

func TestCachedGenerator_FallsThroughWhenRedisDown(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping unreachable host test in short mode")
	}

	client := redis.NewClient(&redis.Options{
		Addr:        "localhost:59999",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	next := &countingGenerator{qs: []Question{validQuestion()}}
	gen := NewCached(next, client, time.Hour, discardLogger())

	for i := 0; i < 2; i++ {
		qs, err := gen.Generate(t.Context(), "Savings", "content")
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		if len(qs) != 1 {
			t.Fatalf("len(questions) = %d, want 1", len(qs))
		}
	}
	if next.calls != 2 {
		t.Errorf("wrapped generator calls = %d, want 2", next.calls)
	}
}

func TestCachedGenerator_Live(t *testing.T) {
	url := os.Getenv("LITERACYHUB_TEST_REDIS_URL")
	if url == "" {
		t.Skip("LITERACYHUB_TEST_REDIS_URL not set")
	}

	client, err := NewRedisClient(t.Context(), url)
	if err != nil {
		t.Fatalf("NewRedisClient() error: %v", err)
	}
	defer client.Close()

	title := "cache-test-" + time.Now().Format(time.RFC3339Nano)
	t.Cleanup(func() {
		client.Del(context.Background(), cacheKey(title, "content", 0))
	})

	next := &countingGenerator{qs: []Question{validQuestion()}}
	gen := NewCached(next, client, time.Minute, discardLogger())

	first, err := gen.Generate(t.Context(), title, "content")
	if err != nil {
		t.Fatalf("first Generate() error: %v", err)
	}
	second, err := gen.Generate(t.Context(), title, "content")
	if err != nil {
		t.Fatalf("second Generate() error: %v", err)
	}

	if next.calls != 1 {
		t.Errorf("wrapped generator calls = %d, want 1", next.calls)
	}
	if second[0].Prompt != first[0].Prompt || second[0].CorrectIndex != first[0].CorrectIndex {
		t.Errorf("cached set = %+v, want %+v", second, first)
	}
}

func TestCachedGenerator_ErrorNotCached(t *testing.T) {
	url := os.Getenv("LITERACYHUB_TEST_REDIS_URL")
	if url == "" {
		t.Skip("LITERACYHUB_TEST_REDIS_URL not set")
	}

	client, err := NewRedisClient(t.Context(), url)
	if err != nil {
		t.Fatalf("NewRedisClient() error: %v", err)
	}
	defer client.Close()

	title := "cache-err-" + time.Now().Format(time.RFC3339Nano)
	next := &countingGenerator{err: ErrNoQuestions}
	gen := NewCached(next, client, time.Minute, discardLogger())

	if _, err := gen.Generate(t.Context(), title, "content"); err == nil {
		t.Fatal("expected error")
	}
	if n, _ := client.Exists(t.Context(), cacheKey(title, "content", 0)).Result(); n != 0 {
		t.Error("failed generation should not be cached")
	}
}
