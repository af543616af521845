package preferences

import (
	"context"
	"sync"
	"testing"

	"github.com/kailas-cloud/learnhub/internal/domain/settings"
)

func TestGet_Defaults(t *testing.T) {
	s := New()
	p, err := s.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != settings.DefaultPreferences() {
		t.Errorf("expected defaults, got %+v", p)
	}
}

func TestUpdate_PerUser(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Update(ctx, "u1", func(p settings.Preferences) settings.Preferences {
		p.DarkMode = true
		return p
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p1, _ := s.Get(ctx, "u1")
	p2, _ := s.Get(ctx, "u2")
	if !p1.DarkMode {
		t.Error("u1 dark mode not stored")
	}
	if p2.DarkMode {
		t.Error("u2 should keep defaults")
	}
}

func TestUpdate_Concurrent(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Update(ctx, "u1", func(p settings.Preferences) settings.Preferences {
				p.AutoPlay = !p.AutoPlay
				return p
			})
		}()
	}
	wg.Wait()

	// 100 toggles from false returns to false
	if p, _ := s.Get(ctx, "u1"); p.AutoPlay {
		t.Error("lost update under concurrency")
	}
}
