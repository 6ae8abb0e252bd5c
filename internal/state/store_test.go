package state

import (
	"sync"
	"testing"

	"github.com/imyashkale/kmsdash/internal/models"
)

// recordingAppender captures audit lines in memory
type recordingAppender struct {
	mu    sync.Mutex
	lines []string
}

func (a *recordingAppender) Append(line string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lines = append(a.lines, line)
	return nil
}

func (a *recordingAppender) all() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.lines))
	copy(out, a.lines)
	return out
}

// TestStoreInitialSnapshot tests the seeded configuration
func TestStoreInitialSnapshot(t *testing.T) {
	store := New("0.0.0.0", "1688", &recordingAppender{})

	cfg := store.Get()
	if cfg.IP != "0.0.0.0" {
		t.Errorf("Expected initial IP 0.0.0.0, got %q", cfg.IP)
	}
	if cfg.Port != "1688" {
		t.Errorf("Expected initial port 1688, got %q", cfg.Port)
	}
	if cfg.Status != models.StatusUnknown {
		t.Errorf("Expected initial status unknown, got %q", cfg.Status)
	}
	if cfg.DisplayIP == "" {
		t.Errorf("Expected a detected display address, got empty string")
	}
}

// TestStoreSetReadYourWrites tests that an update is visible to the next read
func TestStoreSetReadYourWrites(t *testing.T) {
	audit := &recordingAppender{}
	store := New("0.0.0.0", "1688", audit)

	snapshot := store.Set("192.168.1.10", "1700")
	if snapshot.IP != "192.168.1.10" || snapshot.Port != "1700" {
		t.Errorf("Set returned stale snapshot: %+v", snapshot)
	}

	cfg := store.Get()
	if cfg.IP != "192.168.1.10" || cfg.Port != "1700" {
		t.Errorf("Get after Set returned stale config: %+v", cfg)
	}
}

// TestStoreSetWritesAuditLine tests the audit side effect of every update
func TestStoreSetWritesAuditLine(t *testing.T) {
	audit := &recordingAppender{}
	store := New("0.0.0.0", "1688", audit)

	store.Set("10.1.2.3", "1688")

	lines := audit.all()
	if len(lines) != 1 {
		t.Fatalf("Expected 1 audit line, got %d", len(lines))
	}
	if lines[0] != "Server configuration changed to 10.1.2.3:1688" {
		t.Errorf("Unexpected audit line: %q", lines[0])
	}
}

// TestStoreSetPreservesStatusAndDisplay tests that Set touches only address fields
func TestStoreSetPreservesStatusAndDisplay(t *testing.T) {
	store := New("0.0.0.0", "1688", &recordingAppender{})
	store.SetStatus(models.StatusRunning)
	display := store.Get().DisplayIP

	cfg := store.Set("172.16.0.1", "1690")
	if cfg.Status != models.StatusRunning {
		t.Errorf("Set clobbered status: got %q", cfg.Status)
	}
	if cfg.DisplayIP != display {
		t.Errorf("Set clobbered display address: got %q", cfg.DisplayIP)
	}
}

// TestStoreSetStatusPreservesAddress tests the converse isolation
func TestStoreSetStatusPreservesAddress(t *testing.T) {
	store := New("0.0.0.0", "1688", &recordingAppender{})
	store.Set("10.0.0.9", "1777")

	store.SetStatus(models.StatusStopped)

	cfg := store.Get()
	if cfg.IP != "10.0.0.9" || cfg.Port != "1777" {
		t.Errorf("SetStatus clobbered address fields: %+v", cfg)
	}
	if cfg.Status != models.StatusStopped {
		t.Errorf("Expected status stopped, got %q", cfg.Status)
	}
}

// TestStoreConcurrentSets tests that updates never interleave field-by-field
func TestStoreConcurrentSets(t *testing.T) {
	store := New("0.0.0.0", "1688", &recordingAppender{})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			store.Set("1.2.3.4", "1111")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			store.Set("5.6.7.8", "2222")
		}
	}()
	wg.Wait()

	cfg := store.Get()
	first := cfg.IP == "1.2.3.4" && cfg.Port == "1111"
	second := cfg.IP == "5.6.7.8" && cfg.Port == "2222"
	if !first && !second {
		t.Errorf("Config mixes fields from different updates: %+v", cfg)
	}
}

// TestDetectDisplayIP tests that detection always yields something dialable
func TestDetectDisplayIP(t *testing.T) {
	ip := DetectDisplayIP()
	if ip == "" {
		t.Errorf("Expected a non-empty display address")
	}
	if ip == "0.0.0.0" {
		t.Errorf("Display address must never be the wildcard")
	}
}
