package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Song: Live/Remix?", "Song_ Live_Remix_"},
		{"  .hidden. ", "hidden"},
		{"", "unknown"},
		{`a\b|c*d"e`, "a_b_c_d_e"},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.in); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCreateDirIfNotExistsKeepsContents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := CreateDirIfNotExists(dir); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	existing := filepath.Join(dir, "keep.txt")
	if err := os.WriteFile(existing, []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := CreateDirIfNotExists(dir); err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if !FileExists(existing) {
		t.Error("existing file was removed")
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("abcdefgh", 6); got != "abc..." {
		t.Errorf("got %q", got)
	}
	if got := TruncateString("abc", 6); got != "abc" {
		t.Errorf("got %q", got)
	}
}

func TestDownloadStats(t *testing.T) {
	stats := &DownloadStats{}
	stats.RecordSuccess()
	stats.RecordSuccess()
	stats.RecordFailure("bad query")

	if stats.Total() != 3 {
		t.Errorf("expected 3 processed items, got %d", stats.Total())
	}
	if got := stats.Summary(); got != "2 downloaded, 1 failed" {
		t.Errorf("unexpected summary %q", got)
	}
	if len(stats.FailedItems) != 1 || stats.FailedItems[0] != "bad query" {
		t.Errorf("unexpected failed items %v", stats.FailedItems)
	}
}

func TestWarningCollectorBehaviors(t *testing.T) {
	track := Track{Title: "", Artist: "Someone"}

	var immediate bytes.Buffer
	wc := NewWarningCollectorWithWriter(WarningsImmediate, &immediate)
	wc.AddIncompleteTrackWarning(0, track)
	if !strings.Contains(immediate.String(), "missing a title or artist") {
		t.Errorf("immediate warning not printed: %q", immediate.String())
	}

	var summary bytes.Buffer
	wc = NewWarningCollectorWithWriter(WarningsSummary, &summary)
	wc.AddIncompleteTrackWarning(2, track)
	if summary.Len() != 0 {
		t.Errorf("summary behavior printed early: %q", summary.String())
	}
	wc.PrintSummary()
	if !strings.Contains(summary.String(), "Incomplete Track Records (1)") {
		t.Errorf("summary missing section: %q", summary.String())
	}

	var silent bytes.Buffer
	wc = NewWarningCollectorWithWriter(WarningsSilent, &silent)
	wc.AddTagWriteWarning("x.mp3", "boom")
	wc.PrintSummary()
	if wc.HasWarnings() || silent.Len() != 0 {
		t.Error("silent collector should drop warnings")
	}
}

func TestParseWarningBehavior(t *testing.T) {
	if b, err := ParseWarningBehavior(""); err != nil || b != WarningsSummary {
		t.Errorf("empty behavior: got %q, %v", b, err)
	}
	if b, err := ParseWarningBehavior("Immediate"); err != nil || b != WarningsImmediate {
		t.Errorf("got %q, %v", b, err)
	}
	if _, err := ParseWarningBehavior("loud"); err == nil {
		t.Error("expected error for unknown behavior")
	}
}
