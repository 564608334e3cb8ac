package shared

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// WarningBehavior controls when collected warnings are shown.
type WarningBehavior string

const (
	WarningsImmediate WarningBehavior = "immediate"
	WarningsSummary   WarningBehavior = "summary"
	WarningsSilent    WarningBehavior = "silent"
)

// ParseWarningBehavior validates a configured behavior string.
func ParseWarningBehavior(s string) (WarningBehavior, error) {
	switch b := WarningBehavior(strings.ToLower(strings.TrimSpace(s))); b {
	case WarningsImmediate, WarningsSummary, WarningsSilent:
		return b, nil
	case "":
		return WarningsSummary, nil
	default:
		return "", fmt.Errorf("unknown warning behavior %q (want immediate, summary or silent)", s)
	}
}

// WarningType represents different types of warnings
type WarningType int

const (
	IncompleteTrackWarning WarningType = iota
	TagWriteWarning
)

// Warning represents a single warning with context
type Warning struct {
	Type    WarningType
	Message string
	Context string
	Details string
}

// WarningCollector collects non-fatal warnings during a run.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []Warning
	behavior WarningBehavior
	out      io.Writer
}

// NewWarningCollector creates a new warning collector writing to stdout.
func NewWarningCollector(behavior WarningBehavior) *WarningCollector {
	return NewWarningCollectorWithWriter(behavior, os.Stdout)
}

// NewWarningCollectorWithWriter creates a warning collector writing to out.
func NewWarningCollectorWithWriter(behavior WarningBehavior, out io.Writer) *WarningCollector {
	return &WarningCollector{behavior: behavior, out: out}
}

// AddWarning adds a warning to the collector, printing it right away when the
// behavior is immediate.
func (wc *WarningCollector) AddWarning(warningType WarningType, context, message, details string) {
	if wc.behavior == WarningsSilent {
		return
	}
	w := Warning{Type: warningType, Message: message, Context: context, Details: details}

	wc.mu.Lock()
	defer wc.mu.Unlock()
	wc.warnings = append(wc.warnings, w)
	if wc.behavior == WarningsImmediate {
		ColorWarning.Fprintf(wc.out, "⚠️ %s: %s\n", w.Message, w.Context)
	}
}

// AddIncompleteTrackWarning records a track record missing its title or artist.
func (wc *WarningCollector) AddIncompleteTrackWarning(position int, track Track) {
	context := fmt.Sprintf("#%d %q by %q", position+1, TruncateString(track.Title, 60), TruncateString(track.Artist, 40))
	wc.AddWarning(IncompleteTrackWarning, context, "Track record is missing a title or artist", "")
}

// AddTagWriteWarning records a file whose tags could not be written.
func (wc *WarningCollector) AddTagWriteWarning(path, details string) {
	wc.AddWarning(TagWriteWarning, path, "Could not write tags", details)
}

// HasWarnings returns true if there are any warnings
func (wc *WarningCollector) HasWarnings() bool {
	return wc.GetWarningCount() > 0
}

// GetWarningCount returns the total number of warnings
func (wc *WarningCollector) GetWarningCount() int {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	return len(wc.warnings)
}

// PrintSummary prints grouped warnings when the behavior is summary.
func (wc *WarningCollector) PrintSummary() {
	if wc.behavior != WarningsSummary {
		return
	}

	wc.mu.Lock()
	defer wc.mu.Unlock()
	if len(wc.warnings) == 0 {
		return
	}

	ColorWarning.Fprintf(wc.out, "\n⚠️  Warning Summary (%d warnings):\n", len(wc.warnings))
	ColorWarning.Fprintln(wc.out, strings.Repeat("─", 50))

	grouped := make(map[WarningType][]Warning)
	for _, w := range wc.warnings {
		grouped[w.Type] = append(grouped[w.Type], w)
	}
	types := make([]WarningType, 0, len(grouped))
	for t := range grouped {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	for _, t := range types {
		ColorWarning.Fprintf(wc.out, "\n%s (%d):\n", warningTypeTitle(t), len(grouped[t]))
		for _, w := range grouped[t] {
			if w.Details != "" {
				ColorWarning.Fprintf(wc.out, "  • %s (%s)\n", w.Context, w.Details)
			} else {
				ColorWarning.Fprintf(wc.out, "  • %s\n", w.Context)
			}
		}
	}
}

func warningTypeTitle(t WarningType) string {
	switch t {
	case IncompleteTrackWarning:
		return "Incomplete Track Records"
	case TagWriteWarning:
		return "Tag Write Failures"
	default:
		return "Other Warnings"
	}
}
