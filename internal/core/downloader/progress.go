package downloader

import (
	"io"
	"sync"

	"github.com/cheggaaa/pb/v3"
)

const progressTemplate = `{{ string . "prefix" }} {{ counters . }} {{ bar . }} {{ percent . }} | ETA {{ rtime . "%s" }}`

// BarProgress shows overall completion as a terminal progress bar.
type BarProgress struct {
	out io.Writer

	mu  sync.Mutex
	bar *pb.ProgressBar
}

// NewBarProgress creates a progress bar that renders to out.
func NewBarProgress(out io.Writer) *BarProgress {
	return &BarProgress{out: out}
}

// Start begins rendering for total items.
func (b *BarProgress) Start(total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bar := pb.New(total)
	bar.SetTemplateString(progressTemplate)
	bar.Set("prefix", "Downloading")
	bar.SetWriter(b.out)
	b.bar = bar.Start()
}

// Increment marks one more item as processed.
func (b *BarProgress) Increment() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar != nil {
		b.bar.Increment()
	}
}

// Finish stops rendering.
func (b *BarProgress) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar != nil {
		b.bar.Finish()
		b.bar = nil
	}
}

// Current returns the number of processed items.
func (b *BarProgress) Current() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar == nil {
		return 0
	}
	return b.bar.Current()
}
