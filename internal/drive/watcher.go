package drive

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Watcher polls a Drive folder and ingests the newest stock export whenever
// its modified time advances past the last ingested one.
type Watcher struct {
	ingest     *IngestService
	folderPath string
	interval   time.Duration

	lastModified string
}

func NewWatcher(ingest *IngestService, folderPath string, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Watcher{
		ingest:     ingest,
		folderPath: folderPath,
		interval:   interval,
	}
}

// Run polls until the context is cancelled. The first pass runs immediately.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	latest, err := w.ingest.LatestFile(w.folderPath)
	if err != nil {
		log.Warn().Err(err).Str("folder", w.folderPath).Msg("drive watcher: list failed")
		return
	}
	if latest == nil {
		return
	}
	if w.lastModified != "" && latest.ModifiedTime <= w.lastModified {
		return
	}

	if _, err := w.ingest.IngestFile(ctx, latest.ID, latest.Name); err != nil {
		log.Warn().Err(err).Str("file", latest.Name).Msg("drive watcher: ingest failed")
		return
	}
	w.lastModified = latest.ModifiedTime
}
