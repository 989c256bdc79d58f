package jobs

import (
	"context"
	"strings"
	"time"

	"juntaai-backend/internal/logger"
)

// SweepStaleUploads deletes receipt objects that no expense references and
// that are older than the configured age. These are the accepted leaks of
// the upload pipeline: bytes were PUT but the expense insert never followed.
func (jr *JobRunner) SweepStaleUploads() {
	jr.runWithRecovery("SweepStaleUploads", func() {
		ctx := context.Background()

		rows, err := jr.db.QueryContext(ctx, `SELECT proof_url FROM expenses WHERE proof_url IS NOT NULL`)
		if err != nil {
			logger.Error("Failed to list proof urls", "error", err)
			return
		}
		defer rows.Close()

		referenced := make(map[string]bool)
		for rows.Next() {
			var u string
			if err := rows.Scan(&u); err != nil {
				logger.Error("Failed to scan proof url", "error", err)
				continue
			}
			referenced[u] = true
		}
		if err := rows.Err(); err != nil {
			logger.Error("Failed reading proof urls", "error", err)
			return
		}

		objects, err := jr.store.ListObjects(ctx)
		if err != nil {
			logger.Error("Failed to list storage objects", "error", err)
			return
		}

		cutoff := time.Now().Add(-time.Duration(jr.config.Scheduler.SweepAgeHours) * time.Hour)
		deleted := 0
		for key, modTime := range objects {
			if modTime.After(cutoff) {
				continue
			}
			if isReferenced(referenced, key) {
				continue
			}
			if err := jr.store.DeleteFile(ctx, key); err != nil {
				logger.Error("Failed to delete stale upload", "key", key, "error", err)
				continue
			}
			deleted++
		}
		logger.Info("Stale upload sweep finished", "scanned", len(objects), "deleted", deleted)
	})
}

// isReferenced matches an object key against stored public URLs by suffix,
// which tolerates public-host changes between signing and sweeping.
func isReferenced(referenced map[string]bool, key string) bool {
	for url := range referenced {
		if strings.HasSuffix(url, key) {
			return true
		}
	}
	return false
}
