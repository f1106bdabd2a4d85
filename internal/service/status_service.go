package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meridianadvisory/site-backend/internal/platform/media"
	"github.com/meridianadvisory/site-backend/internal/repo/postgres"
	"github.com/meridianadvisory/site-backend/pkg/logger"
)

// Storage estimation constants. Document storage is approximated from row
// counts at a flat 2.5 KB per document, clamped to the nominal 1 GB quota.
const (
	bytesPerDocument    = 2560
	documentQuotaGB     = 1.0
	defaultMediaQuotaGB = 25.0
	defaultMediaUsedGB  = 0.1
	backupFallbackAge   = 2 * time.Hour
)

type StoreUsage struct {
	UsedGB    float64 `json:"used"`
	TotalGB   float64 `json:"total"`
	Percent   float64 `json:"percent"`
	Documents int64   `json:"documents,omitempty"`
	Fallback  bool    `json:"fallback,omitempty"`
}

type DatabaseStatus struct {
	Status string `json:"status"`
}

type BackupStatus struct {
	At       time.Time `json:"at"`
	Fallback bool      `json:"fallback,omitempty"`
}

type StatusReport struct {
	Database DatabaseStatus `json:"database"`
	Storage  struct {
		Documents StoreUsage `json:"firestore"`
		Media     StoreUsage `json:"cloudinary"`
	} `json:"storage"`
	LastBackup BackupStatus `json:"lastBackup"`
}

type StatusService interface {
	Report(ctx context.Context) *StatusReport
}

type statusService struct {
	stats        postgres.ContentStatsRepository
	media        media.UsageClient
	mediaQuotaGB float64
	now          func() time.Time
}

func NewStatusService(stats postgres.ContentStatsRepository, mediaClient media.UsageClient, mediaQuotaGB float64) StatusService {
	if mediaQuotaGB <= 0 {
		mediaQuotaGB = defaultMediaQuotaGB
	}
	return &statusService{
		stats:        stats,
		media:        mediaClient,
		mediaQuotaGB: mediaQuotaGB,
		now:          time.Now,
	}
}

// Report fans out the independent probes. Each probe substitutes its fallback
// on failure, so a down dependency never fails the dashboard or the other
// probes.
func (s *statusService) Report(ctx context.Context) *StatusReport {
	report := &StatusReport{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		report.Database = s.probeDatabase(gctx)
		return nil
	})
	g.Go(func() error {
		report.Storage.Documents = s.probeDocumentStorage(gctx)
		return nil
	})
	g.Go(func() error {
		report.Storage.Media = s.probeMediaStorage(gctx)
		return nil
	})
	g.Go(func() error {
		report.LastBackup = s.probeLastBackup(gctx)
		return nil
	})

	g.Wait()
	return report
}

func (s *statusService) probeDatabase(ctx context.Context) DatabaseStatus {
	if err := s.stats.Ping(ctx); err != nil {
		logger.WarnContext(ctx, "Database probe failed", "error", err)
		return DatabaseStatus{Status: "error"}
	}
	return DatabaseStatus{Status: "connected"}
}

func (s *statusService) probeDocumentStorage(ctx context.Context) StoreUsage {
	counts, err := s.stats.CountDocuments(ctx)
	if err != nil {
		logger.WarnContext(ctx, "Document count probe failed", "error", err)
		return StoreUsage{UsedGB: 0, TotalGB: documentQuotaGB, Fallback: true}
	}

	var total int64
	for _, count := range counts {
		total += count
	}

	usedGB := float64(total*bytesPerDocument) / (1 << 30)
	if usedGB > documentQuotaGB {
		usedGB = documentQuotaGB
	}
	return StoreUsage{
		UsedGB:    usedGB,
		TotalGB:   documentQuotaGB,
		Percent:   usedGB / documentQuotaGB * 100,
		Documents: total,
	}
}

func (s *statusService) probeMediaStorage(ctx context.Context) StoreUsage {
	usage, err := s.media.Usage(ctx)
	if err != nil {
		logger.WarnContext(ctx, "Media usage probe failed", "error", err)
		return StoreUsage{
			UsedGB:   defaultMediaUsedGB,
			TotalGB:  s.mediaQuotaGB,
			Percent:  defaultMediaUsedGB / s.mediaQuotaGB * 100,
			Fallback: true,
		}
	}

	totalGB := s.mediaQuotaGB
	if usage.LimitBytes > 0 {
		totalGB = float64(usage.LimitBytes) / (1 << 30)
	}
	usedGB := float64(usage.UsedBytes) / (1 << 30)
	return StoreUsage{
		UsedGB:  usedGB,
		TotalGB: totalGB,
		Percent: usedGB / totalGB * 100,
	}
}

// probeLastBackup approximates the last backup as the most recent content
// write; nothing here runs real backups.
func (s *statusService) probeLastBackup(ctx context.Context) BackupStatus {
	latest, err := s.stats.LatestUpdate(ctx)
	if err != nil || latest.IsZero() {
		if err != nil {
			logger.WarnContext(ctx, "Last backup probe failed", "error", err)
		}
		return BackupStatus{At: s.now().Add(-backupFallbackAge), Fallback: true}
	}
	return BackupStatus{At: latest}
}
