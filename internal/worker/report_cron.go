package worker

// report_cron.go
// Background goroutine that generates the daily Excel report pack once a day
// at the configured hour and, when SFTP is configured, pushes it to the
// accounting drop. Also ticks a low stock alert job for every active branch.

import (
	"context"
	"time"

	"farmavita/internal/dto"
	"farmavita/internal/infra"
	"farmavita/internal/repository"

	"github.com/rs/zerolog/log"
)

// DailyReporter is the slice of the reporting service the cron needs.
type DailyReporter interface {
	ExportarDiario(ctx context.Context, fecha time.Time, dir string) (string, error)
}

// ReportCronConfig holds all dependencies for the daily report goroutine.
type ReportCronConfig struct {
	Reportes     DailyReporter
	Uploader     *infra.SFTPUploader
	SucursalRepo repository.SucursalRepository
	Dispatcher   *Dispatcher
	OutputDir    string
	UploadHour   int // 0-23, local time
}

// StartReportCron launches the daily report goroutine. It sleeps until the
// next occurrence of UploadHour, runs, then repeats every 24h.
func StartReportCron(ctx context.Context, cfg ReportCronConfig) {
	go func() {
		log.Info().Int("hour", cfg.UploadHour).Msg("report_cron: started")
		for {
			wait := untilNextHour(time.Now(), cfg.UploadHour)
			select {
			case <-ctx.Done():
				log.Info().Msg("report_cron: shutting down")
				return
			case <-time.After(wait):
				runDailyReport(ctx, cfg)
			}
		}
	}()
}

func runDailyReport(ctx context.Context, cfg ReportCronConfig) {
	path, err := cfg.Reportes.ExportarDiario(ctx, time.Now(), cfg.OutputDir)
	if err != nil {
		log.Error().Err(err).Msg("report_cron: export failed")
		return
	}
	log.Info().Str("path", path).Msg("report_cron: daily report generated")

	if cfg.Uploader != nil && cfg.Uploader.Enabled() {
		if err := cfg.Uploader.Upload(path); err != nil {
			log.Error().Err(err).Str("path", path).Msg("report_cron: SFTP upload failed")
		} else {
			log.Info().Str("path", path).Msg("report_cron: report uploaded")
		}
	}

	// One alert scan per active branch rides the same daily tick.
	if cfg.Dispatcher != nil && cfg.SucursalRepo != nil {
		filter := dto.ListFilter{Page: 1, Limit: 100}
		sucursales, _, err := cfg.SucursalRepo.List(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("report_cron: failed to list sucursales for alerts")
			return
		}
		for _, s := range sucursales {
			payload := AlertaJobPayload{SucursalID: s.ID.String()}
			if err := cfg.Dispatcher.EnqueueAlerta(ctx, payload); err != nil {
				log.Warn().Err(err).Str("sucursal", s.Nombre).Msg("report_cron: failed to enqueue alert job")
			}
		}
	}
}

// untilNextHour returns the duration until the next occurrence of hour
// (today if still ahead, otherwise tomorrow).
func untilNextHour(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
