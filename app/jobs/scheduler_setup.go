package jobs

import (
	"context"
	"fmt"
	"time"

	"backoffice/app/search"
	"backoffice/core/config"
	"backoffice/core/email"
	"backoffice/core/logger"
	"backoffice/core/scheduler"
)

// SetupScheduler registers all scheduled jobs with the cron scheduler
func SetupScheduler(searchService *search.SearchService, emailSender email.Sender, cfg *config.Config, log logger.Logger) *scheduler.CronScheduler {
	cronScheduler := scheduler.NewCronScheduler(log)

	retentionDays := cfg.HistoryRetentionDays
	pruneTask := &scheduler.CronTask{
		Name:        "search_history_prune",
		Description: "Delete saved searches older than the retention window",
		CronExpr:    "30 3 * * *", // Daily at 03:30
		Handler: func(ctx context.Context) error {
			cutoff := time.Now().AddDate(0, 0, -retentionDays)
			deleted, err := searchService.PruneHistory(cutoff)
			if err != nil {
				return err
			}
			log.Info("pruned search history",
				logger.Int64("deleted", deleted),
				logger.Int("retention_days", retentionDays))
			return nil
		},
		Enabled: retentionDays > 0,
	}
	if err := cronScheduler.RegisterTask(pruneTask); err != nil {
		log.Error("failed to register history prune job", logger.String("error", err.Error()))
	}

	digestTask := &scheduler.CronTask{
		Name:        "search_digest",
		Description: "Email the most frequent saved queries of the past week",
		CronExpr:    "0 8 * * 1", // Mondays at 08:00
		Handler: func(ctx context.Context) error {
			return sendSearchDigest(searchService, emailSender, cfg)
		},
		Enabled: cfg.DigestRecipient != "" && emailSender != nil,
	}
	if err := cronScheduler.RegisterTask(digestTask); err != nil {
		log.Error("failed to register search digest job", logger.String("error", err.Error()))
	}

	return cronScheduler
}

func sendSearchDigest(searchService *search.SearchService, sender email.Sender, cfg *config.Config) error {
	since := time.Now().AddDate(0, 0, -7)
	top, err := searchService.TopQueries(since, 10)
	if err != nil {
		return err
	}
	if len(top) == 0 {
		return nil
	}

	body := "Top saved searches this week:\n\n"
	for i, row := range top {
		body += fmt.Sprintf("%d. %q: %d saves\n", i+1, row.Query, row.Count)
	}

	return sender.Send(&email.Message{
		To:        []string{cfg.DigestRecipient},
		From:      cfg.EmailFromAddress,
		Subject:   "Weekly search digest",
		PlainBody: body,
	})
}
