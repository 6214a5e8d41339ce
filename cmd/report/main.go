package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"echospell/internal/config"
	"echospell/internal/progress"
	"echospell/internal/service"
)

func main() {
	to := flag.String("to", "", "Recipient email address (default: REPORT_TO_EMAIL)")
	language := flag.String("language", "en", "Language dimension to report on")
	days := flag.Int("days", 0, "Days to include (default: RECENT_DAYS)")
	dryRun := flag.Bool("dry-run", false, "Print the report instead of sending it")
	flag.Parse()

	cfg := config.Load()

	if *to == "" {
		*to = cfg.ReportToEmail
	}
	if *days == 0 {
		*days = cfg.RecentDays
	}

	store := progress.NewFileStore(cfg.ProgressPath, cfg.StreakLookbackDays)
	if err := store.Check(); err != nil {
		log.Fatalf("Cannot read progress file: %v", err)
	}

	ctx := context.Background()
	reports, err := service.NewReportService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, store)
	if err != nil {
		log.Fatalf("Failed to initialize report service: %v", err)
	}

	if *dryRun {
		subject, _, textBody, err := reports.BuildWeeklyReport(time.Now(), *language, *days)
		if err != nil {
			log.Fatalf("Failed to build report: %v", err)
		}
		fmt.Printf("Subject: %s\n\n%s", subject, textBody)
		return
	}

	if *to == "" {
		fmt.Println("Error: no recipient; pass -to or set REPORT_TO_EMAIL")
		os.Exit(1)
	}

	if err := reports.SendWeeklyReport(ctx, *to, *language, *days); err != nil {
		log.Fatalf("Failed to send report: %v", err)
	}

	log.Printf("Weekly report sent to %s", *to)
}
