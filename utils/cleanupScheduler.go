package utils

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"schoolms/config"
	"schoolms/database"
	"schoolms/models"
)

// logCleanup logs cleanup scheduler events with timestamp
func logCleanup(message string) {
	log.Printf("[CLEANUP-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// InitCleanupScheduler starts the daily orphaned-document sweep. A PDF with
// no matching certificate row can be left behind if the process dies between
// the document write and the row insert.
func InitCleanupScheduler() {
	logCleanup("Initializing document cleanup scheduler...")

	c := cron.New()

	// Run daily at 2 AM
	c.AddFunc("0 2 * * *", func() {
		logCleanup("Running daily orphaned document sweep...")
		SweepOrphanedDocuments()
	})

	c.Start()
	logCleanup("Document cleanup scheduler started - runs daily at 2 AM")
}

// SweepOrphanedDocuments removes certificate PDFs whose number has no row
func SweepOrphanedDocuments() {
	dir := config.AppConfig.CertificateDir

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logCleanup("Error reading certificate directory: " + err.Error())
		}
		return
	}

	var numbers []string
	if err := database.Database.Db.Model(&models.Certificate{}).
		Pluck("certificate_number", &numbers).Error; err != nil {
		logCleanup("Error fetching certificate numbers: " + err.Error())
		return
	}
	known := make(map[string]bool, len(numbers))
	for _, number := range numbers {
		known[number] = true
	}

	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".pdf") {
			continue
		}
		number := strings.TrimSuffix(name, ".pdf")
		if known[number] {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			logCleanup("Error removing orphaned document " + name + ": " + err.Error())
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Printf("[CLEANUP-SCHEDULER] Removed %d orphaned document(s)", removed)
	}
}
