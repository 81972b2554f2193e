package project

import (
	"strings"
	"time"

	"tableflip.dev/gantt/pkg/timeutil"
)

// SaveMode selects what is being saved, which decides the fallback name.
type SaveMode string

const (
	// SaveProject saves the JSON project document.
	SaveProject SaveMode = "project"
	// SaveImage exports a rendered snapshot.
	SaveImage SaveMode = "image"
)

var unsafeFileChars = strings.NewReplacer(
	`\`, "_", "/", "_", ":", "_", "*", "_", "?", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_",
)

// SuggestFileName derives a file name stem from the project title and the
// save date, e.g. "Roadmap_2023-11-01". The extension is left to the caller.
func SuggestFileName(title string, mode SaveMode, now time.Time) string {
	prefix := strings.TrimSpace(unsafeFileChars.Replace(title))
	if prefix == "" {
		if mode == SaveImage {
			prefix = "gantt_snapshot"
		} else {
			prefix = "gantt_project"
		}
	}
	return prefix + "_" + timeutil.FormatDate(now)
}
