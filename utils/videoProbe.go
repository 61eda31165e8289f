package utils

import (
	"log"
	"os/exec"
	"strconv"
	"strings"
)

// GetVideoDurationMinutes probes a video file with ffprobe and returns its
// duration in minutes. Returns 0 on any failure; callers use the value for
// display aggregation only, never for gating.
func GetVideoDurationMinutes(filePath string) float64 {
	out, err := exec.Command(
		"ffprobe", "-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		filePath,
	).Output()
	if err != nil {
		log.Printf("ffprobe error for %s: %v", filePath, err)
		return 0
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		log.Printf("ffprobe returned unparseable duration for %s: %v", filePath, err)
		return 0
	}

	return seconds / 60
}
