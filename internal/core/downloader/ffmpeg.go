package downloader

import (
	"os/exec"
)

// CheckFFmpeg checks if ffmpeg is installed and available in the system's PATH.
// Audio extraction fails for every item without it.
func CheckFFmpeg() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// CheckYTDLP checks if a yt-dlp binary is available in the system's PATH.
func CheckYTDLP() bool {
	_, err := exec.LookPath("yt-dlp")
	return err == nil
}
