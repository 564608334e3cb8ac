package shared

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Package-level color printers shared by the console logger and the CLI.
var (
	ColorInfo    = color.New(color.FgCyan)
	ColorSuccess = color.New(color.FgGreen)
	ColorWarning = color.New(color.FgYellow)
	ColorError   = color.New(color.FgRed)
	ColorDebug   = color.New(color.FgMagenta)
)

// InitializeColors disables colored output when stdout is not a terminal.
func InitializeColors() {
	color.NoColor = !IsTTY()
}

// IsTTY reports whether stdout is attached to a terminal.
func IsTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
