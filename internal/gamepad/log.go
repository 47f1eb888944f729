package gamepad

import "github.com/kataras/golog"

var logger = golog.Child("[gamepad]")

// SetLogLevel changes the gamepad logger level ("debug", "info", "warn", "error", "disable").
func SetLogLevel(level string) {
	if level == "" {
		return
	}
	logger.SetLevel(level)
}
