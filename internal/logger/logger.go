package logger

import (
	"io"

	"github.com/fatih/color" // Colored console output, same palette as the rest of the CLI
)

// out receives informational output, errOut receives warnings and errors.
// Both default to fatih/color's colorable stdout/stderr so ANSI codes are
// dropped automatically when the terminal does not support them.
var (
	out    io.Writer = color.Output
	errOut io.Writer = color.Error
)

var (
	info    = color.New(color.FgGreen).FprintfFunc()
	success = color.New(color.FgHiGreen, color.Bold).FprintfFunc()
	warn    = color.New(color.FgHiMagenta).FprintfFunc()
	errorf  = color.New(color.FgRed).FprintfFunc()
	debugf  = color.New(color.FgCyan).FprintfFunc()
)

// debugEnabled gates Debug. Off until Init(true) is called.
var debugEnabled bool

// Init enables or disables debug output. It is called once from the root
// command's PersistentPreRun with the value of the --debug flag.
func Init(enableDebug bool) {
	debugEnabled = enableDebug
}

// SetOutput redirects all log output. Passing nil restores the defaults.
// Tests use it to capture what the CLI prints.
func SetOutput(stdout, stderr io.Writer) {
	if stdout == nil {
		stdout = color.Output
	}
	if stderr == nil {
		stderr = color.Error
	}
	out, errOut = stdout, stderr
}

// Info logs informational messages in green.
func Info(format string, a ...any) {
	info(out, format, a...)
}

// Success logs a completed step in bold bright green.
func Success(format string, a ...any) {
	success(out, format, a...)
}

// Warn logs recoverable problems in bright magenta on stderr.
func Warn(format string, a ...any) {
	warn(errOut, format, a...)
}

// Error logs failures in red on stderr.
func Error(format string, a ...any) {
	errorf(errOut, format, a...)
}

// Debug logs in cyan when debug output is enabled, otherwise it is a no-op.
func Debug(format string, a ...any) {
	if !debugEnabled {
		return
	}
	debugf(out, format, a...)
}
