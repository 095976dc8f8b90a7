package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ProductID is the Senzing product id embedded in every message id.
const ProductID = "5003"

// Message codes. 1xx informational, 2xx warning, 4xx configuration issues,
// 5xx errors. Codes from 900 up are debugging.
const (
	MsgEnter             = 101
	MsgExit              = 102
	MsgVersion           = 103
	MsgSleeping          = 104
	MsgInstalledVersion  = 105
	MsgPackageVersion    = 106
	MsgArchived          = 107
	MsgExtracted         = 108
	MsgCopied            = 109
	MsgDeleted           = 110
	MsgOwnership         = 111
	MsgSleepingForever   = 112
	MsgStillSleeping     = 113
	MsgSentinelWritten   = 114
	MsgAcceptanceTest    = 116
	MsgSentinelRemoved   = 117
	MsgProgress          = 118
	MsgSeeErrors         = 198
	MsgNoVersionFile     = 201
	MsgArchiveFailed     = 202
	MsgExtractFailed     = 203
	MsgCopyFailed        = 204
	MsgOwnershipFailed   = 205
	MsgDeleteFailed      = 206
	MsgBadVersionFile    = 207
	MsgSentinelFailed    = 208
	MsgSentinelRmFailed  = 209
	MsgCompletedWarnings = 210
	MsgBadSubcommand     = 498
	MsgError             = 501
	MsgBadConfiguration  = 502
	MsgTerminated        = 599
)

var templates = map[int]string{
	MsgEnter:             "Enter %s",
	MsgExit:              "Exit %s",
	MsgVersion:           "Version: %s  Updated: %s",
	MsgSleeping:          "Sleeping %d seconds.",
	MsgInstalledVersion:  "Version %s detected in %s.",
	MsgPackageVersion:    "Version %s detected in Senzing package '%s'.",
	MsgArchived:          "Archived %s to %s",
	MsgExtracted:         "%s extracted to %s (%d files, %s)",
	MsgCopied:            "Copied %s to %s (%d files, %s)",
	MsgDeleted:           "Deleted %s",
	MsgOwnership:         "Changed ownership of %d entries under %s to %d:%d",
	MsgSleepingForever:   "Sleeping infinitely.",
	MsgStillSleeping:     "Sleeping infinitely. Slept %s so far.",
	MsgSentinelWritten:   "Wrote installation marker %s",
	MsgAcceptanceTest:    "Docker acceptance test. Nothing to do.",
	MsgSentinelRemoved:   "Removed installation marker %s",
	MsgProgress:          "%s: %d entries processed, last %s",
	MsgSeeErrors:         "For information on warnings and errors, see https://github.com/Senzing/senzing-package#errors",
	MsgNoVersionFile:     "Cannot determine version. %s does not exist.",
	MsgArchiveFailed:     "Cannot archive %s to %s.",
	MsgExtractFailed:     "Cannot extract %s to %s.",
	MsgCopyFailed:        "Cannot copy %s to %s.",
	MsgOwnershipFailed:   "Cannot change ownership under %s.",
	MsgDeleteFailed:      "Cannot delete %s.",
	MsgBadVersionFile:    "Cannot read version from %s.",
	MsgSentinelFailed:    "Cannot write installation marker %s.",
	MsgSentinelRmFailed:  "Cannot remove installation marker %s.",
	MsgCompletedWarnings: "%s completed with warnings.",
	MsgBadSubcommand:     "Bad SENZING_SUBCOMMAND: %s.",
	MsgError:             "Cannot run %s.",
	MsgBadConfiguration:  "Invalid configuration.",
	MsgTerminated:        "Program terminated with error.",
}

// MessageID formats the id for code, e.g. "senzing-50030101I".
func MessageID(code int) string {
	return fmt.Sprintf("senzing-%s%04d%s", ProductID, code, severity(code))
}

// Message renders the template for code with args.
func Message(code int, args ...any) string {
	tmpl, ok := templates[code]
	if !ok {
		return fmt.Sprintf("No message for index %d.", code)
	}
	return fmt.Sprintf(tmpl, args...)
}

func severity(code int) string {
	switch {
	case code < 200:
		return "I"
	case code < 300:
		return "W"
	case code < 900:
		return "E"
	default:
		return "D"
	}
}

// Messages logs catalogued messages. Every entry carries a messageId field
// and the rendered text as its message.
type Messages struct {
	logger *zap.Logger
}

// NewMessages wraps logger.
func NewMessages(logger *zap.Logger) *Messages {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Messages{logger: logger}
}

// With returns a Messages whose entries carry fields.
func (m *Messages) With(fields ...zap.Field) *Messages {
	return &Messages{logger: m.logger.With(fields...)}
}

// Logger returns the underlying logger.
func (m *Messages) Logger() *zap.Logger {
	return m.logger
}

// Info logs an informational message.
func (m *Messages) Info(code int, args ...any) {
	m.log(zapcore.InfoLevel, code, nil, args...)
}

// Debug logs a debugging message.
func (m *Messages) Debug(code int, args ...any) {
	m.log(zapcore.DebugLevel, code, nil, args...)
}

// Warn logs a warning. err may be nil.
func (m *Messages) Warn(code int, err error, args ...any) {
	m.log(zapcore.WarnLevel, code, err, args...)
}

// Error logs an error along with the process return code it leads to.
func (m *Messages) Error(code, returnCode int, err error, args ...any) {
	m.With(zap.Int("returnCode", returnCode)).log(zapcore.ErrorLevel, code, err, args...)
}

func (m *Messages) log(level zapcore.Level, code int, err error, args ...any) {
	ce := m.logger.Check(level, Message(code, args...))
	if ce == nil {
		return
	}
	fields := []zap.Field{zap.String("messageId", MessageID(code))}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	ce.Write(fields...)
}
