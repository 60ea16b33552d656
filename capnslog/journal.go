package capnslog

import (
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
)

// JournalFormatter writes log entries to the systemd journal instead of an
// io.Writer, mapping capnslog's LogLevel onto journal priorities. The
// package name is sent as the SYSLOG_IDENTIFIER journal field rather than
// folded into the message string; the caller depth is not used.
type JournalFormatter struct{}

// NewJournalFormatter returns a Formatter that sends entries to the local
// systemd-journald socket. Callers should check journal.Enabled() first;
// Format silently drops entries when the journal isn't reachable, matching
// journal.Send's own behavior.
func NewJournalFormatter() *JournalFormatter {
	return &JournalFormatter{}
}

func (j *JournalFormatter) Format(pkg string, level LogLevel, depth int, entries ...LogEntry) {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.TrimSuffix(e.LogString(), "\n"))
	}
	vars := map[string]string{
		"SYSLOG_IDENTIFIER": pkg,
	}
	journal.Send(b.String(), journalPriority(level), vars)
}

func journalPriority(l LogLevel) journal.Priority {
	switch l {
	case CRITICAL:
		return journal.PriCrit
	case ERROR:
		return journal.PriErr
	case WARNING:
		return journal.PriWarning
	case NOTICE:
		return journal.PriNotice
	case INFO:
		return journal.PriInfo
	case DEBUG, TRACE:
		return journal.PriDebug
	default:
		return journal.PriInfo
	}
}
