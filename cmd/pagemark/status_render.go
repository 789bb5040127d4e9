package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"pagemark/internal/api"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 18
	statusIndent     = "  "
)

// renderStatusReport formats the `pagemark status` output. live distinguishes
// a response from the daemon API from the direct-database fallback.
func renderStatusReport(status api.DaemonStatus, live bool, colorize bool) []string {
	lines := renderSectionHeader("Pagemark Status", colorize)

	if live {
		lines = append(lines, renderStatusLine("Daemon", statusOK, fmt.Sprintf("Running (pid %d)", status.PID), colorize))
	} else {
		lines = append(lines, renderStatusLine("Daemon", statusWarn, "Not running", colorize))
	}
	if status.LastError != "" {
		lines = append(lines, renderStatusLine("Last Error", statusError, status.LastError, colorize))
	}

	queueKind := statusOK
	if status.Queue.Failed > 0 {
		queueKind = statusWarn
	}
	queueLine := fmt.Sprintf("%d total, %d pending, %d processing, %d failed",
		status.Queue.Total,
		status.Queue.Pending,
		status.Queue.Processing,
		status.Queue.Failed,
	)
	lines = append(lines, renderStatusLine("Queue", queueKind, queueLine, colorize))
	lines = append(lines, renderStatusLine("Database", statusInfo, status.DatabasePath, colorize))
	lines = append(lines, renderStatusLine("Queue DB", statusInfo, status.QueueDBPath, colorize))
	if status.LockFilePath != "" {
		lines = append(lines, renderStatusLine("Lock File", statusInfo, status.LockFilePath, colorize))
	}
	return lines
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
