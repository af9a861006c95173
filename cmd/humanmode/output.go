package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[2m"
	colorBold   = "\033[1m"
)

func colorize(color, text string) string {
	if noColor {
		return text
	}
	return color + text + colorReset
}

func printSuccess(format string, args ...any) {
	fmt.Fprintln(os.Stderr, colorize(colorGreen, "✓ "+fmt.Sprintf(format, args...)))
}

func printError(format string, args ...any) {
	fmt.Fprintln(os.Stderr, colorize(colorRed, "✗ "+fmt.Sprintf(format, args...)))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(os.Stderr, colorize(colorYellow, "⚠ "+fmt.Sprintf(format, args...)))
}

func printStatus(label string, format string, args ...any) {
	fprintStatus(os.Stderr, label, format, args...)
}

func fprintStatus(w io.Writer, label string, format string, args ...any) {
	l := colorize(colorBold, label+":")
	fmt.Fprintf(w, "  %s %s\n", l, fmt.Sprintf(format, args...))
}

func printStep(format string, args ...any) {
	fmt.Fprintln(os.Stderr, colorize(colorCyan, "→ "+fmt.Sprintf(format, args...)))
}

const barWidth = 30

// progressBar renders pct (0-100) as a fixed-width bar.
func progressBar(pct int) string {
	pct = max(0, min(pct, 100))
	filled := pct * barWidth / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

// printSection writes a bold heading followed by an indented body.
func printSection(w io.Writer, title, body string) {
	fmt.Fprintln(w, colorize(colorBold, title))
	for _, line := range strings.Split(wrap(body, 76), "\n") {
		fmt.Fprintln(w, "  "+line)
	}
}

func printList(w io.Writer, title, marker string, items []string) {
	fmt.Fprintln(w, colorize(colorBold, title))
	for _, it := range items {
		fmt.Fprintf(w, "  %s %s\n", marker, it)
	}
}

// wrap breaks text on spaces so that no line exceeds width runes, except
// for single words longer than width.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		n := len([]rune(word))
		if i > 0 && lineLen+1+n > width {
			b.WriteByte('\n')
			lineLen = 0
		} else if i > 0 {
			b.WriteByte(' ')
			lineLen++
		}
		b.WriteString(word)
		lineLen += n
	}
	return b.String()
}
