// Package batch reads translation jobs from a text file, one per line.
package batch

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Entry is one line of a batch file
type Entry struct {
	Text string
	// TargetLang overrides the default target language when set
	TargetLang string
}

// langCode matches short language codes such as "zh", "de" or "zh-TW".
var langCode = regexp.MustCompile(`^[A-Za-z]{2,3}(-[A-Za-z]{2,4})?$`)

// ReadBatchFile reads entries from a file
// Supports formats:
// - Text only: "good morning" (translated to the default target)
// - With target: "zh = good morning" (translated to Chinese)
// Blank lines and lines starting with '#' are ignored.
func ReadBatchFile(filename string) ([]Entry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return ParseEntries(string(content)), nil
}

// ParseEntries parses batch file content
func ParseEntries(content string) []Entry {
	var entries []Entry

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry := Entry{Text: line}
		if lang, text, found := strings.Cut(line, "="); found {
			lang = strings.TrimSpace(lang)
			text = strings.TrimSpace(text)
			// Anything else containing '=' is plain text
			if langCode.MatchString(lang) {
				if text == "" {
					continue
				}
				entry = Entry{Text: text, TargetLang: lang}
			}
		}

		entries = append(entries, entry)
	}

	return entries
}
