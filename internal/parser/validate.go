package parser

import (
	"regexp"
	"strings"

	pkgerrors "github.com/ftcdoctor/logdoctor/pkg/errors"
)

// sniffLines is how many leading lines are inspected for the logcat signature.
const sniffLines = 10

// sniffPattern is looser than the full structural pattern on purpose: it only
// needs to recognize the timestamp/pid-tid/level shape somewhere in a line.
var sniffPattern = regexp.MustCompile(`\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2}\.\d{3}\s+\d+[-\s]\d+.*?[VDIWEF][/\s]`)

// Validate checks whether content plausibly contains logcat output: at least
// one of the first 10 lines must carry the logcat signature. The parser itself
// does not re-check this; it simply degrades to ErrNoRecords when violated.
func Validate(content string) error {
	if strings.TrimSpace(content) == "" {
		return pkgerrors.ErrNotLogcat
	}

	lines := strings.Split(content, "\n")
	if len(lines) > sniffLines {
		lines = lines[:sniffLines]
	}
	for _, line := range lines {
		if sniffPattern.MatchString(line) {
			return nil
		}
	}
	return pkgerrors.ErrNotLogcat
}
