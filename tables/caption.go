package tables

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/papertab/model"
)

var (
	captionPattern      = regexp.MustCompile(`^(?i:table|tab\.|tbl\.)\s*(\d+(?:\.\d+)?|[IVXLC]+|[A-Z])\b\s*(.*)$`)
	continuationPattern = regexp.MustCompile(`(?i)\s*\(?\b(?:continued|cont\.|contd\.?)\)?`)
)

const captionSeparators = ".:-–—|"

// ParseCaption recognises a table title line such as "Table 3: Results on
// CIFAR-10.", "Tab. 2 Ablations", "TABLE IV" or "Table 3 (continued)".
// A sentence that merely refers to a table, such as "Table 3 shows ...",
// is not a caption.
func ParseCaption(line string) (model.Caption, bool) {
	m := captionPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return model.Caption{}, false
	}
	number, rest := m[1], strings.TrimSpace(m[2])

	continued := continuationPattern.MatchString(rest)
	if rest != "" && !continued {
		r, _ := utf8.DecodeRuneInString(rest)
		if !strings.ContainsRune(captionSeparators, r) && !unicode.IsUpper(r) {
			return model.Caption{}, false
		}
	}

	desc := continuationPattern.ReplaceAllString(rest, "")
	desc = strings.TrimSpace(strings.TrimLeft(desc, captionSeparators+" "))
	return model.Caption{Number: number, Description: desc, Continued: continued}, true
}
