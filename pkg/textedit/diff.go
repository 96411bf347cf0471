package textedit

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines around each hunk.
const contextLines = 3

// Unified renders the change from before to after as a unified diff with
// git-style a/ and b/ file headers. It returns "" when the texts are equal.
func Unified(path, before, after string) (string, error) {
	if before == after {
		return "", nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  contextLines,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}
	return diff, nil
}
