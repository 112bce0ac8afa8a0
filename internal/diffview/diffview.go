// Package diffview renders unified diffs between a base text and its edited
// output, for previewing edits before they are written.
package diffview

import (
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/yaklabco/gosmap/internal/ui/pretty"
)

// defaultContext is the number of unchanged lines around each hunk.
const defaultContext = 3

// Diff is a unified diff of one file.
type Diff struct {
	Path      string
	Body      string
	Additions int
	Deletions int
}

// HasChanges reports whether the diff has any hunks.
func (d *Diff) HasChanges() bool {
	return d.Body != ""
}

// Unified diffs original against modified. A context of zero or less
// selects the default.
func Unified(path, original, modified string, context int) (*Diff, error) {
	if context <= 0 {
		context = defaultContext
	}

	body, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(original),
		B:        splitLines(modified),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  context,
	})
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", path, err)
	}

	diff := &Diff{Path: path, Body: body}
	for _, line := range strings.Split(body, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			diff.Additions++
		case strings.HasPrefix(line, "-"):
			diff.Deletions++
		}
	}
	return diff, nil
}

// splitLines splits s keeping line terminators, with a newline added to a
// final unterminated line so the last hunk renders cleanly.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}

// Render writes the diff to out, styling each line by its prefix.
func Render(out io.Writer, diff *Diff, styles *pretty.Styles) error {
	if !diff.HasChanges() {
		return nil
	}

	header := fmt.Sprintf("diff --git a/%s b/%s", diff.Path, diff.Path)
	if _, err := fmt.Fprintln(out, styles.DiffHeader.Render(header)); err != nil {
		return err
	}

	for _, line := range strings.Split(strings.TrimRight(diff.Body, "\n"), "\n") {
		var styled string
		switch {
		case strings.HasPrefix(line, "@@"):
			styled = styles.DiffHunk.Render(line)
		case strings.HasPrefix(line, "+"):
			styled = styles.DiffAdd.Render(line)
		case strings.HasPrefix(line, "-"):
			styled = styles.DiffRemove.Render(line)
		default:
			styled = styles.DiffContext.Render(line)
		}
		if _, err := fmt.Fprintln(out, styled); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%d insertions(+), %d deletions(-)", diff.Additions, diff.Deletions)
	_, err := fmt.Fprintln(out, styles.Dim.Render(summary))
	return err
}
