// Package diffview parses unified diffs into per-file summaries for
// display, classifying each file as added, deleted, renamed, or
// modified.
package diffview

import (
	"fmt"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"
)

// ChangeKind describes what happened to a file in a diff.
type ChangeKind string

const (
	Added    ChangeKind = "added"
	Deleted  ChangeKind = "deleted"
	Renamed  ChangeKind = "renamed"
	Modified ChangeKind = "modified"
)

// LineKind distinguishes context, added, and removed lines in a hunk.
type LineKind int

const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

// Line is a single line within a hunk, with its diff marker stripped.
type Line struct {
	Kind LineKind
	Text string
}

// Hunk is one contiguous block of changes within a file.
type Hunk struct {
	Header string
	Lines  []Line
}

// FileDiff is the parsed, classified diff of a single file. OldPath and
// NewPath have their a/ and b/ prefixes stripped; an added file has an
// empty OldPath and a deleted file an empty NewPath.
type FileDiff struct {
	OldPath   string
	NewPath   string
	Kind      ChangeKind
	Hunks     []Hunk
	Additions int
	Deletions int
}

// Path returns the file's display path: the new path, falling back to
// the old path for deletions.
func (f FileDiff) Path() string {
	if f.NewPath != "" {
		return f.NewPath
	}
	return f.OldPath
}

// Parse splits a unified diff into per-file summaries.
func Parse(raw string) ([]FileDiff, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	fileDiffs, err := godiff.ParseMultiFileDiff([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}
	if len(fileDiffs) == 0 {
		return nil, fmt.Errorf("no file diffs found in input")
	}

	files := make([]FileDiff, 0, len(fileDiffs))
	for _, fd := range fileDiffs {
		f := FileDiff{
			OldPath: stripPath(fd.OrigName, "a/"),
			NewPath: stripPath(fd.NewName, "b/"),
		}
		f.Kind = classify(f.OldPath, f.NewPath)

		for _, h := range fd.Hunks {
			hunk := Hunk{
				Header: fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OrigStartLine, h.OrigLines, h.NewStartLine, h.NewLines),
			}
			for _, line := range strings.Split(strings.TrimSuffix(string(h.Body), "\n"), "\n") {
				l := Line{Kind: LineContext, Text: line}
				switch {
				case strings.HasPrefix(line, "+"):
					l = Line{Kind: LineAdded, Text: line[1:]}
					f.Additions++
				case strings.HasPrefix(line, "-"):
					l = Line{Kind: LineRemoved, Text: line[1:]}
					f.Deletions++
				case strings.HasPrefix(line, " "):
					l.Text = line[1:]
				}
				hunk.Lines = append(hunk.Lines, l)
			}
			f.Hunks = append(f.Hunks, hunk)
		}

		files = append(files, f)
	}

	return files, nil
}

// stripPath removes the diff prefix and maps /dev/null to the empty
// string.
func stripPath(name, prefix string) string {
	if name == "/dev/null" {
		return ""
	}
	return strings.TrimPrefix(name, prefix)
}

// classify determines a file's change kind from its old and new paths.
// A missing old path is an addition, a missing new path a deletion,
// differing paths a rename, and matching paths a modification.
func classify(oldPath, newPath string) ChangeKind {
	switch {
	case oldPath == "" && newPath != "":
		return Added
	case oldPath != "" && newPath == "":
		return Deleted
	case oldPath != newPath:
		return Renamed
	default:
		return Modified
	}
}
