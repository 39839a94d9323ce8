package gitscope

import (
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// FileChanges holds the 1-based line numbers touched in one file.
//
// Additions refer to the new file content, Deletions to the old content.
// Only Additions are consulted by the rule engines; Deletions are retained
// for completeness and future scoping features.
type FileChanges struct {
	Additions map[int]struct{}
	Deletions map[int]struct{}
}

func newFileChanges() *FileChanges {
	return &FileChanges{
		Additions: make(map[int]struct{}),
		Deletions: make(map[int]struct{}),
	}
}

// ChangeMap maps repository-relative file paths to their changed lines.
// Built once per run, read-only thereafter. A nil ChangeMap means
// "no scoping: check everything".
//
// A path present with empty sets means the file was part of the diff but
// contributed no parseable added lines; a path absent means the file was
// not part of the diff at all. Callers must keep the distinction.
type ChangeMap map[string]*FileChanges

// ParseChanges extracts a ChangeMap from zero-context unified-diff text.
//
// Each file section contributes an entry keyed by its "before" path (the
// "after" path for newly added files). Hunk bodies are walked with two
// running cursors: an added line records the new cursor, a removed line
// records the old cursor, anything else advances both. File sections with
// no text fragments (binary files, mode-only changes) still yield an entry
// with empty sets.
func ParseChanges(diff string) (ChangeMap, error) {
	files, _, err := gitdiff.Parse(strings.NewReader(diff))
	if err != nil {
		return nil, err
	}

	cm := make(ChangeMap, len(files))
	for _, f := range files {
		path := f.OldName
		if path == "" {
			path = f.NewName
		}
		if path == "" {
			continue
		}

		fc, ok := cm[path]
		if !ok {
			fc = newFileChanges()
			cm[path] = fc
		}

		for _, frag := range f.TextFragments {
			oldLine := int(frag.OldPosition)
			newLine := int(frag.NewPosition)
			for _, ln := range frag.Lines {
				switch ln.Op {
				case gitdiff.OpAdd:
					fc.Additions[newLine] = struct{}{}
					newLine++
				case gitdiff.OpDelete:
					fc.Deletions[oldLine] = struct{}{}
					oldLine++
				default:
					oldLine++
					newLine++
				}
			}
		}
	}

	return cm, nil
}

// Merge unions other into cm, file by file.
func (cm ChangeMap) Merge(other ChangeMap) {
	for path, theirs := range other {
		fc, ok := cm[path]
		if !ok {
			fc = newFileChanges()
			cm[path] = fc
		}
		for n := range theirs.Additions {
			fc.Additions[n] = struct{}{}
		}
		for n := range theirs.Deletions {
			fc.Deletions[n] = struct{}{}
		}
	}
}

// Lookup finds the changes for a candidate path by exact relative-path
// equality or by path-suffix equality, tolerating differing root prefixes
// between the walker and the repository.
func (cm ChangeMap) Lookup(relPath string) (*FileChanges, bool) {
	if cm == nil {
		return nil, false
	}
	if fc, ok := cm[relPath]; ok {
		return fc, true
	}
	for path, fc := range cm {
		if strings.HasSuffix(relPath, "/"+path) || strings.HasSuffix(path, "/"+relPath) {
			return fc, true
		}
	}
	return nil, false
}
