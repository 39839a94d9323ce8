// Package gitscope resolves the change scope for a run: which files and
// which line numbers were touched by the revision under check.
package gitscope

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Querier is the version-control query capability the extractor and the
// resolver depend on. Client implements it with the git CLI; tests inject
// fakes.
type Querier interface {
	// Diff returns unified-diff text between two revisions with zero
	// context lines.
	Diff(ctx context.Context, base, head string) (string, error)

	// ChangedFiles lists the paths changed by a single revision.
	ChangedFiles(ctx context.Context, rev string) ([]string, error)

	// DiffFile returns zero-context diff text for one path between a
	// revision and its prior state.
	DiffFile(ctx context.Context, rev, path string) (string, error)

	// FirstParent resolves the first parent of a revision.
	FirstParent(ctx context.Context, rev string) (string, error)

	// VerifyRef resolves a reference to a commit hash, failing if it does
	// not exist.
	VerifyRef(ctx context.Context, ref string) (string, error)

	// MergeBase returns the merge base of two revisions.
	MergeBase(ctx context.Context, a, b string) (string, error)
}

// Client runs git commands in a working directory.
//
// Client is safe for concurrent use.
type Client struct {
	dir string
}

// NewClient creates a Client for the given working directory (repo root).
func NewClient(dir string) *Client {
	return &Client{dir: dir}
}

// IsRepo reports whether the working directory is inside a git repository.
func (c *Client) IsRepo(ctx context.Context) bool {
	_, err := c.run(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// Diff implements Querier.
func (c *Client) Diff(ctx context.Context, base, head string) (string, error) {
	return c.run(ctx, "diff", "-U0", base, head)
}

// ChangedFiles implements Querier using git show --name-only.
func (c *Client) ChangedFiles(ctx context.Context, rev string) ([]string, error) {
	out, err := c.run(ctx, "show", "--name-only", "--pretty=format:", rev)
	if err != nil {
		return nil, err
	}

	var files []string
	for line := range strings.SplitSeq(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// DiffFile implements Querier, diffing one path against its prior state.
func (c *Client) DiffFile(ctx context.Context, rev, path string) (string, error) {
	return c.run(ctx, "diff", "-U0", rev+"~1", rev, "--", path)
}

// FirstParent implements Querier.
func (c *Client) FirstParent(ctx context.Context, rev string) (string, error) {
	out, err := c.run(ctx, "rev-parse", "--verify", rev+"^1")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// VerifyRef implements Querier.
func (c *Client) VerifyRef(ctx context.Context, ref string) (string, error) {
	out, err := c.run(ctx, "rev-parse", "--verify", ref)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// MergeBase implements Querier.
func (c *Client) MergeBase(ctx context.Context, a, b string) (string, error) {
	out, err := c.run(ctx, "merge-base", a, b)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// run executes a git command and returns its stdout. Failures include the
// captured stderr in the error.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s",
			strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
