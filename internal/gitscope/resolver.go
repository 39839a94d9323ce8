package gitscope

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// EventType classifies the CI event driving a run.
type EventType string

const (
	// EventPullRequest scopes to the diff between the PR base and head.
	EventPullRequest EventType = "pull_request"
	// EventPush scopes to the diff between HEAD and its first parent.
	EventPush EventType = "push"
	// EventNone disables scoping: the whole tree is checked.
	EventNone EventType = ""
)

// ParseEventType maps CI event names to an EventType. Pull-request-like and
// push-like names are recognized; anything else means no scoping.
func ParseEventType(s string) EventType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pull_request", "pull_request_target", "merge_request", "pr":
		return EventPullRequest
	case "push":
		return EventPush
	default:
		return EventNone
	}
}

// Resolver decides which two revisions to diff for the current event and
// produces the ChangeMap consumed by the rule engines.
//
// Every strategy failure falls through to the next tier, ending at nil
// (whole-tree scan). Shallow checkouts, merge-commit ambiguity, and
// first-commit-in-history are common CI conditions where a single diff
// strategy fails; a full-tree scan is always a safe degraded mode, never
// an error.
type Resolver struct {
	git Querier
}

// NewResolver creates a Resolver over the given version-control querier.
func NewResolver(git Querier) *Resolver {
	return &Resolver{git: git}
}

// Resolve builds the change scope for the run. A nil result means
// "scope = whole tree"; Resolve never fails.
func (r *Resolver) Resolve(ctx context.Context, event EventType, rev, baseRef string) ChangeMap {
	if rev == "" {
		rev = "HEAD"
	}

	switch event {
	case EventPullRequest:
		if cm := r.resolvePullRequest(ctx, rev, baseRef); len(cm) > 0 {
			return cm
		}
		if cm := r.resolvePerCommit(ctx, rev); len(cm) > 0 {
			return cm
		}
		return nil
	case EventPush:
		if cm := r.resolvePush(ctx, rev); len(cm) > 0 {
			return cm
		}
		if cm := r.resolvePerCommit(ctx, rev); len(cm) > 0 {
			return cm
		}
		return nil
	default:
		return nil
	}
}

// resolvePullRequest diffs the PR base against the head revision. The base
// is the named base-branch reference when it resolves (narrowed to the
// merge base when one exists), else the first parent of the merge commit.
func (r *Resolver) resolvePullRequest(ctx context.Context, rev, baseRef string) ChangeMap {
	var base string
	if baseRef != "" {
		sha, err := r.git.VerifyRef(ctx, baseRef)
		if err != nil {
			logrus.WithError(err).WithField("ref", baseRef).Warn("base ref not resolvable")
		} else {
			base = sha
			if mb, err := r.git.MergeBase(ctx, sha, rev); err == nil {
				base = mb
			}
		}
	}
	if base == "" {
		parent, err := r.git.FirstParent(ctx, rev)
		if err != nil {
			logrus.WithError(err).Warn("cannot resolve merge-commit first parent")
			return nil
		}
		base = parent
	}

	return r.diffInto(ctx, base, rev)
}

// resolvePush diffs the head revision against its immediate parent.
func (r *Resolver) resolvePush(ctx context.Context, rev string) ChangeMap {
	parent, err := r.git.FirstParent(ctx, rev)
	if err != nil {
		logrus.WithError(err).Warn("cannot resolve parent revision (shallow history or first commit)")
		return nil
	}
	return r.diffInto(ctx, parent, rev)
}

// resolvePerCommit enumerates files changed in the revision and unions
// their individual diffs. This tier survives merge commits whose combined
// diff is empty or unparsable.
func (r *Resolver) resolvePerCommit(ctx context.Context, rev string) ChangeMap {
	files, err := r.git.ChangedFiles(ctx, rev)
	if err != nil {
		logrus.WithError(err).Warn("cannot list files changed by revision")
		return nil
	}

	cm := make(ChangeMap)
	for _, path := range files {
		diff, err := r.git.DiffFile(ctx, rev, path)
		if err != nil {
			logrus.WithError(err).WithField("path", path).Warn("per-file diff failed")
			continue
		}
		fileChanges, err := ParseChanges(diff)
		if err != nil {
			logrus.WithError(err).WithField("path", path).Warn("per-file diff unparsable")
			continue
		}
		cm.Merge(fileChanges)
	}
	return cm
}

func (r *Resolver) diffInto(ctx context.Context, base, head string) ChangeMap {
	diff, err := r.git.Diff(ctx, base, head)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"base": base,
			"head": head,
		}).Warn("revision diff failed")
		return nil
	}
	cm, err := ParseChanges(diff)
	if err != nil {
		logrus.WithError(err).Warn("diff output unparsable")
		return nil
	}
	return cm
}
