// Package gitsource wraps the handful of git subprocess invocations the
// grammar store needs: validating an HTTPS clone URL, cloning it,
// pulling an existing clone, and probing whether git is on PATH.
//
// Every operation scopes its subprocess's working directory explicitly —
// none of them rely on the caller's process cwd.
package gitsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrInvalidURL is returned when a URL does not match the accepted HTTPS
// git clone URL shape.
var ErrInvalidURL = errors.New("invalid git clone url")

// ErrNotRemote is returned by Pull when the target directory has no
// remote.origin.url configured.
var ErrNotRemote = errors.New("not a git remote")

// cloneURLPattern matches https://<host>/<owner>/<repo>[.git], case
// insensitively, restricting the repo name to the character class named
// in §4.1 and excluding a trailing ".git" from the captured name.
var cloneURLPattern = regexp.MustCompile(`(?i)^https://[^/]+/[^/]+/([a-z0-9_.-]+?)(?:\.git)?/?$`)

// CloneError wraps a failed `git clone` invocation with the command's
// combined output for diagnostics.
type CloneError struct {
	URL    string
	Output string
	Err    error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("git clone %s failed: %v: %s", e.URL, e.Err, strings.TrimSpace(e.Output))
}

func (e *CloneError) Unwrap() error { return e.Err }

// PullError wraps a failed `git pull` invocation.
type PullError struct {
	Dir    string
	Output string
	Err    error
}

func (e *PullError) Error() string {
	return fmt.Sprintf("git pull in %s failed: %v: %s", e.Dir, e.Err, strings.TrimSpace(e.Output))
}

func (e *PullError) Unwrap() error { return e.Err }

// ExtractName returns the repository name from an HTTPS clone URL, e.g.
// "https://github.com/tree-sitter/tree-sitter-rust.git" -> "tree-sitter-rust".
func ExtractName(url string) (string, error) {
	m := cloneURLPattern.FindStringSubmatch(url)
	if m == nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, url)
	}
	return m[1], nil
}

// CloneOptions configures a Clone call.
type CloneOptions struct {
	// Depth, when > 0, passes --depth N to git clone (shallow clone).
	Depth int
	// SingleBranch adds --single-branch.
	SingleBranch bool
}

// Clone validates url, then runs `git clone [--depth N] [--single-branch]
// <url>` with the subprocess's working directory set to base. It
// succeeds iff the process exits 0 and a directory named after the
// repository now exists directly under base.
func Clone(ctx context.Context, url, base string, opts CloneOptions) error {
	name, err := ExtractName(url)
	if err != nil {
		return err
	}

	args := []string{"clone"}
	if opts.Depth > 0 {
		args = append(args, "--depth", fmt.Sprintf("%d", opts.Depth))
	}
	if opts.SingleBranch {
		args = append(args, "--single-branch")
	}
	args = append(args, url)

	out, err := runGit(ctx, base, args...)
	if err != nil {
		return &CloneError{URL: url, Output: out, Err: err}
	}

	target := filepath.Join(base, name)
	if !dirExists(target) {
		return &CloneError{URL: url, Output: out, Err: fmt.Errorf("clone reported success but %s does not exist", target)}
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Pull runs `git pull` in repo, returning whether the repository's HEAD
// commit changed. It fails with ErrNotRemote if repo has no
// remote.origin.url configured.
func Pull(ctx context.Context, repo string) (changed bool, err error) {
	if _, err := runGit(ctx, repo, "config", "--get", "remote.origin.url"); err != nil {
		return false, fmt.Errorf("%w: %s", ErrNotRemote, repo)
	}

	before, err := revParseHead(ctx, repo)
	if err != nil {
		return false, err
	}

	out, err := runGit(ctx, repo, "pull")
	if err != nil {
		return false, &PullError{Dir: repo, Output: out, Err: err}
	}

	after, err := revParseHead(ctx, repo)
	if err != nil {
		return false, err
	}

	return before != after, nil
}

// ResetHard runs `git reset --hard <ref>` in repo. It exists for test
// harness use only — pinning a cloned grammar repo to a known commit
// before asserting Pull's changed-bool — and is never invoked from a
// production code path.
func ResetHard(ctx context.Context, repo, ref string) error {
	if _, err := runGit(ctx, repo, "reset", "--hard", ref); err != nil {
		return fmt.Errorf("git reset --hard %s in %s: %w", ref, repo, err)
	}
	return nil
}

// IsGitInstalled reports whether a git binary is reachable on PATH by
// invoking `git --version`.
func IsGitInstalled(ctx context.Context) bool {
	_, err := runGit(ctx, "", "--version")
	return err == nil
}

func revParseHead(ctx context.Context, repo string) (string, error) {
	out, err := runGit(ctx, repo, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse HEAD in %s: %w", repo, err)
	}
	return strings.TrimSpace(out), nil
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return buf.String(), err
}
