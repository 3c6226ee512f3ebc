package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(_ context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.Command("git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, fmt.Errorf("git '%v' exit: %s", strings.Join(fullArgs, " "), strings.TrimSpace(string(exitErr.Stderr)))
	} else if err != nil {
		return nil, fmt.Errorf("git '%v' unknown: %w", strings.Join(fullArgs, " "), err)
	}
	return out, nil
}

// Blame implements the GitClient interface.
func (c *LocalGitClient) Blame(ctx context.Context, repoPath string, absFilePath string) ([]byte, error) {
	return c.Run(ctx, repoPath, "blame", absFilePath)
}

// GetRepoRoot implements the GitClient interface by executing
// 'git rev-parse --show-toplevel'.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetBranch implements the GitClient interface by parsing 'git branch'
// output. A placeholder is returned instead of an error so callers can
// still auto-generate output file names.
func (c *LocalGitClient) GetBranch(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "branch")
	if err != nil {
		return DefaultBranchName, nil
	}
	return ParseBranchOutput(string(out)), nil
}

// ParseBranchOutput extracts the current branch name from 'git branch'
// output, falling back to the placeholder when no branch is marked active.
func ParseBranchOutput(out string) string {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "*"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return DefaultBranchName
}
