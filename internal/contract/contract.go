// Package contract has the configuration surface and the Git client
// boundary shared by all parts of blamescope.
package contract

import (
	"context"
	"time"
)

// GitClient defines the operations blamescope needs from the git binary.
// This allows the scan and parse logic to be tested without a real git
// executable.
type GitClient interface {
	// Run executes a git command rooted at repoPath and returns its stdout.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// Blame returns the raw `git blame` output for one file, identified by
	// its absolute path. The command runs with repoPath as the working
	// directory so the blame resolves against the right repository.
	Blame(ctx context.Context, repoPath string, absFilePath string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the Git
	// repository containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetBranch returns the name of the currently checked out branch, or
	// "unknown" when it cannot be determined.
	GetBranch(ctx context.Context, repoPath string) (string, error)
}

// Default values for configuration.
const (
	DefaultBranchName = "unknown"
	MaxFileLimit      = 1_000_000
)

// RunInfo captures metadata about one completed scan, used by the report
// export store.
type RunInfo struct {
	StartTime  time.Time
	EndTime    time.Time
	Analysis   string
	RepoPath   string
	Branch     string
	TotalFiles int
	TotalLines int
}
