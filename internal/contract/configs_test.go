package contract

import (
	"context"
	"testing"

	"github.com/huangsam/blamescope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		input       *ConfigRawInput
		expectError bool
		setupMock   func(*MockGitClient)
	}{
		{
			name: "valid minimal config",
			input: &ConfigRawInput{
				Output:      "text",
				RepoPathStr: ".",
			},
			expectError: false,
			setupMock: func(mock *MockGitClient) {
				ctx := context.Background()
				mock.On("GetRepoRoot", ctx, ".").Return("/mock/repo/root", nil)
			},
		},
		{
			name: "invalid output format",
			input: &ConfigRawInput{
				Output:      "yaml",
				RepoPathStr: ".",
			},
			expectError: true,
			setupMock:   nil, // No mock setup needed since validation fails early
		},
		{
			name: "invalid column attribute",
			input: &ConfigRawInput{
				Output:      "text",
				Columns:     "commit,mystery",
				RepoPathStr: ".",
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "invalid grouping attribute",
			input: &ConfigRawInput{
				Output:      "text",
				GroupBy:     "nope",
				RepoPathStr: ".",
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "negative file limit",
			input: &ConfigRawInput{
				Output:      "text",
				FileLimit:   -5,
				RepoPathStr: ".",
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "file limit too large",
			input: &ConfigRawInput{
				Output:      "text",
				FileLimit:   MaxFileLimit + 1,
				RepoPathStr: ".",
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "invalid store backend",
			input: &ConfigRawInput{
				Output:       "text",
				StoreBackend: "oracle",
				RepoPathStr:  ".",
			},
			expectError: true,
			setupMock:   nil,
		},
		{
			name: "repo root resolution fails",
			input: &ConfigRawInput{
				Output:      "text",
				RepoPathStr: "/not/a/repo",
			},
			expectError: true,
			setupMock: func(mock *MockGitClient) {
				ctx := context.Background()
				mock.On("GetRepoRoot", ctx, "/not/a/repo").Return("", assert.AnError)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := &MockGitClient{}
			if tt.setupMock != nil {
				tt.setupMock(mockClient)
			}

			cfg := &Config{}
			err := ProcessAndValidate(context.Background(), cfg, mockClient, tt.input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "/mock/repo/root", cfg.RepoPath)
			}
			mockClient.AssertExpectations(t)
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	mockClient := &MockGitClient{}
	mockClient.On("GetRepoRoot", context.Background(), ".").Return("/mock/repo/root", nil)

	cfg := &Config{}
	input := &ConfigRawInput{Output: "text", Color: "no"}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))

	// Defaults: built-in ignores, default columns, contributor grouping, no store
	assert.Equal(t, schema.DefaultIgnoreDirectories, cfg.IgnoreDirs)
	assert.Equal(t, schema.DefaultIgnoreFileTypes, cfg.IgnoreFileTypes)
	assert.Equal(t, schema.DefaultLineColumns, cfg.Columns)
	assert.Equal(t, []string{schema.AttrContributor}, cfg.GroupBy)
	assert.Equal(t, schema.NoneBackend, cfg.StoreBackend)
	assert.NotEmpty(t, cfg.OutputDir)
	assert.False(t, cfg.UseColors)
}

func TestProcessAndValidateMergesIgnores(t *testing.T) {
	mockClient := &MockGitClient{}
	mockClient.On("GetRepoRoot", context.Background(), ".").Return("/mock/repo/root", nil)

	cfg := &Config{}
	input := &ConfigRawInput{
		Output:          "text",
		IgnoreDirs:      "node_modules, dist",
		IgnoreFileTypes: "ICO,  .Lock",
	}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))

	assert.Contains(t, cfg.IgnoreDirs, ".git")
	assert.Contains(t, cfg.IgnoreDirs, "node_modules")
	assert.Contains(t, cfg.IgnoreDirs, "dist")

	// User extensions are normalized to lowercase with a leading dot
	assert.Contains(t, cfg.IgnoreFileTypes, ".png")
	assert.Contains(t, cfg.IgnoreFileTypes, ".ico")
	assert.Contains(t, cfg.IgnoreFileTypes, ".lock")
}

func TestNormalizeFileTypes(t *testing.T) {
	got := NormalizeFileTypes([]string{"PNG", ".Jpeg", "  gif  ", "", ".svg"})
	assert.Equal(t, []string{".png", ".jpeg", ".gif", ".svg"}, got)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		RepoPath:   "/repo",
		IgnoreDirs: []string{".git"},
		Columns:    []string{schema.AttrCommit},
	}
	clone := cfg.Clone()
	clone.IgnoreDirs[0] = "changed"
	clone.Columns[0] = "changed"

	assert.Equal(t, ".git", cfg.IgnoreDirs[0])
	assert.Equal(t, schema.AttrCommit, cfg.Columns[0])
	assert.Equal(t, cfg.RepoPath, clone.RepoPath)
}
