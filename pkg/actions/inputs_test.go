package actions

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	require.NoError(t, BindEnv(v))
	return v
}

func TestInputEnvName(t *testing.T) {
	assert.Equal(t, "INPUT_NAME", InputEnvName("name"))
	assert.Equal(t, "INPUT_GITHUB-TOKEN", InputEnvName("github-token"))
	assert.Equal(t, "INPUT_MY_INPUT", InputEnvName("my input"))
}

func TestLoadInputs(t *testing.T) {
	t.Setenv("INPUT_NAME", "  Release 1.0 ")
	t.Setenv("INPUT_DESCRIPTION", "Tracks the release")
	t.Setenv("INPUT_PRIVATE", "true")
	t.Setenv("INPUT_COLUMNS", "To Do, In Progress\nDone\n")
	t.Setenv("INPUT_GITHUB-TOKEN", "ghs_input")
	t.Setenv("GITHUB_REPOSITORY", "octo-org/board")
	t.Setenv("GITHUB_SERVER_URL", "https://github.com")

	in, err := LoadInputs(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, Inputs{
		Name:          "Release 1.0",
		Description:   "Tracks the release",
		Private:       true,
		Columns:       "To Do, In Progress\nDone\n",
		Token:         "ghs_input",
		Owner:         "octo-org",
		Repo:          "board",
		API:           DefaultAPI,
		ColumnField:   DefaultColumnField,
		OnColumnError: DefaultOnColumnError,
		ServerURL:     "https://github.com",
		LogLevel:      DefaultLogLevel,
	}, in)
}

func TestLoadInputs_Fallbacks(t *testing.T) {
	t.Setenv("INPUT_NAME", "Board")
	// the runner sets empty INPUT_ variables for inputs without a value
	t.Setenv("INPUT_GITHUB-TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "ghs_env")
	t.Setenv("INPUT_REPOSITORY", "")
	t.Setenv("GITHUB_REPOSITORY", "octocat/hello-world")

	in, err := LoadInputs(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, "ghs_env", in.Token)
	assert.Equal(t, "octocat", in.Owner)
	assert.Equal(t, "hello-world", in.Repo)
	assert.False(t, in.Private)
	assert.Empty(t, in.Columns)
}

func TestLoadInputs_Errors(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		expectedErr error
		expectedMsg string
	}{
		{
			name:        "missing name",
			env:         map[string]string{"GITHUB_TOKEN": "t", "GITHUB_REPOSITORY": "o/r"},
			expectedErr: ErrMissingName,
		},
		{
			name:        "missing token",
			env:         map[string]string{"INPUT_NAME": "n", "GITHUB_REPOSITORY": "o/r"},
			expectedErr: ErrMissingToken,
		},
		{
			name:        "missing repository",
			env:         map[string]string{"INPUT_NAME": "n", "GITHUB_TOKEN": "t"},
			expectedErr: ErrMissingRepository,
		},
		{
			name:        "private is not a boolean",
			env:         map[string]string{"INPUT_NAME": "n", "GITHUB_TOKEN": "t", "GITHUB_REPOSITORY": "o/r", "INPUT_PRIVATE": "yes"},
			expectedErr: ErrInvalidBoolean,
		},
		{
			name:        "private is misspelled",
			env:         map[string]string{"INPUT_NAME": "n", "GITHUB_TOKEN": "t", "GITHUB_REPOSITORY": "o/r", "INPUT_PRIVATE": "ture"},
			expectedErr: ErrInvalidBoolean,
		},
		{
			name:        "malformed repository",
			env:         map[string]string{"INPUT_NAME": "n", "GITHUB_TOKEN": "t", "GITHUB_REPOSITORY": "just-owner"},
			expectedMsg: "repository must be in the form owner/repo",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, k := range []string{"INPUT_NAME", "INPUT_PRIVATE", "INPUT_GITHUB-TOKEN", "GITHUB_TOKEN", "INPUT_REPOSITORY", "GITHUB_REPOSITORY"} {
				t.Setenv(k, "")
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := LoadInputs(newViper(t))
			require.Error(t, err)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
			if tc.expectedMsg != "" {
				assert.Contains(t, err.Error(), tc.expectedMsg)
			}
		})
	}
}

func TestParseRepository(t *testing.T) {
	tests := []struct {
		input     string
		owner     string
		repo      string
		expectErr bool
	}{
		{input: "octo-org/board", owner: "octo-org", repo: "board"},
		{input: " octo/board ", owner: "octo", repo: "board"},
		{input: "octo", expectErr: true},
		{input: "/board", expectErr: true},
		{input: "octo/", expectErr: true},
		{input: "octo/board/extra", expectErr: true},
		{input: "", expectErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			owner, repo, err := ParseRepository(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.owner, owner)
			assert.Equal(t, tc.repo, repo)
		})
	}
}

func TestLoadInputs_Private(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{value: "", expected: false},
		{value: "true", expected: true},
		{value: "True", expected: true},
		{value: "TRUE", expected: true},
		{value: " true ", expected: true},
		{value: "false", expected: false},
		{value: "False", expected: false},
		{value: "FALSE", expected: false},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("INPUT_NAME", "n")
			t.Setenv("GITHUB_TOKEN", "t")
			t.Setenv("GITHUB_REPOSITORY", "o/r")
			t.Setenv("INPUT_PRIVATE", tc.value)

			in, err := LoadInputs(newViper(t))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, in.Private)
		})
	}

	for _, value := range []string{"yes", "on", "1", "ture"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("INPUT_NAME", "n")
			t.Setenv("GITHUB_TOKEN", "t")
			t.Setenv("GITHUB_REPOSITORY", "o/r")
			t.Setenv("INPUT_PRIVATE", value)

			_, err := LoadInputs(newViper(t))
			require.ErrorIs(t, err, ErrInvalidBoolean)
			assert.Contains(t, err.Error(), value)
		})
	}
}
