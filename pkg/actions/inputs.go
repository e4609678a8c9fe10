package actions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Input names as declared in action.yml.
const (
	InputName          = "name"
	InputDescription   = "description"
	InputPrivate       = "private"
	InputColumns       = "columns"
	InputToken         = "github-token"
	InputRepository    = "repository"
	InputAPI           = "api"
	InputColumnField   = "column-field"
	InputOnColumnError = "on-column-error"
	InputServerURL     = "server-url"
	InputLogLevel      = "log-level"
)

// Defaults applied when an input is absent.
const (
	DefaultAPI           = "projects-v2"
	DefaultColumnField   = "Column"
	DefaultOnColumnError = "fail"
	DefaultLogLevel      = "info"
)

var (
	ErrMissingName       = errors.New("input required and not supplied: name")
	ErrMissingToken      = errors.New("input required and not supplied: github-token (or GITHUB_TOKEN)")
	ErrMissingRepository = errors.New("input required and not supplied: repository (or GITHUB_REPOSITORY)")
	ErrInvalidBoolean    = errors.New("input does not meet YAML 1.2 \"Core Schema\" specification")
)

// runnerEnv lists the default runner variables an input falls back to.
var runnerEnv = map[string][]string{
	InputToken:      {"GITHUB_TOKEN"},
	InputRepository: {"GITHUB_REPOSITORY"},
	InputServerURL:  {"GITHUB_SERVER_URL"},
}

// Inputs holds the resolved action inputs.
type Inputs struct {
	Name          string
	Description   string
	Private       bool
	Columns       string
	Token         string
	Owner         string
	Repo          string
	API           string
	ColumnField   string
	OnColumnError string
	ServerURL     string
	LogLevel      string
}

// InputEnvName returns the variable the runner sets for an input, following
// @actions/core: spaces become underscores and the name is upper-cased.
func InputEnvName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// BindEnv makes every input readable from its INPUT_ variable and, where one
// exists, from the matching default runner variable.
func BindEnv(v *viper.Viper) error {
	for _, name := range []string{
		InputName, InputDescription, InputPrivate, InputColumns, InputToken,
		InputRepository, InputAPI, InputColumnField, InputOnColumnError,
		InputServerURL, InputLogLevel,
	} {
		args := append([]string{name, InputEnvName(name)}, runnerEnv[name]...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", name, err)
		}
	}

	v.SetDefault(InputAPI, DefaultAPI)
	v.SetDefault(InputColumnField, DefaultColumnField)
	v.SetDefault(InputOnColumnError, DefaultOnColumnError)
	v.SetDefault(InputLogLevel, DefaultLogLevel)
	return nil
}

// LoadInputs resolves the inputs from v. Values are trimmed the way the
// toolkit trims them, except for columns whose layout matters to the parser.
func LoadInputs(v *viper.Viper) (Inputs, error) {
	in := Inputs{
		Name:          get(v, InputName),
		Description:   get(v, InputDescription),
		Columns:       v.GetString(InputColumns),
		Token:         get(v, InputToken),
		API:           get(v, InputAPI),
		ColumnField:   get(v, InputColumnField),
		OnColumnError: get(v, InputOnColumnError),
		ServerURL:     get(v, InputServerURL),
		LogLevel:      get(v, InputLogLevel),
	}

	private, err := getBool(v, InputPrivate)
	if err != nil {
		return Inputs{}, err
	}
	in.Private = private

	if in.Name == "" {
		return Inputs{}, ErrMissingName
	}
	if in.Token == "" {
		return Inputs{}, ErrMissingToken
	}

	repository := get(v, InputRepository)
	if repository == "" {
		return Inputs{}, ErrMissingRepository
	}
	owner, repo, err := ParseRepository(repository)
	if err != nil {
		return Inputs{}, err
	}
	in.Owner, in.Repo = owner, repo

	return in, nil
}

// ParseRepository splits an "owner/repo" string such as GITHUB_REPOSITORY.
func ParseRepository(s string) (owner, repo string, _ error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("repository must be in the form owner/repo, got %q", s)
	}
	return owner, repo, nil
}

// getBool reads a boolean input the way the toolkit's getBooleanInput does:
// only the YAML core schema spellings are accepted. An absent input is false.
func getBool(v *viper.Viper, key string) (bool, error) {
	switch s := get(v, key); s {
	case "", "false", "False", "FALSE":
		return false, nil
	case "true", "True", "TRUE":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s is %q; use true | True | TRUE | false | False | FALSE", ErrInvalidBoolean, key, s)
	}
}

func get(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}
