package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError reports a configuration problem in one config source.
type ValidationError struct {
	// Source is the config file path, or "config" for the merged result.
	Source string
	// Line is the 1-based line of a YAML syntax error. Zero otherwise.
	Line int
	// Key is the offending config key as written in YAML, e.g. "site_url"
	// or "sections.fcm".
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Message)
	case e.Key != "":
		return fmt.Sprintf("%s: %s %s", e.Source, e.Key, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Source, e.Message)
	}
}

// keyValidator reports field errors under their koanf keys.
var keyValidator = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		key, _, _ := strings.Cut(field.Tag.Get("koanf"), ",")
		if key == "-" {
			return ""
		}
		return key
	})
	return v
}()

// ValidateYAMLSyntax checks that path holds well-formed YAML. A missing or
// blank file is valid and leaves the defaults in place.
func ValidateYAMLSyntax(path string) error {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case errors.Is(err, fs.ErrPermission):
		return &ValidationError{Source: path, Message: "permission denied"}
	case err != nil:
		return &ValidationError{Source: path, Message: err.Error()}
	case len(bytes.TrimSpace(data)) == 0:
		return nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return syntaxError(path, err)
	}
	return nil
}

// syntaxError splits a yaml.v3 message such as
// "yaml: line 2: mapping values are not allowed in this context"
// into its line number and description.
func syntaxError(path string, err error) *ValidationError {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	var line int
	if _, scanErr := fmt.Sscanf(msg, "line %d:", &line); scanErr != nil || line <= 0 {
		return &ValidationError{Source: path, Message: msg}
	}
	_, desc, _ := strings.Cut(msg, ":")
	return &ValidationError{Source: path, Line: line, Message: strings.TrimSpace(desc)}
}

// ValidateConfigValues checks the merged configuration against its
// constraints and reports the first violation.
func ValidateConfigValues(cfg *Configuration, source string) error {
	if err := keyValidator.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ValidationError{
				Source:  source,
				Key:     fieldErrs[0].Field(),
				Message: describeRule(fieldErrs[0]),
			}
		}
		return &ValidationError{Source: source, Message: err.Error()}
	}

	for _, key := range slices.Sorted(maps.Keys(cfg.Sections)) {
		titles := cfg.Sections[key]
		switch {
		case key == "":
			return &ValidationError{Source: source, Key: "sections", Message: "keys must not be empty"}
		case titles.Devsite == "" || titles.GitHub == "":
			return &ValidationError{Source: source, Key: "sections." + key, Message: "must set both devsite and github titles"}
		}
	}
	return nil
}

func describeRule(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fieldErr.Param()
	case "max":
		return "must be at most " + fieldErr.Param()
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fieldErr.Param()), ", ")
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("fails the %q rule", fieldErr.Tag())
	}
}
