package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/staticbuild/internal/foundation/errors"
)

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return invalid("source directory must not be empty", "source", c.Source)
	}
	if strings.TrimSpace(c.Output.Directory) == "" {
		return invalid("output directory must not be empty", "output.directory", c.Output.Directory)
	}
	if err := validatePageFile(c.Output.Page); err != nil {
		return err
	}
	if err := validateDisjoint(c.Source, c.Output.Directory); err != nil {
		return err
	}
	if err := validateHashLibraryURL(c.Page.HashLibraryURL); err != nil {
		return err
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return invalid(fmt.Sprintf("serve port must be 0-65535, got %d", c.Serve.Port), "serve.port", c.Serve.Port)
	}
	return nil
}

func validatePageFile(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return invalid("page filename must not be empty", "output.page", name)
	case name == "." || name == "..":
		return invalid("page filename must name a file", "output.page", name)
	case strings.ContainsAny(name, `/\`):
		return invalid("page filename must not contain path separators", "output.page", name)
	}
	return nil
}

// validateDisjoint rejects layouts where cleaning the output would delete the source.
func validateDisjoint(source, output string) error {
	absSource, err := filepath.Abs(source)
	if err != nil {
		return invalid("cannot resolve source directory", "source", source)
	}
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return invalid("cannot resolve output directory", "output.directory", output)
	}
	if absSource == absOutput {
		return invalid("output directory must differ from source directory", "output.directory", output)
	}
	if within(absOutput, absSource) {
		return invalid("source directory must not be inside the output directory", "source", source)
	}
	if within(absSource, absOutput) {
		return invalid("output directory must not be inside the source directory", "output.directory", output)
	}
	return nil
}

// within reports whether path lies strictly below root.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func validateHashLibraryURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("hash library URL must be an absolute http(s) URL", "page.hash_library_url", raw)
	}
	return nil
}

func invalid(msg, field string, value any) error {
	return errors.ValidationError("invalid config: "+msg).
		WithContext("field", field).
		WithContext("value", value).
		Build()
}
