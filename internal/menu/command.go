package menu

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dendrascience/runmenu/catalog"
	"golang.org/x/sys/unix"
	"mvdan.cc/sh/v3/shell"
)

var (
	ErrEmptyCommand = errors.New("empty command line")
	ErrNotInCatalog = errors.New("program is not in the catalog")
)

// Command is a resolved program and its argument vector. Args[0] is the name
// the user typed.
type Command struct {
	Path string
	Args []string
}

func (c *Command) String() string {
	return strings.Join(c.Args, " ")
}

// Parse splits line into words with POSIX shell quoting and parameter
// expansion. env supplies variable values; nil expands every variable to "".
func Parse(line string, env func(string) string) ([]string, error) {
	if env == nil {
		env = func(string) string { return "" }
	}
	fields, err := shell.Fields(line, env)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", line, err)
	}
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}
	return fields, nil
}

// Resolve parses line and locates its program. A bare program name must be
// in cat and is then looked up in sp; a name containing a slash bypasses the
// catalog.
func Resolve(cat *catalog.Catalog, sp catalog.SearchPath, line string, env func(string) string) (*Command, error) {
	args, err := Parse(line, env)
	if err != nil {
		return nil, err
	}
	name := args[0]

	if !strings.Contains(name, "/") && !inCatalog(cat, name) {
		return nil, fmt.Errorf("%w: %s", ErrNotInCatalog, name)
	}
	path, err := catalog.LookPath(sp, name)
	if err != nil {
		return nil, err
	}
	return &Command{Path: path, Args: args}, nil
}

// ResolveName locates a program by its exact catalog name. The name is not
// split or expanded, so entries containing spaces, quotes or '$' resolve to
// themselves.
func ResolveName(cat *catalog.Catalog, sp catalog.SearchPath, name string) (*Command, error) {
	if !strings.Contains(name, "/") && !inCatalog(cat, name) {
		return nil, fmt.Errorf("%w: %s", ErrNotInCatalog, name)
	}
	path, err := catalog.LookPath(sp, name)
	if err != nil {
		return nil, err
	}
	return &Command{Path: path, Args: []string{name}}, nil
}

func inCatalog(cat *catalog.Catalog, name string) bool {
	if cat == nil {
		return false
	}
	return slices.ContainsFunc(cat.Items, func(it catalog.Item) bool {
		return it.Name == name
	})
}

// Exec replaces the current process with c. It only returns on failure.
func Exec(c *Command, environ []string) error {
	if err := unix.Exec(c.Path, c.Args, environ); err != nil {
		return fmt.Errorf("exec %s: %w", c.Path, err)
	}
	return nil
}
