package config

import "fmt"

// ValidationError describes a malformed configuration. It is fatal at
// startup, before the engine runs.
type ValidationError struct {
	Message    string
	Context    string
	Suggestion string
	Underlying error
}

func (e *ValidationError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s (at %s)", e.Message, e.Context)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Underlying
}

// NewParseError wraps a decode failure with the offending path.
func NewParseError(path string, err error) *ValidationError {
	return &ValidationError{
		Message:    "configuration file could not be parsed",
		Context:    path,
		Suggestion: "check the syntax; run 'upkeep config-reference' for a sample",
		Underlying: err,
	}
}

func validate(file File) error {
	for table, commands := range map[string]map[string]string{
		"pre_commands":  file.PreCommands,
		"commands":      file.Commands,
		"post_commands": file.PostCommands,
	} {
		for name, command := range commands {
			if name == "" {
				return &ValidationError{
					Message:    "command with empty name",
					Context:    table,
					Suggestion: "give every command a display name",
				}
			}
			if command == "" {
				return &ValidationError{
					Message:    fmt.Sprintf("command %q is empty", name),
					Context:    table,
					Suggestion: "remove the entry or fill in the command line",
				}
			}
		}
	}

	for _, host := range file.RemoteHosts {
		if host == "" {
			return &ValidationError{
				Message:    "empty remote host entry",
				Context:    "remote_hosts",
				Suggestion: "remove the empty entry",
			}
		}
	}

	return nil
}

// DuplicateHosts returns remote hosts that appear more than once.
// Duplicates are allowed and each occurrence runs as its own leg; the
// caller may warn about them.
func DuplicateHosts(file File) []string {
	seen := make(map[string]int, len(file.RemoteHosts))
	var dups []string
	for _, host := range file.RemoteHosts {
		seen[host]++
		if seen[host] == 2 {
			dups = append(dups, host)
		}
	}
	return dups
}
