package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/spf13/afero"

	"github.com/A-mIn3/eaphammer/pkg/challenge"
	"github.com/A-mIn3/eaphammer/pkg/logsink"
)

// Platforms that detect the listening interface on their own.
var autoInterfacePlatforms = map[string]bool{
	"darwin": true,
}

// InterfaceRequired reports whether -I must be given on goos.
func InterfaceRequired(goos string) bool {
	return !autoInterfacePlatforms[goos]
}

// ToBool implements the configuration file's boolean convention: only "ON"
// (any case, surrounding whitespace ignored) is true.
func ToBool(s string) bool {
	return strings.ToUpper(strings.TrimSpace(s)) == "ON"
}

func checkInterface(opts Options, goos string) error {
	if opts.Interface != "" || !InterfaceRequired(goos) {
		return nil
	}
	return &Error{
		Kind:    ErrMissingMandatoryOption,
		Field:   "-I <if>",
		Message: "mandatory option is missing",
		Hint:    "pass the interface to listen on, e.g. -I eth0, or -I ALL",
	}
}

// checkAssets warns about payload files that do not exist. Paths are kept
// as configured either way.
func checkAssets(fs afero.Fs, http HTTPSection) []error {
	var warnings []error
	for _, asset := range []struct {
		key  string
		path string
	}{
		{"htmlfilename", http.HTMLFilename},
		{"exefilename", http.ExeFilename},
	} {
		ok, err := afero.Exists(fs, asset.path)
		if ok {
			continue
		}
		warnings = append(warnings, &Error{
			Kind:    ErrMissingAssetFile,
			Field:   asset.key,
			Value:   asset.path,
			Message: "file not found",
			Err:     err,
		})
	}
	return warnings
}

func checkChallenge(raw string) (challenge.Challenge, error) {
	c, err := challenge.Decode(raw)
	if err != nil {
		return challenge.Challenge{}, &Error{
			Kind:    ErrMalformedChallenge,
			Field:   "challenge",
			Value:   raw,
			Message: "the challenge must be exactly 16 hex chars long",
			Hint:    "Example: " + challenge.Example,
			Err:     err,
		}
	}
	return c, nil
}

func checkLogDir(fs afero.Fs, dir string) error {
	if err := logsink.EnsureDir(fs, dir); err != nil {
		return &Error{
			Kind:    ErrFilesystemUnavailable,
			Field:   "logdir",
			Value:   dir,
			Message: "cannot create log directory",
			Err:     err,
		}
	}
	return nil
}

// ValidateProxy confirms that an upstream proxy is given as host:port.
func ValidateProxy(addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address format %s: %w", addr, err)
	}
	if host == "" {
		return errors.New("missing host")
	}
	if port == "" {
		return errors.New("invalid port")
	}
	if _, err := net.LookupPort("tcp", port); err != nil {
		return fmt.Errorf("invalid port: %s", port)
	}
	return nil
}

// splitList splits a comma separated filter value, upper-casing entries and
// dropping empty ones.
func splitList(raw string) []string {
	var out []string
	for _, entry := range strings.Split(strings.TrimSpace(raw), ",") {
		entry = strings.ToUpper(strings.TrimSpace(entry))
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}
