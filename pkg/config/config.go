// Package config resolves the responder configuration: it validates CLI
// options and the raw INI settings once at startup and produces the
// snapshot every protocol server reads from.
package config

import (
	"net/netip"

	"github.com/A-mIn3/eaphammer/pkg/challenge"
	"github.com/A-mIn3/eaphammer/pkg/ignorelist"
	"github.com/A-mIn3/eaphammer/pkg/logsink"
)

// Options is the CLI aggregate, consumed verbatim.
type Options struct {
	Interface     string
	OurIP         string
	LMDowngrade   bool
	WPAD          bool
	WRedirect     bool
	NBTNSDomain   bool
	BasicAuth     bool
	Fingerprint   bool
	ForceWPADAuth bool
	UpstreamProxy string
	Analyze       bool
	Verbose       bool

	// Root is the responder directory holding the database and logs.
	Root string
	// ConfigFile overrides the configuration file location.
	ConfigFile string
}

// ToggleSet enables or disables each protocol server.
type ToggleSet struct {
	HTTP     bool
	HTTPS    bool
	SMB      bool
	SQL      bool
	FTP      bool
	POP      bool
	IMAP     bool
	SMTP     bool
	LDAP     bool
	DNS      bool
	Kerberos bool
}

// HTTPConfig holds the rogue HTTP server payload settings. Payload paths are
// kept even when the files are missing.
type HTTPConfig struct {
	ServeExe        bool
	ServeAlways     bool
	ServeHTML       bool
	HTMLFilename    string
	ExeFilename     string
	ExeDownloadName string
	WPADScript      string
	HTMLToInject    string
}

// TLSConfig holds the HTTPS key pair locations.
type TLSConfig struct {
	SSLKey  string
	SSLCert string
}

// AddressFilterSet decides which clients and names get answers. RespondTo
// and DontRespondTo hold literal addresses only; name filters are kept as
// configured (upper-cased).
type AddressFilterSet struct {
	RespondTo         []string
	DontRespondTo     []string
	RespondToName     []string
	DontRespondToName []string
}

// LogFiles names the log directory and files.
type LogFiles struct {
	Dir       string
	Session   string
	Poisoners string
	Analyze   string
}

// Config is the resolved configuration. It is built once by Resolve and
// must be treated as read-only, except for AutoIgnoreList which protocol
// servers append to.
type Config struct {
	Root         string
	DatabaseFile string
	Logs         LogFiles
	Credentials  logsink.Paths

	Servers ToggleSet
	HTTP    HTTPConfig
	TLS     TLSConfig
	Filters AddressFilterSet

	AutoIgnore                 bool
	CaptureMultipleCredentials bool
	AutoIgnoreList             *ignorelist.List

	Interface     string
	OurIP         string
	LMDowngrade   bool
	WPAD          bool
	WRedirect     bool
	NBTNSDomain   bool
	BasicAuth     bool
	Fingerprint   bool
	ForceWPADAuth bool
	UpstreamProxy string
	Analyze       bool
	Verbose       bool

	CommandLine string
	BindTo      string
	BindIP      netip.Addr
	OSVersion   string

	NumChallenge string
	Challenge    challenge.Challenge

	Sinks *logsink.Sinks
}

// Close releases the log sinks.
func (c *Config) Close() error {
	if c == nil {
		return nil
	}
	return c.Sinks.Close()
}
