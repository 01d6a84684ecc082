package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"

	"github.com/A-mIn3/eaphammer/pkg/ignorelist"
	"github.com/A-mIn3/eaphammer/pkg/iprange"
	"github.com/A-mIn3/eaphammer/pkg/logsink"
	"github.com/A-mIn3/eaphammer/pkg/netif"
)

// Deps are the collaborators used during resolution. Zero values fall back
// to the host: the OS filesystem, interface lookup, runtime.GOOS and
// os.Args.
type Deps struct {
	Fs          afero.Fs
	Discovery   netif.Discovery
	Console     *slog.Logger
	GOOS        string
	Args        []string
	ExpandLimit int
}

func (d Deps) withDefaults() Deps {
	if d.Fs == nil {
		d.Fs = afero.NewOsFs()
	}
	if d.Discovery == nil {
		d.Discovery = netif.System{}
	}
	if d.Console == nil {
		d.Console = slog.Default()
	}
	if d.GOOS == "" {
		d.GOOS = runtime.GOOS
	}
	if d.Args == nil {
		d.Args = os.Args
	}
	if d.ExpandLimit == 0 {
		d.ExpandLimit = iprange.DefaultLimit
	}
	return d
}

// Resolve validates opts and the raw configuration and builds the Config.
// Checks run in order: interface, payload files (warnings), challenge,
// address ranges, bind address, log directory. A fatal check returns before
// any log file is opened. On success the session log holds the start banner
// followed by the configuration dump.
func Resolve(opts Options, raw RawSource, deps Deps) (*Config, error) {
	deps = deps.withDefaults()
	log := deps.Console

	if err := checkInterface(opts, deps.GOOS); err != nil {
		return nil, err
	}

	sections, err := ReadSections(raw)
	if err != nil {
		return nil, err
	}
	core := sections.Core

	for _, warning := range checkAssets(deps.Fs, sections.HTTP) {
		log.Warn("file not found", "error", warning)
	}
	if opts.UpstreamProxy != "" {
		if err := ValidateProxy(opts.UpstreamProxy); err != nil {
			log.Warn("upstream proxy looks invalid", "proxy", opts.UpstreamProxy, "error", err)
		}
	}

	chal, err := checkChallenge(core.Challenge)
	if err != nil {
		return nil, err
	}

	filters, err := resolveFilters(core, deps.ExpandLimit)
	if err != nil {
		return nil, err
	}

	bindTo, err := deps.Discovery.FindLocalIP(opts.Interface, opts.OurIP)
	if err != nil {
		return nil, &Error{
			Kind:    ErrNetworkUnavailable,
			Field:   "-I",
			Value:   opts.Interface,
			Message: "cannot determine the address to bind to",
			Err:     err,
		}
	}
	bindIP, err := netip.ParseAddr(bindTo)
	if err != nil {
		return nil, &Error{Kind: ErrNetworkUnavailable, Field: "bind", Value: bindTo, Message: "not an IP address", Err: err}
	}

	root := opts.Root
	logOpts := logsink.Options{
		Dir:          filepath.Join(root, logsink.DirName),
		SessionLog:   core.SessionLog,
		PoisonersLog: core.PoisonersLog,
		AnalyzeLog:   core.AnalyzeLog,
	}
	if err := checkLogDir(deps.Fs, logOpts.Dir); err != nil {
		return nil, err
	}

	cfg := &Config{
		Root:         root,
		DatabaseFile: filepath.Join(root, core.Database),
		Logs: LogFiles{
			Dir:       logOpts.Dir,
			Session:   logOpts.SessionPath(),
			Poisoners: logOpts.PoisonersPath(),
			Analyze:   logOpts.AnalyzePath(),
		},
		Credentials: logsink.Templates(logOpts.Dir),
		Servers: ToggleSet{
			HTTP:     ToBool(core.HTTP),
			HTTPS:    ToBool(core.HTTPS),
			SMB:      ToBool(core.SMB),
			SQL:      ToBool(core.SQL),
			FTP:      ToBool(core.FTP),
			POP:      ToBool(core.POP),
			IMAP:     ToBool(core.IMAP),
			SMTP:     ToBool(core.SMTP),
			LDAP:     ToBool(core.LDAP),
			DNS:      ToBool(core.DNS),
			Kerberos: ToBool(core.Kerberos),
		},
		HTTP: HTTPConfig{
			ServeExe:        ToBool(sections.HTTP.ServeExe),
			ServeAlways:     ToBool(sections.HTTP.ServeAlways),
			ServeHTML:       ToBool(sections.HTTP.ServeHTML),
			HTMLFilename:    sections.HTTP.HTMLFilename,
			ExeFilename:     sections.HTTP.ExeFilename,
			ExeDownloadName: sections.HTTP.ExeDownloadName,
			WPADScript:      sections.HTTP.WPADScript,
			HTMLToInject:    sections.HTTP.HTMLToInject,
		},
		TLS: TLSConfig{
			SSLKey:  sections.HTTPS.SSLKey,
			SSLCert: sections.HTTPS.SSLCert,
		},
		Filters:                    filters,
		AutoIgnore:                 ToBool(core.AutoIgnoreAfterSuccess),
		CaptureMultipleCredentials: ToBool(core.CaptureMultipleCredentials),
		AutoIgnoreList:             ignorelist.New(),

		Interface:     opts.Interface,
		OurIP:         opts.OurIP,
		LMDowngrade:   opts.LMDowngrade,
		WPAD:          opts.WPAD,
		WRedirect:     opts.WRedirect,
		NBTNSDomain:   opts.NBTNSDomain,
		BasicAuth:     opts.BasicAuth,
		Fingerprint:   opts.Fingerprint,
		ForceWPADAuth: opts.ForceWPADAuth,
		UpstreamProxy: opts.UpstreamProxy,
		Analyze:       opts.Analyze,
		Verbose:       opts.Verbose,

		CommandLine:  commandLine(deps.Args),
		BindTo:       bindTo,
		BindIP:       bindIP,
		OSVersion:    deps.GOOS,
		NumChallenge: core.Challenge,
		Challenge:    chal,
	}

	sinks, err := logsink.Provision(deps.Fs, logOpts)
	if err != nil {
		return nil, &Error{
			Kind:    ErrFilesystemUnavailable,
			Field:   "logs",
			Value:   logOpts.Dir,
			Message: "cannot open log files",
			Err:     err,
		}
	}
	cfg.Sinks = sinks

	sinks.Session.Warn("Responder Started", "command_line", cfg.CommandLine)
	sinks.Session.Warn("Responder Config", "config", cfg.String())

	log.Debug("configuration resolved", "bind", cfg.BindTo, "logs", cfg.Logs.Dir)
	return cfg, nil
}

func resolveFilters(core CoreSection, limit int) (AddressFilterSet, error) {
	respondTo, err := expand("respondto", core.RespondTo, limit)
	if err != nil {
		return AddressFilterSet{}, err
	}
	dontRespondTo, err := expand("dontrespondto", core.DontRespondTo, limit)
	if err != nil {
		return AddressFilterSet{}, err
	}
	return AddressFilterSet{
		RespondTo:         respondTo,
		DontRespondTo:     dontRespondTo,
		RespondToName:     splitList(core.RespondToName),
		DontRespondToName: splitList(core.DontRespondToName),
	}, nil
}

func expand(key, raw string, limit int) ([]string, error) {
	addrs, err := iprange.ExpandAll(splitList(raw), limit)
	if err != nil {
		msg := "invalid address range"
		if errors.Is(err, iprange.ErrTooLarge) {
			msg = "address ranges expand to too many addresses"
		}
		return nil, &Error{Kind: ErrMalformedRange, Field: key, Value: raw, Message: msg, Err: err}
	}
	return addrs, nil
}

func commandLine(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = fmt.Sprintf("%q", arg)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
