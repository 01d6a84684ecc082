package config

import (
	"fmt"
	"strings"

	"github.com/A-mIn3/eaphammer/pkg/logsink"
)

// Field is one named entry of the configuration dump.
type Field struct {
	Name  string
	Value string
}

// Fields lists the configuration in a fixed order. Log sinks are omitted.
func (c *Config) Fields() []Field {
	b := func(v bool) string { return fmt.Sprintf("%t", v) }
	list := func(v []string) string { return "[" + strings.Join(v, ", ") + "]" }

	fields := []Field{
		{"Root", c.Root},
		{"DatabaseFile", c.DatabaseFile},
		{"LogDir", c.Logs.Dir},
		{"SessionLogFile", c.Logs.Session},
		{"PoisonersLogFile", c.Logs.Poisoners},
		{"AnalyzeLogFile", c.Logs.Analyze},

		{"HTTP", b(c.Servers.HTTP)},
		{"HTTPS", b(c.Servers.HTTPS)},
		{"SMB", b(c.Servers.SMB)},
		{"SQL", b(c.Servers.SQL)},
		{"FTP", b(c.Servers.FTP)},
		{"POP", b(c.Servers.POP)},
		{"IMAP", b(c.Servers.IMAP)},
		{"SMTP", b(c.Servers.SMTP)},
		{"LDAP", b(c.Servers.LDAP)},
		{"DNS", b(c.Servers.DNS)},
		{"Kerberos", b(c.Servers.Kerberos)},

		{"ServeExe", b(c.HTTP.ServeExe)},
		{"ServeAlways", b(c.HTTP.ServeAlways)},
		{"ServeHTML", b(c.HTTP.ServeHTML)},
		{"HTMLFilename", c.HTTP.HTMLFilename},
		{"ExeFilename", c.HTTP.ExeFilename},
		{"ExeDownloadName", c.HTTP.ExeDownloadName},
		{"WPADScript", c.HTTP.WPADScript},
		{"HTMLToInject", c.HTTP.HTMLToInject},
		{"SSLKey", c.TLS.SSLKey},
		{"SSLCert", c.TLS.SSLCert},

		{"RespondTo", list(c.Filters.RespondTo)},
		{"RespondToName", list(c.Filters.RespondToName)},
		{"DontRespondTo", list(c.Filters.DontRespondTo)},
		{"DontRespondToName", list(c.Filters.DontRespondToName)},
		{"AutoIgnore", b(c.AutoIgnore)},
		{"CaptureMultipleCredentials", b(c.CaptureMultipleCredentials)},
		{"AutoIgnoreList", list(c.AutoIgnoreList.Snapshot())},

		{"Interface", c.Interface},
		{"OurIP", c.OurIP},
		{"LMDowngrade", b(c.LMDowngrade)},
		{"WPAD", b(c.WPAD)},
		{"WRedirect", b(c.WRedirect)},
		{"NBTNSDomain", b(c.NBTNSDomain)},
		{"BasicAuth", b(c.BasicAuth)},
		{"Fingerprint", b(c.Fingerprint)},
		{"ForceWPADAuth", b(c.ForceWPADAuth)},
		{"UpstreamProxy", c.UpstreamProxy},
		{"Analyze", b(c.Analyze)},
		{"Verbose", b(c.Verbose)},

		{"CommandLine", c.CommandLine},
		{"BindTo", c.BindTo},
		{"OSVersion", c.OSVersion},
		{"NumChallenge", c.NumChallenge},
		{"Challenge", c.Challenge.String()},
	}

	for _, cat := range logsink.Categories() {
		if path, ok := c.Credentials[cat]; ok {
			fields = append(fields, Field{"Credentials." + cat.String(), path})
		}
	}
	return fields
}

func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("Settings:\n")
	for _, f := range c.Fields() {
		fmt.Fprintf(&sb, "    %s = %s\n", f.Name, strings.TrimSpace(f.Value))
	}
	return sb.String()
}
