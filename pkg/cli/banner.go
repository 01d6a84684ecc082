package cli

import (
	"fmt"
	"strings"

	"github.com/A-mIn3/eaphammer/pkg/config"
)

func onOff(v bool) string {
	if v {
		return "[ON]"
	}
	return "[OFF]"
}

// Banner renders the startup summary of a resolved configuration.
func Banner(cfg *config.Config) string {
	var sb strings.Builder
	line := func(name, value string) {
		fmt.Fprintf(&sb, "    %-28s %s\n", name, value)
	}

	sb.WriteString("\n[+] Poisoners:\n")
	line("LLMNR", onOff(!cfg.Analyze))
	line("NBT-NS", onOff(!cfg.Analyze))
	line("DNS/MDNS", onOff(!cfg.Analyze))

	sb.WriteString("\n[+] Servers:\n")
	line("HTTP server", onOff(cfg.Servers.HTTP))
	line("HTTPS server", onOff(cfg.Servers.HTTPS))
	line("WPAD proxy", onOff(cfg.WPAD))
	line("SMB server", onOff(cfg.Servers.SMB))
	line("Kerberos server", onOff(cfg.Servers.Kerberos))
	line("SQL server", onOff(cfg.Servers.SQL))
	line("FTP server", onOff(cfg.Servers.FTP))
	line("IMAP server", onOff(cfg.Servers.IMAP))
	line("POP3 server", onOff(cfg.Servers.POP))
	line("SMTP server", onOff(cfg.Servers.SMTP))
	line("DNS server", onOff(cfg.Servers.DNS))
	line("LDAP server", onOff(cfg.Servers.LDAP))

	sb.WriteString("\n[+] HTTP Options:\n")
	line("Always serving EXE", onOff(cfg.HTTP.ServeAlways))
	line("Serving EXE", onOff(cfg.HTTP.ServeExe))
	line("Serving HTML", onOff(cfg.HTTP.ServeHTML))
	line("Upstream Proxy", onOff(cfg.UpstreamProxy != ""))

	sb.WriteString("\n[+] Poisoning Options:\n")
	line("Analyze Mode", onOff(cfg.Analyze))
	line("Force WPAD auth", onOff(cfg.ForceWPADAuth))
	line("Force Basic Auth", onOff(cfg.BasicAuth))
	line("Force LM downgrade", onOff(cfg.LMDowngrade))
	line("Fingerprint hosts", onOff(cfg.Fingerprint))

	sb.WriteString("\n[+] Generic Options:\n")
	line("Responder NIC", "["+cfg.Interface+"]")
	line("Responder IP", "["+cfg.BindTo+"]")
	line("Challenge set", "["+cfg.NumChallenge+"]")
	if len(cfg.Filters.RespondTo) > 0 {
		line("Respond To", summarize(cfg.Filters.RespondTo))
	}
	if len(cfg.Filters.RespondToName) > 0 {
		line("Respond To Names", summarize(cfg.Filters.RespondToName))
	}
	if len(cfg.Filters.DontRespondTo) > 0 {
		line("Don't Respond To", summarize(cfg.Filters.DontRespondTo))
	}
	if len(cfg.Filters.DontRespondToName) > 0 {
		line("Don't Respond To Names", summarize(cfg.Filters.DontRespondToName))
	}
	if cfg.AutoIgnore {
		line("Auto-ignore after success", onOff(true))
	}
	sb.WriteString("\n")
	return sb.String()
}

// summarize lists up to eight entries and counts the rest.
func summarize(entries []string) string {
	const shown = 8
	if len(entries) <= shown {
		return "[" + strings.Join(entries, ", ") + "]"
	}
	return fmt.Sprintf("[%s, ... %d more]", strings.Join(entries[:shown], ", "), len(entries)-shown)
}
