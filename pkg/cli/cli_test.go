package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/A-mIn3/eaphammer/pkg/config"
	"github.com/A-mIn3/eaphammer/pkg/netif"
)

const testConf = `[Responder Core]
SQL = On
SMB = On
Kerberos = On
FTP = Off
POP = On
SMTP = On
IMAP = On
HTTP = On
HTTPS = On
DNS = On
LDAP = On
Database = Responder.db
SessionLog = Responder-Session.log
PoisonersLog = Poisoners-Session.log
AnalyzeLog = Analyzer-Session.log
RespondTo = 10.20.30.40-41
RespondToName =
DontRespondTo =
DontRespondToName = ISATAP
AutoIgnoreAfterSuccess = Off
CaptureMultipleCredentials = On
Challenge = 1122334455667788

[HTTP Server]
Serve-Always = Off
Serve-Exe = Off
Serve-Html = Off
HtmlFilename = files/AccessDenied.html
ExeFilename = files/BindShell.exe
ExeDownloadName = ProxyClient.exe
WPADScript = function FindProxyForURL(url, host){return 'DIRECT';}
HTMLToInject = <img src='file://RespProxySrv/pictures/logo.jpg'>

[HTTPS Server]
SSLCert = certs/responder.crt
SSLKey = certs/responder.key
`

func writeConf(t *testing.T, root, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, "Responder.conf"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func executeCancelled(t *testing.T, args []string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	deps := &config.Deps{Discovery: netif.Static("10.0.0.50"), GOOS: "linux"}
	cmd := NewRootCommand(&out, deps)
	cmd.SetArgs(args)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestExecute(t *testing.T) {
	root := t.TempDir()
	writeConf(t, root, testConf)

	out, err := executeCancelled(t, []string{"-I", "eth0", "--root", root, "-w", "--lm"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	for _, want := range []string{
		"[+] Servers:",
		"Responder NIC                [eth0]",
		"Responder IP                 [10.0.0.50]",
		"Challenge set                [1122334455667788]",
		"WPAD proxy                   [ON]",
		"FTP server                   [OFF]",
		"Force LM downgrade           [ON]",
		"[10.20.30.40, 10.20.30.41]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}

	session, err := os.ReadFile(filepath.Join(root, "logs", "Responder-Session.log"))
	if err != nil {
		t.Fatalf("session log: %v", err)
	}
	if !strings.Contains(string(session), "Responder Started") || !strings.Contains(string(session), "--wpad") {
		t.Errorf("session log lacks start banner:\n%s", session)
	}
}

func TestExecuteMissingInterface(t *testing.T) {
	root := t.TempDir()
	writeConf(t, root, testConf)

	_, err := executeCancelled(t, []string{"--root", root})
	if !errors.Is(err, config.ErrMissingMandatoryOption) {
		t.Fatalf("err = %v, want ErrMissingMandatoryOption", err)
	}
	if _, statErr := os.Stat(filepath.Join(root, "logs")); !os.IsNotExist(statErr) {
		t.Error("log dir created despite missing interface")
	}
}

func TestExecuteMalformedChallenge(t *testing.T) {
	root := t.TempDir()
	writeConf(t, root, strings.Replace(testConf, "Challenge = 1122334455667788", "Challenge = 11223344", 1))

	_, err := executeCancelled(t, []string{"-I", "eth0", "--root", root})
	if config.ExitCode(err) != config.ExitMalformedChallenge {
		t.Fatalf("err = %v, exit code %d", err, config.ExitCode(err))
	}
	if _, statErr := os.Stat(filepath.Join(root, "logs", "Responder-Session.log")); !os.IsNotExist(statErr) {
		t.Error("session log created despite malformed challenge")
	}
}

func TestExecuteConfigFlag(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "custom.conf")
	if err := os.WriteFile(conf, []byte(testConf), 0o600); err != nil {
		t.Fatal(err)
	}
	root := t.TempDir()

	if _, err := executeCancelled(t, []string{"-I", "eth0", "--root", root, "--config", conf}); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestExecuteEnvInterface(t *testing.T) {
	root := t.TempDir()
	writeConf(t, root, testConf)
	t.Setenv("RESPONDER_INTERFACE", "eth1")

	out, err := executeCancelled(t, []string{"--root", root})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "[eth1]") {
		t.Errorf("interface from environment not used:\n%s", out)
	}
}

func TestSummarize(t *testing.T) {
	entries := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}
	if got := summarize(entries); got != "[1, 2, 3, 4, 5, 6, 7, 8, ... 2 more]" {
		t.Errorf("summarize = %s", got)
	}
	if got := summarize(entries[:2]); got != "[1, 2]" {
		t.Errorf("summarize = %s", got)
	}
}
