package logsink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Placeholder is replaced by the client address when a credential file is
// opened.
const Placeholder = "%s"

// Category identifies one protocol/credential type pair.
type Category int

const (
	FTPClear Category = iota
	IMAPClear
	POP3Clear
	HTTPBasic
	LDAPClear
	SMBClear
	SMTPClear
	MSSQLClear
	LDAPNTLMv1
	HTTPNTLMv1
	HTTPNTLMv2
	Kerberos
	MSSQLNTLMv1
	MSSQLNTLMv2
	SMBNTLMv1
	SMBNTLMv2
	SMBNTLMSSPv1
	SMBNTLMSSPv2

	numCategories
)

var categoryFiles = [numCategories]struct {
	name string
	file string
}{
	FTPClear:     {"ftp", "FTP-Clear-Text-Password-%s.txt"},
	IMAPClear:    {"imap", "IMAP-Clear-Text-Password-%s.txt"},
	POP3Clear:    {"pop3", "POP3-Clear-Text-Password-%s.txt"},
	HTTPBasic:    {"http-basic", "HTTP-Clear-Text-Password-%s.txt"},
	LDAPClear:    {"ldap-clear", "LDAP-Clear-Text-Password-%s.txt"},
	SMBClear:     {"smb-clear", "SMB-Clear-Text-Password-%s.txt"},
	SMTPClear:    {"smtp-clear", "SMTP-Clear-Text-Password-%s.txt"},
	MSSQLClear:   {"mssql-clear", "MSSQL-Clear-Text-Password-%s.txt"},
	LDAPNTLMv1:   {"ldap-ntlmv1", "LDAP-NTLMv1-Client-%s.txt"},
	HTTPNTLMv1:   {"http-ntlmv1", "HTTP-NTLMv1-Client-%s.txt"},
	HTTPNTLMv2:   {"http-ntlmv2", "HTTP-NTLMv2-Client-%s.txt"},
	Kerberos:     {"kerberos", "MSKerberos-Client-%s.txt"},
	MSSQLNTLMv1:  {"mssql-ntlmv1", "MSSQL-NTLMv1-Client-%s.txt"},
	MSSQLNTLMv2:  {"mssql-ntlmv2", "MSSQL-NTLMv2-Client-%s.txt"},
	SMBNTLMv1:    {"smb-ntlmv1", "SMB-NTLMv1-Client-%s.txt"},
	SMBNTLMv2:    {"smb-ntlmv2", "SMB-NTLMv2-Client-%s.txt"},
	SMBNTLMSSPv1: {"smb-ntlmsspv1", "SMB-NTLMSSPv1-Client-%s.txt"},
	SMBNTLMSSPv2: {"smb-ntlmsspv2", "SMB-NTLMSSPv2-Client-%s.txt"},
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, numCategories)
	for c := Category(0); c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}

func (c Category) valid() bool {
	return c >= 0 && c < numCategories
}

func (c Category) String() string {
	if !c.valid() {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryFiles[c].name
}

// Paths maps each credential category to its file template.
type Paths map[Category]string

// Templates builds the credential file templates below dir. Nothing is
// created on disk.
func Templates(dir string) Paths {
	paths := make(Paths, numCategories)
	for _, c := range Categories() {
		paths[c] = filepath.Join(dir, categoryFiles[c].file)
	}
	return paths
}

// For returns the file for category c and client address client.
func (p Paths) For(c Category, client string) (string, error) {
	tmpl, ok := p[c]
	if !ok {
		return "", fmt.Errorf("unknown credential category %s", c)
	}
	// Only the file name carries the placeholder; the log dir is literal.
	dir, name := filepath.Split(tmpl)
	return dir + strings.Replace(name, Placeholder, client, 1), nil
}

// Open opens the credential file of c for client in append mode, creating
// it on first use.
func (p Paths) Open(fs afero.Fs, c Category, client string) (afero.File, error) {
	path, err := p.For(c, client)
	if err != nil {
		return nil, err
	}
	file, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) // #nosec G304 -- template derived from the log dir.
	if err != nil {
		return nil, fmt.Errorf("open %s log: %w", c, err)
	}
	return file, nil
}
