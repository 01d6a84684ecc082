package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

const (
	defaultConfigName = "Responder.conf"
	configEnvVar      = "RESPONDER_CONFIG"
)

// Section names of the raw configuration file.
const (
	SectionCore  = "Responder Core"
	SectionHTTP  = "HTTP Server"
	SectionHTTPS = "HTTPS Server"
)

// RawSource exposes named sections of string key/value pairs. Keys are
// matched case-insensitively.
type RawSource interface {
	Section(name string) (map[string]string, error)
}

// ConfigPath picks the configuration file: the explicit path if given, then
// the RESPONDER_CONFIG environment variable, then Responder.conf in root.
func ConfigPath(root, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if fromEnv := strings.TrimSpace(os.Getenv(configEnvVar)); fromEnv != "" {
		return fromEnv
	}
	return filepath.Join(root, defaultConfigName)
}

// FileSource reads an INI file on first access.
type FileSource struct {
	path     string
	once     sync.Once
	settings map[string]any
	err      error
}

// NewFileSource returns a source for the INI file at path. Nothing is read
// until a section is requested.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the configuration file path.
func (s *FileSource) Path() string {
	return s.path
}

// Section implements RawSource.
func (s *FileSource) Section(name string) (map[string]string, error) {
	s.once.Do(s.load)
	if s.err != nil {
		return nil, s.err
	}
	return cast.ToStringMapString(s.settings[strings.ToLower(name)]), nil
}

func (s *FileSource) load() {
	// Values such as WPADScript contain ';' and '#', so inline comments are
	// not stripped.
	v := viper.NewWithOptions(viper.IniLoadOptions(ini.LoadOptions{IgnoreInlineComment: true}))
	v.SetConfigFile(s.path)
	v.SetConfigType("ini")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		s.err = fmt.Errorf("read config: %w", err)
		return
	}
	s.settings = v.AllSettings()
}

func setDefaults(v *viper.Viper) {
	core := strings.ToLower(SectionCore)
	v.SetDefault(core+".database", "Responder.db")
	v.SetDefault(core+".sessionlog", "Responder-Session.log")
	v.SetDefault(core+".poisonerslog", "Poisoners-Session.log")
	v.SetDefault(core+".analyzelog", "Analyzer-Session.log")
}

// MapSource is an in-memory RawSource.
type MapSource map[string]map[string]string

// Section implements RawSource.
func (m MapSource) Section(name string) (map[string]string, error) {
	for section, values := range m {
		if !strings.EqualFold(section, name) {
			continue
		}
		out := make(map[string]string, len(values))
		for k, v := range values {
			out[strings.ToLower(k)] = v
		}
		return out, nil
	}
	return map[string]string{}, nil
}

// CoreSection holds the raw [Responder Core] values.
type CoreSection struct {
	HTTP     string `mapstructure:"http"`
	HTTPS    string `mapstructure:"https"`
	SMB      string `mapstructure:"smb"`
	SQL      string `mapstructure:"sql"`
	FTP      string `mapstructure:"ftp"`
	POP      string `mapstructure:"pop"`
	IMAP     string `mapstructure:"imap"`
	SMTP     string `mapstructure:"smtp"`
	LDAP     string `mapstructure:"ldap"`
	DNS      string `mapstructure:"dns"`
	Kerberos string `mapstructure:"kerberos"`

	Database     string `mapstructure:"database"`
	SessionLog   string `mapstructure:"sessionlog"`
	PoisonersLog string `mapstructure:"poisonerslog"`
	AnalyzeLog   string `mapstructure:"analyzelog"`

	RespondTo         string `mapstructure:"respondto"`
	RespondToName     string `mapstructure:"respondtoname"`
	DontRespondTo     string `mapstructure:"dontrespondto"`
	DontRespondToName string `mapstructure:"dontrespondtoname"`

	AutoIgnoreAfterSuccess     string `mapstructure:"autoignoreaftersuccess"`
	CaptureMultipleCredentials string `mapstructure:"capturemultiplecredentials"`
	Challenge                  string `mapstructure:"challenge"`
}

// HTTPSection holds the raw [HTTP Server] values.
type HTTPSection struct {
	ServeExe        string `mapstructure:"serve-exe"`
	ServeAlways     string `mapstructure:"serve-always"`
	ServeHTML       string `mapstructure:"serve-html"`
	HTMLFilename    string `mapstructure:"htmlfilename"`
	ExeFilename     string `mapstructure:"exefilename"`
	ExeDownloadName string `mapstructure:"exedownloadname"`
	WPADScript      string `mapstructure:"wpadscript"`
	HTMLToInject    string `mapstructure:"htmltoinject"`
}

// HTTPSSection holds the raw [HTTPS Server] values.
type HTTPSSection struct {
	SSLKey  string `mapstructure:"sslkey"`
	SSLCert string `mapstructure:"sslcert"`
}

// Sections is the decoded raw configuration.
type Sections struct {
	Core  CoreSection
	HTTP  HTTPSection
	HTTPS HTTPSSection
}

// ReadSections decodes the three sections used by the resolver. Missing keys
// decode to empty strings.
func ReadSections(raw RawSource) (Sections, error) {
	var s Sections
	targets := []struct {
		name string
		out  any
	}{
		{SectionCore, &s.Core},
		{SectionHTTP, &s.HTTP},
		{SectionHTTPS, &s.HTTPS},
	}
	for _, target := range targets {
		values, err := raw.Section(target.name)
		if err != nil {
			return Sections{}, err
		}
		if err := mapstructure.Decode(values, target.out); err != nil {
			return Sections{}, fmt.Errorf("parse [%s]: %w", target.name, err)
		}
	}
	return s, nil
}
