// Package cli wires the command line flags and runs settings resolution.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/A-mIn3/eaphammer/pkg/config"
	"github.com/A-mIn3/eaphammer/pkg/logger"
	"github.com/A-mIn3/eaphammer/pkg/version"
)

const envPrefix = "RESPONDER"

// Execute parses args, resolves the configuration and waits until ctx is
// done. The returned error carries the resolution failure, if any; use
// config.ExitCode to turn it into an exit status.
func Execute(ctx context.Context, args []string, stdout io.Writer) error {
	cmd := NewRootCommand(stdout, nil)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// NewRootCommand builds the responder command. deps overrides the
// collaborators used during resolution; nil uses the host.
func NewRootCommand(stdout io.Writer, deps *config.Deps) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "responder",
		Short:         "LLMNR/NBT-NS/mDNS poisoner with rogue authentication servers",
		Version:       version.ResponderVersion,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var d config.Deps
			if deps != nil {
				d = *deps
			}
			if d.Args == nil {
				d.Args = append([]string{cmd.CommandPath()}, flagArgs(cmd.Flags())...)
			}
			return run(cmd.Context(), optionsFrom(v), d, stdout)
		},
	}
	cmd.SetOut(stdout)

	registerFlags(cmd.Flags())
	_ = v.BindPFlags(cmd.Flags())
	return cmd
}

func registerFlags(fs *pflag.FlagSet) {
	fs.StringP("interface", "I", "", "Network interface to use, use 'ALL' for all interfaces")
	fs.StringP("ip", "i", "", "Local IP to use (only for OSX)")
	fs.BoolP("analyze", "A", false, "Analyze mode. See NBT-NS, BROWSER, LLMNR requests without responding")
	fs.BoolP("wredir", "r", false, "Enable answers for netbios wredir suffix queries")
	fs.BoolP("NBTNSdomain", "d", false, "Enable answers for netbios domain suffix queries")
	fs.BoolP("fingerprint", "f", false, "Fingerprint a host that issued an NBT-NS or LLMNR query")
	fs.BoolP("wpad", "w", false, "Start the WPAD rogue proxy server")
	fs.StringP("upstream-proxy", "u", "", "Upstream HTTP proxy used by the rogue WPAD proxy for outgoing requests (format: host:port)")
	fs.BoolP("ForceWpadAuth", "F", false, "Force NTLM/Basic authentication on wpad.dat file retrieval")
	fs.BoolP("basic", "b", false, "Return a Basic HTTP authentication instead of NTLM")
	fs.Bool("lm", false, "Force LM hashing downgrade for Windows XP/2003 and earlier")
	fs.BoolP("verbose", "v", false, "Increase verbosity")
	fs.String("config", "", "Configuration file (default <root>/Responder.conf, or $RESPONDER_CONFIG)")
	fs.String("root", ".", "Responder directory holding the database and logs")
}

func optionsFrom(v *viper.Viper) config.Options {
	return config.Options{
		Interface:     v.GetString("interface"),
		OurIP:         v.GetString("ip"),
		LMDowngrade:   v.GetBool("lm"),
		WPAD:          v.GetBool("wpad"),
		WRedirect:     v.GetBool("wredir"),
		NBTNSDomain:   v.GetBool("NBTNSdomain"),
		BasicAuth:     v.GetBool("basic"),
		Fingerprint:   v.GetBool("fingerprint"),
		ForceWPADAuth: v.GetBool("ForceWpadAuth"),
		UpstreamProxy: v.GetString("upstream-proxy"),
		Analyze:       v.GetBool("analyze"),
		Verbose:       v.GetBool("verbose"),
		Root:          v.GetString("root"),
		ConfigFile:    v.GetString("config"),
	}
}

// flagArgs reconstructs the flags given on the command line for the
// session log banner.
func flagArgs(fs *pflag.FlagSet) []string {
	var out []string
	fs.Visit(func(f *pflag.Flag) {
		if f.Value.Type() == "bool" {
			out = append(out, "--"+f.Name)
			return
		}
		out = append(out, "--"+f.Name, f.Value.String())
	})
	return out
}

func run(ctx context.Context, opts config.Options, deps config.Deps, stdout io.Writer) error {
	console := logger.Setup(logger.Level(opts.Verbose), stdout)
	if deps.Console == nil {
		deps.Console = console
	}

	src := config.NewFileSource(config.ConfigPath(opts.Root, opts.ConfigFile))
	cfg, err := config.Resolve(opts, src, deps)
	if err != nil {
		return err
	}
	defer func() {
		if err := cfg.Close(); err != nil {
			console.Error("failed to close log files", "error", err)
		}
	}()

	if _, err := fmt.Fprint(stdout, Banner(cfg)); err != nil {
		return err
	}
	console.Info("listening for events", "bind", cfg.BindTo)

	<-ctx.Done()
	console.Info("received shutdown signal")
	return nil
}
