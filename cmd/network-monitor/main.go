package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"network-monitor/internal/common/fsutil"
	"network-monitor/internal/config"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr, os.LookupEnv).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "network-monitor:", err)
		os.Exit(1)
	}
}

// cli carries the values of the persistent flags.
type cli struct {
	configPath string
	logLevel   string
	logFormat  string

	addr           string
	serverURL      string
	serverPort     string
	username       string
	password       string
	caCert         string
	layoutURL      string
	layoutFile     string
	corsOrigins    string
	reconnectDelay int

	stdout io.Writer
	stderr io.Writer
	lookup func(string) (string, bool)
}

func newRootCmd(stdout, stderr io.Writer, lookup func(string) (string, bool)) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr, lookup: lookup}
	root := &cobra.Command{
		Use:           "network-monitor",
		Short:         "Live passenger monitor for the transport network",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	c.addFlags(root)
	root.AddCommand(newRunCmd(c), newDownloadCmd(c), newManifestCmd(), newVersionCmd())
	return root
}

// addFlags registers the persistent flags shared by every subcommand.
func (c *cli) addFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "Path to config file (.yaml|.yml|.json|.toml)")
	pf.StringVar(&c.logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	pf.StringVar(&c.logFormat, "log-format", "json", "Log format: json|console")
	pf.StringVar(&c.addr, "addr", "", "HTTP listen address (default "+config.DefaultAddr+")")
	pf.StringVar(&c.serverURL, "server-url", "", "STOMP server host name")
	pf.StringVar(&c.serverPort, "server-port", "", "STOMP server port")
	pf.StringVar(&c.username, "username", "", "STOMP login")
	pf.StringVar(&c.password, "password", "", "STOMP passcode")
	pf.StringVar(&c.caCert, "cacert", "", "PEM bundle used to verify the server certificates")
	pf.StringVar(&c.layoutURL, "layout-url", "", "URL of the network layout")
	pf.StringVar(&c.layoutFile, "layout-file", "", "Local path of the network layout")
	pf.StringVar(&c.corsOrigins, "cors-origins", "", "Comma-separated list of allowed CORS origins")
	pf.IntVar(&c.reconnectDelay, "reconnect-delay", 0, "Seconds to wait between connection attempts")
}

// loadConfig merges, in increasing precedence: defaults, config file, environment, flags.
func (c *cli) loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if c.configPath != "" {
		path, err := fsutil.ExpandHome(c.configPath)
		if err != nil {
			return cfg, err
		}
		if cfg, err = config.Load(path); err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
	}
	if err := config.ApplyEnv(&cfg, c.lookup); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("addr", &cfg.Addr, c.addr)
	set("server-url", &cfg.ServerURL, c.serverURL)
	set("server-port", &cfg.ServerPort, c.serverPort)
	set("username", &cfg.Username, c.username)
	set("password", &cfg.Password, c.password)
	set("cacert", &cfg.CACertFile, c.caCert)
	set("layout-url", &cfg.LayoutURL, c.layoutURL)
	set("layout-file", &cfg.LayoutFile, c.layoutFile)
	if flags.Changed("cors-origins") {
		cfg.CORSOrigins = splitCSV(c.corsOrigins)
	}
	if flags.Changed("reconnect-delay") {
		cfg.ReconnectDelaySeconds = c.reconnectDelay
	}

	cfg.ApplyDefaults()
	if err := fsutil.ExpandAll(&cfg.CACertFile, &cfg.LayoutFile); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *cli) logger() (zerolog.Logger, error) {
	return newLogger(c.stderr, c.logLevel, c.logFormat)
}

func newLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q", level)
	}
	switch strings.ToLower(format) {
	case "json", "":
	case "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", format)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
