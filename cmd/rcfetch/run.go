package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"rcfetch/internal/config"
	"rcfetch/internal/console"
	"rcfetch/internal/diskspace"
	"rcfetch/internal/progress"
	"rcfetch/internal/rclone"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

const modeProgress = "1"

// errDownloadFailed marks a failure that run has already reported to the user.
var errDownloadFailed = errors.New("download failed")

type options struct {
	cfg        *config.Config
	configPath string
	mode       string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	cfg := opts.cfg

	logs := &logOutput{}
	if err := logs.apply(cfg.GetLogging(), stderr); err != nil {
		return err
	}
	defer logs.Close()

	if opts.configPath != "" {
		slog.Info("configuration loaded", "config_path", opts.configPath)

		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		if err := cfg.Watch(watchCtx, opts.configPath); err != nil {
			slog.Warn("config hot reload disabled", "error", err)
		} else {
			changes := cfg.WatchForChanges()
			go func() {
				for {
					select {
					case <-watchCtx.Done():
						return
					case <-changes:
						slog.Info("configuration changed, updating logging")
						if err := logs.apply(cfg.GetLogging(), stderr); err != nil {
							slog.Error("failed to apply logging config", "error", err)
						}
					}
				}
			}()
		}
	}

	copyCfg := cfg.GetCopy()
	if copyCfg.URL == "" {
		return fmt.Errorf("no source url given (use -url or copy.url)")
	}
	if copyCfg.Remote == "" && !copyCfg.AutoFilename {
		return fmt.Errorf("no destination given (use -remote or copy.remote)")
	}

	rcloneCfg := cfg.GetRClone()
	slog.Info("initializing RClone client", "url", rcloneCfg.URL)
	client := rclone.NewClient(
		rclone.Credentials{
			Username: rcloneCfg.Username,
			Password: rcloneCfg.Password,
			BaseURL:  rcloneCfg.URL,
		},
		rclone.WithTimeout(rcloneCfg.Timeout),
		rclone.WithStatsTimeout(rcloneCfg.StatsTimeout),
	)

	req := rclone.CopyURLRequest{
		URL:          copyCfg.URL,
		Fs:           copyCfg.Fs,
		Remote:       copyCfg.Remote,
		AutoFilename: copyCfg.AutoFilename,
		NoClobber:    copyCfg.NoClobber,
	}

	logDestinationSpace(rcloneCfg.URL, req)

	fmt.Fprintf(stdout, "Starting download: %s\n", req.URL)

	var (
		result *rclone.CopyURLResult
		final  progress.Event
	)
	err = client.Ping(ctx)
	if err == nil {
		if opts.mode == modeProgress {
			progressCfg := cfg.GetProgress()
			renderer := console.NewRenderer(stdout, progressCfg.ClearScreen && isTerminal(stdout))
			sink := func(ev progress.Event) {
				if ev.Finished {
					final = ev
				}
				renderer.Render(ev)
			}
			reporter := progress.New(client, sink, progress.WithInterval(progressCfg.Interval))
			result, err = reporter.Copy(ctx, req)
		} else {
			result, err = client.CopyURL(ctx, req)
		}
	}

	if err != nil {
		fmt.Fprintf(stderr, "\nDownload failed: %s\n", err)
		return fmt.Errorf("%w: %w", errDownloadFailed, err)
	}

	fmt.Fprintln(stdout, "\nDownload completed successfully!")
	if final.Stats != nil && final.Stats.Bytes > 0 {
		fmt.Fprintf(stdout, "Transferred: %s (%s bytes) in %s\n",
			console.FormatBytes(float64(final.Stats.Bytes)),
			humanize.Comma(final.Stats.Bytes),
			(time.Duration(final.Stats.ElapsedTime * float64(time.Second))).Round(time.Millisecond))
	}
	fmt.Fprintf(stdout, "Result: %s\n", result)

	return nil
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("rcfetch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: rcfetch [flags] [mode]")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Modes:")
		fmt.Fprintln(stderr, "  1  download with progress monitoring (default)")
		fmt.Fprintln(stderr, "  2  simple download (no progress)")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Flags:")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "Path to config file (default $RCFETCH_CONFIG or ./rcfetch.yaml)")
	rcURL := fs.String("rc-url", "", "Base URL of the rclone RC daemon")
	user := fs.String("user", "", "RC basic-auth username")
	pass := fs.String("pass", "", "RC basic-auth password")
	srcURL := fs.String("url", "", "URL to download")
	fsName := fs.String("fs", "", "rclone remote to copy into, e.g. local or drive:")
	remote := fs.String("remote", "", "Path inside the remote to write to")
	interval := fs.Duration("interval", 0, "Progress polling interval")
	timeout := fs.Duration("timeout", 0, "Give up on the copy after this long (0 waits forever)")
	autoFilename := fs.Bool("auto-filename", false, "Let rclone derive the file name from the URL")
	noClobber := fs.Bool("no-clobber", false, "Fail instead of overwriting an existing file")
	noClear := fs.Bool("no-clear", false, "Do not clear the screen between progress frames")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}

	path := getConfigPath(*configPath)
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rc-url":
			cfg.Rclone.URL = *rcURL
		case "user":
			cfg.Rclone.Username = *user
		case "pass":
			cfg.Rclone.Password = *pass
		case "url":
			cfg.Copy.URL = *srcURL
		case "fs":
			cfg.Copy.Fs = *fsName
		case "remote":
			cfg.Copy.Remote = *remote
		case "interval":
			cfg.Progress.Interval = *interval
		case "timeout":
			cfg.Rclone.Timeout = *timeout
		case "auto-filename":
			cfg.Copy.AutoFilename = *autoFilename
		case "no-clobber":
			cfg.Copy.NoClobber = *noClobber
		case "no-clear":
			cfg.Progress.ClearScreen = !*noClear
		case "log-level":
			cfg.Logging.Level = *logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	mode := fs.Arg(0)
	if mode == "" {
		mode = modeProgress
	}

	return &options{cfg: cfg, configPath: path, mode: mode}, nil
}

func getConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if configPath := os.Getenv("RCFETCH_CONFIG"); configPath != "" {
		return configPath
	}

	// Try common paths
	candidates := []string{"./rcfetch.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "rcfetch", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// logDestinationSpace reports free space when the daemon writes to this machine's disk
func logDestinationSpace(rcURL string, req rclone.CopyURLRequest) {
	if req.Fs != "local" || req.Remote == "" || !isLoopback(rcURL) {
		return
	}

	dir := req.Remote
	if !req.AutoFilename {
		dir = filepath.Dir(req.Remote)
	}

	free, err := diskspace.Free(dir)
	if err != nil {
		slog.Debug("could not check destination free space", "path", dir, "error", err)
		return
	}
	slog.Info("destination free space", "path", dir, "free", humanize.IBytes(free))
}

func isLoopback(rcURL string) bool {
	u, err := url.Parse(rcURL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
