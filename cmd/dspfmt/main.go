package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danmuck/dsproto/internal/config"
	"github.com/danmuck/dsproto/internal/logging"
	"github.com/danmuck/dsproto/internal/observability"
	"github.com/danmuck/dsproto/internal/protocol"
	"github.com/rs/zerolog"
)

const usage = `usage: dspfmt [-config path] <command> [flags]

commands:
  auth         -u USER -p PASS          print an authenticate request
  dm           -token T -to R -m BODY   print a direct message request
  fetch        -token T [-mode M]       print a fetch request
  parse                                 read one server response from stdin
  init-config  [-force] PATH            write a config template
`

var (
	// errNotOK marks a well-formed response whose type is not ok.
	errNotOK = errors.New("response type is not ok")
	errUsage = errors.New("usage")
)

type app struct {
	cfg    config.Config
	codec  protocol.Codec
	log    zerolog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	logging.ConfigureRuntime()
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("dspfmt", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := global.String("config", "", "path to a TOML config file")
	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "dspfmt: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	logCfg := logging.Resolve(logging.ProfileRuntime)
	if lvl, ok := logging.ParseLevel(cfg.Log.Level); ok {
		logCfg.Level = lvl
	}
	logCfg.NoColor = logCfg.NoColor || cfg.Log.NoColor
	logger := observability.InitLogger("dspfmt", stderr, logCfg)
	if *configPath != "" {
		logger.Debug().Str("path", *configPath).Msg("loaded config")
	}

	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return 2
	}

	a := &app{
		cfg:    cfg,
		codec:  cfg.Codec.NewCodec(nil),
		log:    logger,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
	err := a.dispatch(rest[0], rest[1:])
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errNotOK):
		return 1
	case errors.Is(err, errUsage):
		fmt.Fprint(stderr, usage)
		return 2
	default:
		logger.Error().Err(err).Str("command", rest[0]).Msg("command failed")
		return 1
	}
}

func (a *app) dispatch(cmd string, args []string) error {
	switch cmd {
	case "auth":
		return a.auth(args)
	case "dm":
		return a.directMessage(args)
	case "fetch":
		return a.fetch(args)
	case "parse":
		return a.parse()
	case "init-config":
		return a.initConfig(args)
	default:
		return errUsage
	}
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) auth(args []string) error {
	fs := a.flagSet("auth")
	user := fs.String("u", "", "username")
	pass := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	_, err := fmt.Fprintln(a.stdout, a.codec.FormatAuthMessage(*user, *pass))
	return err
}

func (a *app) directMessage(args []string) error {
	fs := a.flagSet("dm")
	token := fs.String("token", "", "session token")
	to := fs.String("to", "", "recipient username")
	body := fs.String("m", "", "message text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	_, err := fmt.Fprintln(a.stdout, a.codec.FormatDirectMessage(*token, *to, *body))
	return err
}

func (a *app) fetch(args []string) error {
	fs := a.flagSet("fetch")
	token := fs.String("token", "", "session token")
	mode := fs.String("mode", string(a.cfg.Codec.FetchMode), "all | unread")
	if err := fs.Parse(args); err != nil {
		return err
	}
	out, err := a.codec.FormatFetchRequest(*token, protocol.FetchMode(*mode))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, out)
	return err
}

// parse reads the first line of stdin; the server ends each reply with CRLF.
func (a *app) parse() error {
	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read response: %w", err)
	}
	resp, err := protocol.ExtractJSON(strings.TrimRight(line, "\r\n"))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "type: %s\n", resp.Kind)
	if resp.Message != "" {
		fmt.Fprintf(a.stdout, "message: %s\n", resp.Message)
	}
	if tok, ok := resp.TokenValue(); ok {
		fmt.Fprintf(a.stdout, "token: %s\n", tok)
	}
	for _, dm := range resp.DirectMessages() {
		fmt.Fprintln(a.stdout, dm.String())
	}

	if !protocol.IsValidResponse(resp) {
		a.log.Warn().Str("type", resp.Kind).Str("message", resp.Message).Msg("server rejected request")
		return errNotOK
	}
	return nil
}

func (a *app) initConfig(args []string) error {
	fs := a.flagSet("init-config")
	force := fs.Bool("force", false, "overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}
	return config.WriteTemplate(fs.Arg(0), *force)
}
