// Command kyberkem is a JSON-over-stdio harness for the kyberkem package.
//
// Usage:
//
//	kyberkem [-scheme NAME] [-env FILE] [-v] <command> [args]
//
// Commands read a JSON request from stdin and write a JSON response to
// stdout. Byte fields are base64url without padding.
//
//	keygen             -> {"publicKey", "key"}
//	encaps             {"publicKey"} -> {"ciphertext", "sharedSecret"}
//	decaps             {"key", "ciphertext"} -> {"sharedSecret", "status"}
//	seal               {"publicKey", "plaintext", "aad"} -> sealed payload
//	open               {"key", "payload"} -> {"plaintext"}
//	kat [count]        writes NIST .rsp vectors to stdout
//	kat-check          reads a .rsp file from stdin and checks every vector
//
// The scheme defaults to KYBERKEM_SCHEME, read from the environment or
// from the -env file (default .env), and then to Kyber768.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/vaultsandbox/kyberkem"
	"github.com/vaultsandbox/kyberkem/katgen"
)

const (
	defaultScheme   = "Kyber768"
	defaultEnvFile  = ".env"
	defaultKATCount = 100
	schemeEnvVar    = "KYBERKEM_SCHEME"
)

// Config holds the process environment the commands run against.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
}

// DefaultConfig returns a Config bound to the process.
func DefaultConfig() *Config {
	return &Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
	}
}

// exitFunc is replaced in tests.
var exitFunc = os.Exit

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exitFunc(1)
}

// session is one parsed invocation.
type session struct {
	cfg    *Config
	scheme *kyberkem.Scheme
	logger *slog.Logger
}

func run(args []string, cfg *Config) error {
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	flags := flag.NewFlagSet("kyberkem", flag.ContinueOnError)
	flags.SetOutput(stderr)
	schemeName := flags.String("scheme", "", "parameter set: Kyber512, Kyber768 or Kyber1024")
	envFile := flags.String("env", "", "dotenv file to read "+schemeEnvVar+" from (default "+defaultEnvFile+")")
	verbose := flags.Bool("v", false, "log debug output to stderr")

	if len(args) == 0 {
		return errors.New("usage: kyberkem [flags] <command> [args]")
	}
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}
	if flags.NArg() < 1 {
		return errors.New("usage: kyberkem [flags] <command> [args]")
	}

	name, err := resolveScheme(*schemeName, *envFile, cfg)
	if err != nil {
		return err
	}
	scheme, err := kyberkem.SchemeByName(name)
	if err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if *verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	s := &session{cfg: cfg, scheme: scheme, logger: logger}
	logger.Debug("running command", "command", flags.Arg(0), "scheme", scheme.Name())

	switch flags.Arg(0) {
	case "keygen":
		return s.keygen()
	case "encaps":
		return s.encaps()
	case "decaps":
		return s.decaps()
	case "seal":
		return s.seal()
	case "open":
		return s.open()
	case "kat":
		return s.kat(flags.Args()[1:])
	case "kat-check":
		return s.katCheck()
	default:
		return fmt.Errorf("unknown command: %s", flags.Arg(0))
	}
}

// resolveScheme picks the scheme name: flag, then environment, then the
// dotenv file, then the default.
func resolveScheme(flagValue, envFile string, cfg *Config) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.Getenv != nil {
		if v := cfg.Getenv(schemeEnvVar); v != "" {
			return v, nil
		}
	}

	path := envFile
	if path == "" {
		path = defaultEnvFile
	}
	env, err := godotenv.Read(path)
	switch {
	case err == nil:
		if v := env[schemeEnvVar]; v != "" {
			return v, nil
		}
	case envFile == "" && errors.Is(err, fs.ErrNotExist):
		// The default file is optional.
	default:
		return "", fmt.Errorf("read env file: %w", err)
	}
	return defaultScheme, nil
}

func (s *session) readRequest(v any) error {
	data, err := io.ReadAll(s.cfg.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse request: %w", err)
	}
	return nil
}

func (s *session) writeResponse(v any) error {
	if err := json.NewEncoder(s.cfg.Stdout).Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func (s *session) kat(args []string) error {
	count := defaultKATCount
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid count: %q", args[0])
		}
		count = n
	}
	s.logger.Debug("generating vectors", "count", count)
	if err := katgen.Generate(s.scheme, count, s.cfg.Stdout); err != nil {
		return fmt.Errorf("generate vectors: %w", err)
	}
	return nil
}

func (s *session) katCheck() error {
	name, vectors, err := katgen.Parse(s.cfg.Stdin)
	if err != nil {
		return fmt.Errorf("parse vectors: %w", err)
	}

	scheme := s.scheme
	if name != "" {
		if scheme, err = kyberkem.SchemeByName(name); err != nil {
			return err
		}
	}
	if err := katgen.Check(scheme, vectors); err != nil {
		return err
	}
	return s.writeResponse(map[string]any{"scheme": scheme.Name(), "checked": len(vectors)})
}
