package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/saylorsolutions/cryptee/cmd/internal"
	"github.com/saylorsolutions/cryptee/pkg/cryptee"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"
)

var (
	version = "dev"
)

const (
	keyEnvVar = "CRYPTEE_KEY"
)

func main() {
	a := &app{
		getenv:       os.Getenv,
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		readPassword: readTerminalPassword,
	}
	if err := a.run(os.Args[1:]); err != nil {
		internal.Fatal("%v", err)
	}
}

type app struct {
	getenv       func(string) string
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer
	readPassword func() ([]byte, error)

	log         zerolog.Logger
	helpFlag    bool
	versionFlag bool
	keyFlag     string
	keyFileFlag string
	promptFlag  bool
	hexFlag     bool
	urlSafeFlag bool
	legacyFlag  bool
	verboseFlag bool
	lengthFlag  int
}

func (a *app) run(args []string) error {
	flags := flag.NewFlagSet("cryptee", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.BoolVarP(&a.helpFlag, "help", "h", false, "Prints this usage information.")
	flags.BoolVar(&a.versionFlag, "version", false, "Prints the version of this tool.")
	flags.StringVarP(&a.keyFlag, "key", "k", "", "Key to use. Prefer --key-file or $"+keyEnvVar+" to keep the key out of shell history.")
	flags.StringVarP(&a.keyFileFlag, "key-file", "f", "", "Key file to read the key and mode from. With genkey, the key file to create.")
	flags.BoolVarP(&a.promptFlag, "prompt", "p", false, "Read the key from the terminal without echoing it.")
	flags.BoolVarP(&a.hexFlag, "hex", "x", false, "Use hex framing instead of Base64.")
	flags.BoolVarP(&a.urlSafeFlag, "url-safe", "u", false, "Use URL-safe Base64 without padding. Ignored with --hex.")
	flags.BoolVar(&a.legacyFlag, "legacy", false, "Use the legacy key schedule that leaves the last table slot unseeded.")
	flags.BoolVarP(&a.verboseFlag, "verbose", "v", false, "Log diagnostic information to stderr.")
	flags.IntVarP(&a.lengthFlag, "length", "l", cryptee.DefaultKeyLength, "Length of the key generated by genkey.")
	flags.Usage = func() {
		_, _ = fmt.Fprintf(a.stdout, `
cryptee obfuscates text with a reversible, key-dependent transform, and frames the output as Base64 or hex.

USAGE:  cryptee [FLAGS] COMMAND [INPUT]

COMMANDS:
    encode  Obfuscates INPUT and prints the framed text.
    decode  Reverses encode, and writes the original bytes to stdout.
    genkey  Prints a new random key, or writes it to --key-file.

INPUT is read from stdin if it's omitted or given as "-".

KEYS:
    A key must have at least %d characters, including at least one alpha-numeric character and one of %s
    The key is taken from the first of --key, --key-file, --prompt, or the %s environment variable.

FLAGS:
%s
SECURITY:
    This is not encryption, this is obfuscation, and they are very different things!
The same key and input always produce the same output, and the transform has no integrity protection.
`, cryptee.MinKeyLength, cryptee.Punctuation, keyEnvVar, flags.FlagUsages())
	}
	if len(args) == 0 {
		flags.Usage()
		return nil
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("error parsing flags: %w", err)
	}
	if a.helpFlag {
		flags.Usage()
		return nil
	}
	if a.versionFlag {
		internal.Fecho(a.stdout, "cryptee %s", version)
		return nil
	}
	a.log = internal.NewLogger(a.stderr, a.verboseFlag)

	switch cmd := flags.Arg(0); cmd {
	case "":
		return errors.New("missing required COMMAND argument")
	case "encode":
		return a.encode(flags.Arg(1))
	case "decode":
		return a.decode(flags.Arg(1))
	case "genkey":
		return a.genkey()
	default:
		return fmt.Errorf("unknown command '%s'", cmd)
	}
}

func (a *app) encode(arg string) error {
	c, err := a.cipher()
	if err != nil {
		return err
	}
	input, err := a.input(arg)
	if err != nil {
		return err
	}
	out := c.Encode(input, a.urlSafeFlag)
	a.log.Debug().Int("in", len(input)).Int("out", len(out)).Msg("Encoded input")
	internal.Fecho(a.stdout, "%s", out)
	return nil
}

func (a *app) decode(arg string) error {
	c, err := a.cipher()
	if err != nil {
		return err
	}
	input, err := a.input(arg)
	if err != nil {
		return err
	}
	out, err := c.Decode(strings.TrimSpace(string(input)), a.urlSafeFlag)
	if err != nil {
		return fmt.Errorf("failed to decode input: %w", err)
	}
	a.log.Debug().Int("in", len(input)).Int("out", len(out)).Msg("Decoded input")
	_, err = a.stdout.Write(out)
	return err
}

func (a *app) genkey() error {
	if a.lengthFlag < cryptee.MinKeyLength {
		return fmt.Errorf("key length must be at least %d, got %d", cryptee.MinKeyLength, a.lengthFlag)
	}
	key := cryptee.GenerateKey(a.lengthFlag)
	if len(a.keyFileFlag) == 0 {
		internal.Fecho(a.stdout, "%s", string(key))
		return nil
	}
	if _, err := os.Stat(a.keyFileFlag); err == nil {
		return fmt.Errorf("refusing to overwrite existing key file '%s'", a.keyFileFlag)
	}
	if err := cryptee.SaveKeyFile(a.keyFileFlag, key, a.mode(cryptee.Base64)); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	a.log.Debug().Str("path", a.keyFileFlag).Int("length", len(key)).Msg("Wrote key file")
	return nil
}

func (a *app) cipher() (*cryptee.Cipher, error) {
	key, mode, source, err := a.resolveKey()
	if err != nil {
		return nil, err
	}
	opts := []cryptee.Option{cryptee.WithMode(a.mode(mode))}
	if a.legacyFlag {
		opts = append(opts, cryptee.LegacySchedule())
	}
	a.log.Debug().
		Str("source", source).
		Stringer("mode", a.mode(mode)).
		Bool("url_safe", a.urlSafeFlag).
		Bool("legacy", a.legacyFlag).
		Msg("Resolved key")
	return cryptee.New(key, opts...)
}

func (a *app) mode(stored cryptee.Mode) cryptee.Mode {
	if a.hexFlag {
		return cryptee.Hex
	}
	return stored
}

func (a *app) resolveKey() ([]byte, cryptee.Mode, string, error) {
	switch {
	case len(a.keyFlag) > 0:
		return []byte(a.keyFlag), cryptee.Base64, "flag", nil
	case len(a.keyFileFlag) > 0:
		key, mode, err := cryptee.LoadKeyFile(a.keyFileFlag)
		if err != nil {
			return nil, 0, "", fmt.Errorf("failed to load key file: %w", err)
		}
		return key, mode, "file", nil
	case a.promptFlag:
		key, err := a.readPassword()
		if err != nil {
			return nil, 0, "", fmt.Errorf("failed to read key: %w", err)
		}
		return key, cryptee.Base64, "prompt", nil
	}
	if env := a.getenv(keyEnvVar); len(env) > 0 {
		return []byte(env), cryptee.Base64, "env", nil
	}
	return nil, 0, "", fmt.Errorf("no key given, use --key, --key-file, --prompt, or set %s", keyEnvVar)
}

func (a *app) input(arg string) ([]byte, error) {
	if len(arg) > 0 && arg != "-" {
		return []byte(arg), nil
	}
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}

func readTerminalPassword() ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}
	_, _ = fmt.Fprint(os.Stderr, "Key: ")
	key, err := term.ReadPassword(fd)
	internal.Echo("")
	return key, err
}
