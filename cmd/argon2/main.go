// Command argon2 hashes and verifies passwords with Argon2.
//
//	echo -n hunter2 | argon2 hash -config argon2.yaml
//	echo -n hunter2 | argon2 verify -hash '$argon2id$v=19$...'
//
// Parameters come from the config file and ARGON2_* environment
// variables; the secret key from ARGON2_SECRET_KEY (base64). Hashing
// without a key needs ARGON2_OPT_OUT_OF_SECRET_KEY=true.
package main

import (
	"bufio"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	argon "github.com/magical/argonautica"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "hash":
		err = runHash(os.Args[2:], os.Stdin, os.Stdout)
	case "verify":
		var ok bool
		ok, err = runVerify(os.Args[2:], os.Stdin, os.Stdout)
		if err == nil && !ok {
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logrus.WithError(err).Error("argon2 failed")
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: argon2 hash|verify [flags] < password")
}

type common struct {
	config  string
	verbose bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.config, "config", "", "Config file (yaml, json or toml)")
	fs.BoolVar(&c.verbose, "v", false, "Log at debug level")
}

func (c *common) setup() (argon.Config, []argon.Option, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if c.verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	cfg, err := argon.LoadConfig(c.config)
	if err != nil {
		return cfg, nil, err
	}
	opts := []argon.Option{argon.WithLogger(log)}
	if s := os.Getenv(argon.EnvPrefix + "_SECRET_KEY"); s != "" {
		key, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return cfg, nil, fmt.Errorf("decoding %s_SECRET_KEY: %w", argon.EnvPrefix, err)
		}
		opts = append(opts, argon.WithSecretKey(key), argon.WithSecretKeyClearing(false))
	}
	return cfg, opts, nil
}

func runHash(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	var c common
	c.register(fs)
	raw := fs.Bool("raw", false, "Print the raw tag in hex instead of the encoded hash")
	salt := fs.String("salt", "", "Fixed salt instead of a random one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, opts, err := c.setup()
	if err != nil {
		return err
	}
	if *salt != "" {
		opts = append(opts, argon.WithSalt([]byte(*salt)))
	}
	h, err := argon.NewHasher(cfg, opts...)
	if err != nil {
		return err
	}

	password, err := readPassword(stdin)
	if err != nil {
		return err
	}
	encoded, err := h.HashRaw(password)
	if err != nil {
		return err
	}
	if *raw {
		fmt.Fprintln(stdout, hex.EncodeToString(encoded.Tag))
	} else {
		fmt.Fprintln(stdout, encoded)
	}
	return nil
}

func runVerify(args []string, stdin io.Reader, stdout io.Writer) (bool, error) {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	var c common
	c.register(fs)
	encoded := fs.String("hash", "", "Encoded hash to verify against")
	if err := fs.Parse(args); err != nil {
		return false, err
	}
	if *encoded == "" {
		return false, errors.New("-hash is required")
	}

	cfg, opts, err := c.setup()
	if err != nil {
		return false, err
	}
	password, err := readPassword(stdin)
	if err != nil {
		return false, err
	}
	ok, err := argon.NewVerifier(cfg, opts...).Verify(*encoded, password)
	if err != nil {
		return false, err
	}
	if ok {
		fmt.Fprintln(stdout, "match")
	} else {
		fmt.Fprintln(stdout, "mismatch")
	}
	return ok, nil
}

// readPassword reads the first line of r without its line terminator.
func readPassword(r io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
