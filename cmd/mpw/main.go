// The mpw tool implements the Master Password stateless site-password
// derivation algorithm.
//
// Basic usage:
//
//	mpw -u "Full Name" some.site.com
//
// The tool prompts at the terminal for the master secret (unless -M
// supplies it inline, for testing only) and prints the derived credential
// to stdout. An identicon fingerprint is printed alongside the prompt so
// the user can catch a mistyped master secret before a derivation runs.
//
// If a profile already exists for the full name under $HOME/.mpw.d, the
// site's saved counter, type and algorithm are used as defaults and the
// profile's use count is updated on success.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/creachadair/atomicfile"
	"github.com/creachadair/command"
	"github.com/creachadair/getpass"
	"golang.org/x/term"

	"github.com/mpwgo/mpw/engine"
	"github.com/mpwgo/mpw/identicon"
	"github.com/mpwgo/mpw/mpwerr"
	"github.com/mpwgo/mpw/profile"
	"github.com/mpwgo/mpw/types"
)

var cfg = loadConfig()

var flags struct {
	fullName       string
	changeSecret   string
	masterInline   string
	typeName       string
	param          string
	counter        uint
	counterSet     bool
	algorithm      int
	purposeName    string
	context        string
	format         string
	formatFixed    string
	redacted       int
	verbose        int
	quiet          int
}

func main() {
	root := &command.C{
		Name:  command.ProgramName(),
		Usage: `[options] site-name`,
		Help: `Generate a Master Password site credential.

The resulting credential is printed to stdout. Unless -M supplies the master
secret inline (testing only, insecure), the user is prompted at the terminal
and the secret is never echoed or logged.

A profile is kept per full name under $HOME/.mpw.d, recording each site's
counter, type and algorithm so later runs need only the site name.`,

		SetFlags: func(env *command.Env, fs *flag.FlagSet) {
			fs.StringVar(&flags.fullName, "u", "", "full name")
			fs.StringVar(&flags.changeSecret, "U", "", "full name, permitting a master secret change")
			fs.StringVar(&flags.masterInline, "M", "", "master secret, inline (testing only, insecure)")
			fs.StringVar(&flags.typeName, "t", "", "template/type short or long name")
			fs.StringVar(&flags.param, "P", "", "result parameter (stored secret or key size in bits)")
			fs.Func("c", "counter", func(s string) error {
				n, err := strconv.ParseUint(s, 10, 32)
				if err != nil {
					return fmt.Errorf("%w: bad counter %q", mpwerr.Usage, s)
				}
				flags.counter, flags.counterSet = uint(n), true
				return nil
			})
			fs.IntVar(&flags.algorithm, "a", -1, "algorithm version 0..3")
			fs.StringVar(&flags.purposeName, "p", "a", "purpose: a|i|r")
			fs.StringVar(&flags.context, "C", "", "purpose context (e.g. recovery question)")
			fs.StringVar(&flags.format, "f", "", "format, migrating: n|f|j")
			fs.StringVar(&flags.formatFixed, "F", "", "format, fixed: n|f|j")
			fs.IntVar(&flags.redacted, "R", -1, "redacted: 0|1")
			fs.IntVar(&flags.verbose, "v", 0, "increase verbosity by the given amount")
			fs.IntVar(&flags.quiet, "q", 0, "decrease verbosity by the given amount")
		},

		Run: func(env *command.Env) error {
			if len(env.Args) != 1 {
				return env.Usagef("you must specify exactly one site name")
			}
			return runGenerate(env.Args[0])
		},
	}
	err := root.NewEnv(nil).Run(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, command.ProgramName()+":", err)
	}
	os.Exit(mpwerr.ExitCode(err))
}

func verbosity() int { return flags.verbose - flags.quiet }

func logf(format string, args ...any) {
	if verbosity() > 0 {
		log.Printf(format, args...)
	}
}

func runGenerate(siteName string) error {
	fullName := flags.fullName
	changingSecret := flags.changeSecret != ""
	if changingSecret {
		fullName = flags.changeSecret
	}
	if fullName == "" {
		fullName = cfg.fullName
	}
	if fullName == "" {
		return fmt.Errorf("%w: full name required (-u, -U, or MP_FULLNAME)", mpwerr.MissingInput)
	}

	algorithm := cfg.algorithm
	if flags.algorithm >= 0 {
		v, err := engine.ParseAlgorithmVersion(flags.algorithm)
		if err != nil {
			return fmt.Errorf("%w: %v", mpwerr.Usage, err)
		}
		algorithm = v
	}

	purpose, err := types.ParsePurpose(flags.purposeName)
	if err != nil {
		return fmt.Errorf("%w: %v", mpwerr.Usage, err)
	}

	format := cfg.format
	if flags.formatFixed != "" {
		f, err := types.ParseFormat(flags.formatFixed)
		if err != nil {
			return fmt.Errorf("%w: %v", mpwerr.Usage, err)
		}
		format = f
	} else if flags.format != "" {
		f, err := types.ParseFormat(flags.format)
		if err != nil {
			return fmt.Errorf("%w: %v", mpwerr.Usage, err)
		}
		format = f
	}

	dir, err := profileDir()
	if err != nil {
		return fmt.Errorf("%w: %v", mpwerr.IO, err)
	}
	path := profilePath(dir, fullName, format)

	var user *profile.User
	var existingData []byte
	if data, err := os.ReadFile(path); err == nil {
		existingData = data
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: reading profile: %v", mpwerr.IO, err)
	}

	masterSecret := flags.masterInline

	resultType := types.DefaultResultType(purpose)
	if flags.typeName != "" {
		t, err := types.ParseResultType(flags.typeName)
		if err != nil {
			return fmt.Errorf("%w: %v", mpwerr.Usage, err)
		}
		resultType = t
	}
	counter := uint32(1)
	if flags.counterSet {
		counter = uint32(flags.counter)
	}
	redacted := false
	if flags.redacted == 1 {
		redacted = true
	}

	if len(existingData) > 0 {
		info, err := profile.ReadInfo(existingData)
		if err != nil {
			return fmt.Errorf("%w: %v", mpwerr.Format, err)
		}
		algorithm = info.Algorithm
		redacted = info.Redacted
	}

	if masterSecret == "" {
		masterSecret, err = promptMasterSecret(fullName)
		if err != nil {
			return fmt.Errorf("%w: %v", mpwerr.MissingInput, err)
		}
	}
	defer zeroString(&masterSecret)
	fmt.Fprintln(os.Stderr, identicon.New(fullName, masterSecret).ANSIString())

	if len(existingData) > 0 {
		user, err = profile.Read(existingData, masterSecret)
		if err != nil {
			if changingSecret {
				user, err = recoverWithNewSecret(existingData, fullName, masterSecret)
			}
			if err != nil {
				return err
			}
		}
	} else {
		user = &profile.User{
			FullName:       fullName,
			MasterPassword: masterSecret,
			Algorithm:      algorithm,
			DefaultType:    resultType,
		}
		masterKey, derr := engine.DeriveMasterKey(fullName, masterSecret, algorithm)
		if derr != nil {
			return derr
		}
		user.KeyID = engine.KeyID(masterKey)
		masterKey.Zero()
	}
	user.MasterPassword = masterSecret
	user.Redacted = redacted

	site, known := user.Site(siteName)
	if !known {
		site = profile.Site{Name: siteName, Type: resultType, Counter: counter, Algorithm: algorithm}
	}
	if flags.typeName != "" {
		site.Type = resultType
	}
	if flags.counterSet {
		site.Counter = counter
	}

	keyBits, _ := strconv.Atoi(flags.param)
	req := engine.Request{
		FullName:     fullName,
		MasterSecret: masterSecret,
		SiteName:     siteName,
		Counter:      site.Counter,
		Purpose:      purpose,
		Context:      flags.context,
		Type:         site.Type,
		Algorithm:    site.Algorithm,
		KeyBits:      keyBits,
	}

	var result string
	switch {
	case site.Type.Class() == types.ClassStateful && flags.param != "":
		// -P supplies a new secret to save: store it in plaintext here and
		// let profile.Write seal it under the site key, the same as any
		// other stateful content.
		result = flags.param
		site.Content = flags.param
	case site.Type.Class() == types.ClassStateful:
		// profile.Read already decrypted any stored secret for this site,
		// so the plaintext is sitting in site.Content; there is nothing
		// left for the engine to derive.
		result = site.Content
	default:
		result, err = engine.Generate(req)
		if err != nil {
			return err
		}
		if site.Type.Class() == types.ClassTemplate {
			site.Content = result
		}
	}

	now := currentTime()
	user.Touch(siteName, now)
	site.LastUsed = now
	site.Uses++
	user.UpsertSite(site)

	fmt.Println(result)

	out, err := profile.Write(user, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: warning: %v: profile not saved: %v\n", command.ProgramName(), mpwerr.Format, err)
		return nil
	}
	if werr := atomicfile.WriteFile(path, out, 0o600); werr != nil {
		return fmt.Errorf("%w: writing profile: %v", mpwerr.IO, werr)
	}
	return nil
}

// recoverWithNewSecret handles -U: the existing profile does not decrypt
// under the newly supplied secret, so it is re-read under the old one and
// will be re-sealed under the new one on write.
func recoverWithNewSecret(data []byte, fullName, newSecret string) (*profile.User, error) {
	oldSecret, err := promptNamed("Old master password: ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mpwerr.MissingInput, err)
	}
	defer zeroString(&oldSecret)

	user, err := profile.Read(data, oldSecret)
	if err != nil {
		return nil, fmt.Errorf("%w", mpwerr.MasterPassword)
	}
	masterKey, err := engine.DeriveMasterKey(fullName, newSecret, user.Algorithm)
	if err != nil {
		return nil, err
	}
	user.KeyID = engine.KeyID(masterKey)
	masterKey.Zero()
	return user, nil
}

func promptMasterSecret(fullName string) (string, error) {
	return promptNamed(fmt.Sprintf("Master password for %s: ", fullName))
}

func promptNamed(prompt string) (string, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return getpass.Prompt(prompt)
}

func zeroString(s *string) {
	b := []byte(*s)
	for i := range b {
		b[i] = 0
	}
	*s = ""
}

func currentTime() time.Time { return time.Now() }
