package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"pw-go/internal/pw"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// Shell is an interactive session over one PWApp, so the master password
// and the password history live for as long as the shell runs.
type Shell struct {
	app   *PWApp
	rawIn io.Reader
	in    *bufio.Reader
	out   io.Writer
}

// NewShell creates a Shell reading commands from in and writing to out.
func NewShell(a *PWApp, in io.Reader, out io.Writer) *Shell {
	return &Shell{app: a, rawIn: in, in: bufio.NewReader(in), out: out}
}

const shellHelp = `commands:
  generate [N]      generate and store a password of N characters
  strength PASSWORD rate a password
  master            set the master password
  unlock            show stored passwords
  history           list passwords generated in this session
  help              show this help
  exit              leave the shell`

// Run reads and executes commands until "exit" or end of input. Command
// errors are printed and do not end the session.
func (s *Shell) Run() error {
	for {
		fmt.Fprint(s.out, "pw> ")
		line, err := s.readLine()
		if errors.Is(err, io.EOF) && line == "" {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading command: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch cmd, args := fields[0], fields[1:]; cmd {
		case "generate", "g":
			s.report(s.generate(args))
		case "strength", "score":
			if len(args) == 0 {
				fmt.Fprintln(s.out, "usage: strength PASSWORD")
				continue
			}
			fmt.Fprintln(s.out, pw.Score(strings.Join(args, " ")))
		case "master":
			s.report(s.setMaster())
		case "unlock":
			s.report(s.unlock())
		case "history":
			for i, p := range s.app.History() {
				fmt.Fprintf(s.out, "%d. %s\n", i+1, p)
			}
		case "help", "?":
			fmt.Fprintln(s.out, shellHelp)
		case "exit", "quit":
			return nil
		default:
			fmt.Fprintf(s.out, "unknown command: %s (try help)\n", cmd)
		}
	}
}

func (s *Shell) report(err error) {
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
}

func (s *Shell) generate(args []string) error {
	length := s.app.Config().Generator.DefaultLength
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid length %q", args[0])
		}
		length = n
	}

	result, err := s.app.Generate(length, pw.DefaultPolicy(), true)
	if err != nil {
		return err
	}
	if result.Similar {
		fmt.Fprintln(s.out, "generated password is too similar to a previous one; try again")
		return nil
	}
	fmt.Fprintf(s.out, "%s\nstrength: %s\n", result.Password, result.Strength)
	return nil
}

func (s *Shell) setMaster() error {
	secret, err := s.readSecret("new master password: ")
	if err != nil {
		return err
	}
	if err := s.app.SetMasterPassword(secret); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "master password set")
	return nil
}

func (s *Shell) unlock() error {
	secret, err := s.readSecret("master password: ")
	if err != nil {
		return err
	}
	result, err := s.app.Unlock(secret)
	if err != nil {
		return err
	}

	for _, w := range result.Expired {
		fmt.Fprintf(s.out, "warning: %s\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(s.out, "error: %v\n", e)
	}
	if len(result.Passwords) == 0 {
		fmt.Fprintln(s.out, "no stored passwords")
	}
	for i, p := range result.Passwords {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, p)
	}
	return nil
}

// readSecret reads a line without echo when input is a terminal.
func (s *Shell) readSecret(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)

	if f, ok := s.rawIn.(*os.File); ok && isTerminal(int(f.Fd())) {
		b, err := readPassword(int(f.Fd()))
		fmt.Fprintln(s.out)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}

	line, err := s.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return line, nil
}

func (s *Shell) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}
