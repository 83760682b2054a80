package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ErrNoInput is returned when stdin is closed before a line is read
var ErrNoInput = errors.New("no input")

var (
	stdinMu     sync.Mutex
	stdinReader *bufio.Reader
)

// IsTerminal reports whether stdin is an interactive terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Prompt prints label and reads one line from the terminal. On a real
// terminal the line is edited in raw mode with x/term's line editor;
// otherwise a plain buffered read is used. Only one prompt runs at a time.
func Prompt(label string) (string, error) {
	stdinMu.Lock()
	defer stdinMu.Unlock()

	if IsTerminal() {
		return promptRaw(label)
	}
	fmt.Print(label)
	return readLine(os.Stdin)
}

func promptRaw(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Print(label)
		return readLine(os.Stdin)
	}
	defer term.Restore(fd, oldState)

	rw := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}
	t := term.NewTerminal(rw, label)
	line, err := t.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readLine reads a single line, keeping a reader across calls so buffered
// bytes are not lost between prompts.
func readLine(r io.Reader) (string, error) {
	if stdinReader == nil || r != os.Stdin {
		stdinReader = bufio.NewReader(r)
	}
	line, err := stdinReader.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadCommands turns lines of r into terminal inputs until r is exhausted.
// Each line is trimmed and lower-cased; empty lines are skipped.
func ReadCommands(r io.Reader, out chan<- RawInput) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		code := strings.ToLower(strings.TrimSpace(sc.Text()))
		if code == "" {
			continue
		}
		out <- RawInput{Device: DeviceTerminal, Code: code}
	}
	return sc.Err()
}
