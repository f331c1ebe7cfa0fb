// Package ui holds the terminal helpers shared by the CLI commands.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var ErrNotTerminal = errors.New("stdin is not a terminal, pass the value with a flag or environment variable")

var stdin = bufio.NewReader(os.Stdin)

// Line prints label and reads one line from stdin.
func Line(label string) (string, error) {
	fmt.Print(label)
	s, err := stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSpace(strings.TrimSuffix(label, ":")), err)
	}
	return strings.TrimSpace(s), nil
}

// Secret prints label and reads a line without echo.
func Secret(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNotTerminal
	}

	fmt.Print(label)
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// Spin shows a spinner with message until the returned stop is called.
func Spin(message string) (stop func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	_ = s.Color("cyan")
	s.Start()
	return s.Stop
}

func Success(format string, args ...any) {
	fmt.Println(color.GreenString("✓") + " " + fmt.Sprintf(format, args...))
}

func Hint(format string, args ...any) {
	fmt.Println(color.CyanString("→") + " " + fmt.Sprintf(format, args...))
}

func Failure(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("✗")+" "+err.Error())
}
