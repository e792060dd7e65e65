// Package ui provides the terminal interface for the chat session: a
// line-oriented prompt for input and styled, markdown-rendered output.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	statusStyle  = lipgloss.NewStyle().Faint(true)
	toolStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	abortedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
)

// Console is a blocking terminal implementation of UserInterface.
type Console struct {
	in       *bufio.Scanner
	out      io.Writer
	renderer *glamour.TermRenderer
}

// NewConsole builds a console over the given streams. Markdown rendering falls
// back to plain text when the renderer cannot be constructed.
func NewConsole(in io.Reader, out io.Writer) *Console {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		renderer = nil
	}
	return &Console{
		in:       bufio.NewScanner(in),
		out:      out,
		renderer: renderer,
	}
}

// ReadInput prompts and blocks for one line of input.
func (c *Console) ReadInput(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(c.out, promptStyle.Render(prompt))
	return c.readLine(ctx)
}

// ReadPermission asks a yes/no question. Anything other than "yes" or "y" is
// a denial.
func (c *Console) ReadPermission(ctx context.Context, prompt string) (PermissionDecision, error) {
	fmt.Fprintln(c.out, warnStyle.Render("[Confirmation Required]"))
	fmt.Fprintln(c.out, prompt)
	fmt.Fprint(c.out, promptStyle.Render("(yes/no): "))

	answer, err := c.readLine(ctx)
	if err != nil {
		return DecisionDeny, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y":
		return DecisionAllow, nil
	default:
		return DecisionDeny, nil
	}
}

// WriteStatus prints an ephemeral status line.
func (c *Console) WriteStatus(phase string, message string) {
	style := statusStyle
	if phase == "aborted" {
		style = abortedStyle
	}
	fmt.Fprintln(c.out, style.Render(fmt.Sprintf("[%s] %s", phase, message)))
}

// WriteMessage renders the agent's markdown response.
func (c *Console) WriteMessage(content string) {
	if c.renderer != nil {
		if rendered, err := c.renderer.Render(content); err == nil {
			fmt.Fprint(c.out, rendered)
			return
		}
	}
	fmt.Fprintln(c.out, content)
}

// WriteToolEvent prints a dim one-liner for a tool call or its outcome.
func (c *Console) WriteToolEvent(name string, detail string) {
	fmt.Fprintln(c.out, toolStyle.Render(fmt.Sprintf("[%s] %s", name, detail)))
}

// readLine blocks on the scanner in a goroutine so Ctrl+C cancellation via
// context still returns promptly.
func (c *Console) readLine(ctx context.Context) (string, error) {
	type scanResult struct {
		line string
		err  error
	}
	ch := make(chan scanResult, 1)
	go func() {
		if !c.in.Scan() {
			err := c.in.Err()
			if err == nil {
				err = io.EOF
			}
			ch <- scanResult{err: err}
			return
		}
		ch <- scanResult{line: strings.TrimSpace(c.in.Text())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.line, res.err
	}
}
