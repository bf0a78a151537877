package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LineDialogs implements Dialogs over a line-oriented reader and writer,
// typically stdin and stderr.
type LineDialogs struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineDialogs returns dialogs reading answers from in and writing
// messages to out.
func NewLineDialogs(in io.Reader, out io.Writer) *LineDialogs {
	return &LineDialogs{in: bufio.NewReader(in), out: out}
}

// Alert writes msg on its own line.
func (d *LineDialogs) Alert(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// Prompt writes msg with the default in brackets and reads one line. End
// of input before any text cancels the dialog. An empty line returns "".
func (d *LineDialogs) Prompt(ctx context.Context, msg, def string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if def != "" {
		fmt.Fprintf(d.out, "%s [%s] ", msg, def)
	} else {
		fmt.Fprintf(d.out, "%s ", msg)
	}
	line, err := d.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, fmt.Errorf("reading answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", false, nil
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}
