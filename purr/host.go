package purr

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Host is where program output goes and program input comes from. Terminal
// UIs, canvases and test harnesses each provide their own.
type Host interface {
	EmitLine(line string) error
	ReadLine(ctx context.Context) (string, error)
}

// HostFuncs adapts a pair of functions to Host. A nil Read reports io.EOF.
type HostFuncs struct {
	Emit func(line string) error
	Read func(ctx context.Context) (string, error)
}

func (h HostFuncs) EmitLine(line string) error {
	if h.Emit == nil {
		return nil
	}
	return h.Emit(line)
}

func (h HostFuncs) ReadLine(ctx context.Context) (string, error) {
	if h.Read == nil {
		return "", io.EOF
	}
	return h.Read(ctx)
}

// StdioHost reads lines from an io.Reader and writes lines to an io.Writer.
type StdioHost struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

func NewStdioHost(in io.Reader, out io.Writer) *StdioHost {
	return &StdioHost{in: bufio.NewReader(in), out: out}
}

func (h *StdioHost) EmitLine(line string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.out, line)
	return err
}

// ReadLine returns the next line without its terminator. A final line with
// no newline is returned before io.EOF.
func (h *StdioHost) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	line, err := h.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
