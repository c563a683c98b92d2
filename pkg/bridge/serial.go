package bridge

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.bug.st/serial"

	"github.com/urmzd/plasma-remote/pkg/tv"
)

// DefaultBaudRate is used when the serial URL carries no baud parameter.
const DefaultBaudRate = 9600

// DefaultLineTemplate is the command line written for each key.
const DefaultLineTemplate = PlaceholderProtocol + " " + PlaceholderKey

// PortOpener opens a serial device. Tests substitute an in-memory port.
type PortOpener func(path string, baud int) (io.WriteCloser, error)

// OpenSerialPort opens path at baud, 8N1.
func OpenSerialPort(path string, baud int) (io.WriteCloser, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", path, err)
	}

	log.Info().Str("port", path).Int("baud", baud).Msg("Serial port opened")

	return port, nil
}

// SerialTarget is a parsed serial bridge URL such as
// serial:///dev/ttyUSB0?baud=9600&line={PROTOCOL}%20{KEY}.
type SerialTarget struct {
	Path string
	Baud int
	Line string
}

// ParseSerialURL parses a serial bridge URL.
func ParseSerialURL(raw string) (SerialTarget, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return SerialTarget{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != SchemeSerial {
		return SerialTarget{}, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}

	t := SerialTarget{
		Path: u.Host + u.Path,
		Baud: DefaultBaudRate,
		Line: DefaultLineTemplate,
	}
	if t.Path == "" {
		return SerialTarget{}, fmt.Errorf("%w: missing serial device", ErrInvalidURL)
	}

	q := u.Query()
	if b := q.Get("baud"); b != "" {
		baud, err := strconv.Atoi(b)
		if err != nil || baud <= 0 {
			return SerialTarget{}, fmt.Errorf("%w: bad baud rate %q", ErrInvalidURL, b)
		}
		t.Baud = baud
	}
	if l := q.Get("line"); l != "" {
		t.Line = l
	}
	return t, nil
}

// SerialBridge writes one text line per key to a USB IR transmitter.
type SerialBridge struct {
	target SerialTarget
	port   io.WriteCloser
	mu     sync.Mutex
}

// NewSerialBridge opens the port described by raw.
func NewSerialBridge(raw string, open PortOpener) (*SerialBridge, error) {
	target, err := ParseSerialURL(raw)
	if err != nil {
		return nil, err
	}
	if open == nil {
		open = OpenSerialPort
	}
	port, err := open(target.Path, target.Baud)
	if err != nil {
		return nil, err
	}
	return &SerialBridge{target: target, port: port}, nil
}

// Line renders the command written for key.
func (b *SerialBridge) Line(key tv.Key, protocol string) string {
	s := strings.ReplaceAll(b.target.Line, PlaceholderKey, string(key))
	return strings.ReplaceAll(s, PlaceholderProtocol, protocol) + "\n"
}

// Send writes the command line for key.
func (b *SerialBridge) Send(ctx context.Context, key tv.Key, protocol string) Result {
	res := Result{Key: key, Protocol: protocol, Target: SchemeSerial + "://" + b.target.Path}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	start := time.Now()
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.port == nil {
		res.Err = ErrClosed
		return res
	}
	if _, err := b.port.Write([]byte(b.Line(key, protocol))); err != nil {
		res.Err = fmt.Errorf("serial write: %w", err)
	}
	res.Latency = time.Since(start)
	return res
}

// Close closes the serial port.
func (b *SerialBridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.port == nil {
		return nil
	}
	err := b.port.Close()
	b.port = nil
	return err
}
