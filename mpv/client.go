package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

var (
	// ErrNotConnected is returned when attempting operations on a disconnected client.
	ErrNotConnected = errors.New("mpv: not connected")
	// ErrSocketNotFound is returned when the socket cannot be dialled.
	ErrSocketNotFound = errors.New("mpv: socket not found - is mpv running with --input-ipc-server?")
)

// ipcRequest represents a JSON IPC request to mpv.
type ipcRequest struct {
	Command   []any  `json:"command"`
	RequestID uint64 `json:"request_id"`
}

// ipcResponse represents a JSON IPC response from mpv. Event lines carry
// "event" and no request_id.
type ipcResponse struct {
	Data      any    `json:"data"`
	RequestID uint64 `json:"request_id"`
	Error     string `json:"error"`
	Event     string `json:"event"`
}

// Client is an mpv IPC client that communicates via Unix socket.
type Client struct {
	socketPath string
	timeout    time.Duration

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
	nextID uint64
}

// NewClient creates a new mpv IPC client.
func NewClient(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    2 * time.Second,
	}
}

// SocketPath returns the socket path this client is configured to use.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// Connect establishes a connection to the mpv IPC socket.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSocketNotFound, err)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// ConnectWithRetry keeps dialling until mpv has created its socket or ctx
// is done. mpv needs a moment after launch before the socket exists.
func (c *Client) ConnectWithRetry(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		err := c.Connect()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("connect to mpv at %s: %w", c.socketPath, err)
		case <-ticker.C:
		}
	}
}

// Close closes the connection to mpv.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// IsConnected returns true if the client is connected to mpv.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// GetProperty retrieves the value of an mpv property (e.g. "time-pos", "duration", "pause").
func (c *Client) GetProperty(name string) (any, error) {
	return c.sendCommand("get_property", name)
}

// SetProperty sets the value of an mpv property.
func (c *Client) SetProperty(name string, value any) error {
	_, err := c.sendCommand("set_property", name, value)
	return err
}

// GetTimePos returns the current playback position in seconds.
func (c *Client) GetTimePos() (float64, error) {
	result, err := c.GetProperty("time-pos")
	if err != nil {
		return 0, err
	}
	return toFloat64(result)
}

// GetDuration returns the total duration of the video in seconds.
func (c *Client) GetDuration() (float64, error) {
	result, err := c.GetProperty("duration")
	if err != nil {
		return 0, err
	}
	return toFloat64(result)
}

// GetPaused returns true if playback is paused.
func (c *Client) GetPaused() (bool, error) {
	result, err := c.GetProperty("pause")
	if err != nil {
		return false, err
	}
	paused, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("mpv: unexpected pause value type: %T", result)
	}
	return paused, nil
}

// Seek jumps to an absolute position in seconds.
func (c *Client) Seek(seconds float64) error {
	_, err := c.sendCommand("seek", seconds, "absolute+exact")
	return err
}

// Pause pauses playback.
func (c *Client) Pause() error {
	return c.SetProperty("pause", true)
}

// Play resumes playback.
func (c *Client) Play() error {
	return c.SetProperty("pause", false)
}

// TogglePause flips the pause state.
func (c *Client) TogglePause() error {
	_, err := c.sendCommand("cycle", "pause")
	return err
}

// SetABLoop loops playback between a and b seconds.
func (c *Client) SetABLoop(a, b float64) error {
	if err := c.SetProperty("ab-loop-a", a); err != nil {
		return err
	}
	return c.SetProperty("ab-loop-b", b)
}

// ClearABLoop disables the A-B loop.
func (c *Client) ClearABLoop() error {
	if err := c.SetProperty("ab-loop-a", "no"); err != nil {
		return err
	}
	return c.SetProperty("ab-loop-b", "no")
}

// Quit asks mpv to exit.
func (c *Client) Quit() error {
	_, err := c.sendCommand("quit")
	return err
}

// toFloat64 converts a decoded JSON number to float64.
func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("mpv: unexpected numeric value type: %T", v)
	}
}

// sendCommand sends {"command": [command, args...], "request_id": id} as a
// newline-terminated line and reads lines until the matching response.
func (c *Client) sendCommand(command string, args ...any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	c.nextID++
	req := ipcRequest{
		Command:   append([]any{command}, args...),
		RequestID: c.nextID,
	}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("mpv: failed to marshal command: %w", err)
	}
	data = append(data, '\n')

	if c.timeout > 0 {
		_ = c.conn.SetDeadline(time.Now().Add(c.timeout))
	}
	if _, err := c.conn.Write(data); err != nil {
		return nil, c.dropLocked(fmt.Errorf("mpv: failed to send command: %w", err))
	}

	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			return nil, c.dropLocked(fmt.Errorf("mpv: failed to read response: %w", err))
		}

		var resp ipcResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			continue
		}
		if resp.Event != "" || resp.RequestID != req.RequestID {
			continue
		}
		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("mpv: %s: %s", command, resp.Error)
		}
		return resp.Data, nil
	}
}

// dropLocked closes a broken connection so IsConnected reports false.
func (c *Client) dropLocked(err error) error {
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn = nil
	c.reader = nil
	return err
}
