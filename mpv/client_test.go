package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMpv answers IPC requests on a unix socket and records the commands.
type fakeMpv struct {
	ln       net.Listener
	mu       sync.Mutex
	commands [][]any
}

func startFakeMpv(t *testing.T) (*fakeMpv, string) {
	t.Helper()
	// unix socket paths are length-limited, keep it short
	dir, err := os.MkdirTemp("", "mpv")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, "s.sock")

	ln, err := net.Listen("unix", path)
	require.NoError(t, err)
	f := &fakeMpv{ln: ln}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go f.serve(conn)
		}
	}()
	return f, path
}

func (f *fakeMpv) serve(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadBytes('\n')
		if err != nil {
			return
		}
		var req ipcRequest
		if err := json.Unmarshal(line, &req); err != nil {
			return
		}
		f.mu.Lock()
		f.commands = append(f.commands, req.Command)
		f.mu.Unlock()

		resp := ipcResponse{RequestID: req.RequestID, Error: "success"}
		if req.Command[0] == "get_property" {
			switch req.Command[1] {
			case "time-pos":
				resp.Data = 12.5
			case "duration":
				resp.Data = 300.0
			case "pause":
				resp.Data = true
			default:
				resp.Error = "property unavailable"
			}
		}
		// an unsolicited event precedes every reply
		_, _ = conn.Write([]byte(`{"event":"playback-restart"}` + "\n"))
		out, _ := json.Marshal(resp)
		_, _ = conn.Write(append(out, '\n'))
	}
}

func (f *fakeMpv) recorded() [][]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]any(nil), f.commands...)
}

func TestClientNotConnected(t *testing.T) {
	c := NewClient("/nonexistent/mpv.sock")
	_, err := c.GetTimePos()
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.ErrorIs(t, c.Connect(), ErrSocketNotFound)
	assert.False(t, c.IsConnected())
}

func TestClientProperties(t *testing.T) {
	_, path := startFakeMpv(t)
	c := NewClient(path)
	require.NoError(t, c.Connect())
	defer c.Close()

	pos, err := c.GetTimePos()
	require.NoError(t, err)
	assert.Equal(t, 12.5, pos)

	dur, err := c.GetDuration()
	require.NoError(t, err)
	assert.Equal(t, 300.0, dur)

	paused, err := c.GetPaused()
	require.NoError(t, err)
	assert.True(t, paused)

	_, err = c.GetProperty("chapter")
	assert.ErrorContains(t, err, "property unavailable")
}

func TestClientCommands(t *testing.T) {
	f, path := startFakeMpv(t)
	c := NewClient(path)
	require.NoError(t, c.Connect())
	defer c.Close()

	require.NoError(t, c.Seek(42))
	require.NoError(t, c.Play())
	require.NoError(t, c.TogglePause())
	require.NoError(t, c.SetABLoop(10, 20))
	require.NoError(t, c.ClearABLoop())

	want := [][]any{
		{"seek", 42.0, "absolute+exact"},
		{"set_property", "pause", false},
		{"cycle", "pause"},
		{"set_property", "ab-loop-a", 10.0},
		{"set_property", "ab-loop-b", 20.0},
		{"set_property", "ab-loop-a", "no"},
		{"set_property", "ab-loop-b", "no"},
	}
	assert.Equal(t, want, f.recorded())
}

func TestConnectWithRetryWaitsForSocket(t *testing.T) {
	dir, err := os.MkdirTemp("", "mpv")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "late.sock")

	go func() {
		time.Sleep(100 * time.Millisecond)
		ln, err := net.Listen("unix", path)
		if err != nil {
			return
		}
		t.Cleanup(func() { ln.Close() })
		conn, err := ln.Accept()
		if err == nil {
			defer conn.Close()
			time.Sleep(100 * time.Millisecond)
		}
	}()

	c := NewClient(path)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, c.ConnectWithRetry(ctx, 20*time.Millisecond))
	assert.True(t, c.IsConnected())
	require.NoError(t, c.Close())
}

func TestConnectWithRetryTimesOut(t *testing.T) {
	c := NewClient("/nonexistent/mpv.sock")
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := c.ConnectWithRetry(ctx, 10*time.Millisecond)
	assert.True(t, errors.Is(err, ErrSocketNotFound))
}

func TestLaunchArgs(t *testing.T) {
	args := LaunchOptions{SocketPath: "/tmp/x.sock", StartPaused: true, Start: 12.5}.Args("match.mp4")
	assert.Equal(t, []string{
		"--input-ipc-server=/tmp/x.sock",
		"--keep-open=yes",
		"--force-window=yes",
		"--osd-level=1",
		"--pause",
		"--start=12.500",
		"match.mp4",
	}, args)
}
