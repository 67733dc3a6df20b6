package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"linematch/internal/pkg/dataset"
	"linematch/internal/pkg/querylog"
	"linematch/internal/pkg/search"
	"linematch/internal/pkg/tlsutil"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func startServer(t *testing.T, cfgs ...Cfg) string {
	t.Helper()
	srv, err := NewServer(append([]Cfg{WithAddr("127.0.0.1:0")}, cfgs...)...)
	require.NoError(t, err)
	require.NoError(t, srv.Listen())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
	return srv.Addr().String()
}

// sendQuery performs one full protocol exchange and returns the raw
// response, which is empty when the server closed without responding.
func sendQuery(t *testing.T, addr, query string) string {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(2*time.Second)))
	_, err = conn.Write([]byte(query + "\n"))
	require.NoError(t, err)
	raw, err := io.ReadAll(conn)
	require.NoError(t, err)
	return string(raw)
}

func TestExistsAndNotFound(t *testing.T) {
	store, err := dataset.NewStaticStore(writeDataset(t, "alpha\n"), search.AlgorithmSet)
	require.NoError(t, err)
	addr := startServer(t, WithStore(store))

	require.Equal(t, ResponseExists, sendQuery(t, addr, "alpha"))
	require.Equal(t, ResponseNotFound, sendQuery(t, addr, "beta"))
}

func TestDynamicFreshness(t *testing.T) {
	path := writeDataset(t, "alpha\n")
	store, err := dataset.NewDynamicStore(path, search.AlgorithmList)
	require.NoError(t, err)
	addr := startServer(t, WithStore(store))

	require.Equal(t, ResponseNotFound, sendQuery(t, addr, "gamma"))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("gamma\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.Equal(t, ResponseExists, sendQuery(t, addr, "gamma"))
}

func TestEmptyLineQuery(t *testing.T) {
	store, err := dataset.NewStaticStore(writeDataset(t, "alpha\n"), search.AlgorithmSet)
	require.NoError(t, err)
	addr := startServer(t, WithStore(store))

	require.Equal(t, ResponseNotFound, sendQuery(t, addr, ""))
}

func TestQueryWithTrailingPadding(t *testing.T) {
	store, err := dataset.NewStaticStore(writeDataset(t, "alpha\n"), search.AlgorithmSet)
	require.NoError(t, err)
	addr := startServer(t, WithStore(store))

	require.Equal(t, ResponseExists, sendQuery(t, addr, "alpha\x00\x00\r"))
}

func TestPayloadBoundary(t *testing.T) {
	store, err := dataset.NewStaticStore(writeDataset(t, "12345678\n"), search.AlgorithmSet)
	require.NoError(t, err)
	addr := startServer(t, WithStore(store), WithMaxPayload(8))

	// Exactly at the cap: accepted.
	require.Equal(t, ResponseExists, sendQuery(t, addr, "12345678"))
	// One byte over: the connection closes with no response line.
	require.Empty(t, sendQuery(t, addr, "123456789"))
}

func TestIdleConnectionClosesQuietly(t *testing.T) {
	store, err := dataset.NewStaticStore(writeDataset(t, "alpha\n"), search.AlgorithmSet)
	require.NoError(t, err)
	addr := startServer(t, WithStore(store))

	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	// The server keeps serving after an idle accept.
	require.Equal(t, ResponseExists, sendQuery(t, addr, "alpha"))
}

func TestUnterminatedQueryGetsNoResponse(t *testing.T) {
	store, err := dataset.NewStaticStore(writeDataset(t, "alpha\n"), search.AlgorithmSet)
	require.NoError(t, err)
	addr := startServer(t, WithStore(store))

	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(2*time.Second)))
	_, err = conn.Write([]byte("alpha"))
	require.NoError(t, err)
	require.NoError(t, conn.(*net.TCPConn).CloseWrite())

	raw, err := io.ReadAll(conn)
	require.NoError(t, err)
	require.Empty(t, string(raw))
}

func TestStorageErrorClosesWithoutResponse(t *testing.T) {
	path := writeDataset(t, "alpha\n")
	store, err := dataset.NewDynamicStore(path, search.AlgorithmSet)
	require.NoError(t, err)
	addr := startServer(t, WithStore(store))

	require.NoError(t, os.Remove(path))
	require.Empty(t, sendQuery(t, addr, "alpha"))
}

func TestConcurrentQueriesNoCrossTalk(t *testing.T) {
	var lines strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&lines, "line-%03d\n", i)
	}
	store, err := dataset.NewStaticStore(writeDataset(t, lines.String()), search.AlgorithmSet)
	require.NoError(t, err)
	addr := startServer(t, WithStore(store))

	const n = 50
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				results[i] = sendQuery(t, addr, fmt.Sprintf("line-%03d", i))
			} else {
				results[i] = sendQuery(t, addr, fmt.Sprintf("missing-%03d", i))
			}
		}(i)
	}
	wg.Wait()
	for i := 0; i < n; i++ {
		want := ResponseExists
		if i%2 != 0 {
			want = ResponseNotFound
		}
		require.Equalf(t, want, results[i], "query %d", i)
	}
}

func TestTLSRoundTrip(t *testing.T) {
	certFile, keyFile, err := tlsutil.GenerateSelfSigned(t.TempDir())
	require.NoError(t, err)
	tlsCfg, err := tlsutil.ServerConfig(certFile, keyFile)
	require.NoError(t, err)

	store, err := dataset.NewStaticStore(writeDataset(t, "alpha\n"), search.AlgorithmSet)
	require.NoError(t, err)
	addr := startServer(t, WithStore(store), WithTLSConfig(tlsCfg))

	cliCfg, err := tlsutil.ClientConfig(certFile)
	require.NoError(t, err)
	cliCfg.ServerName = "localhost"
	conn, err := tls.Dial("tcp", addr, cliCfg)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(2*time.Second)))
	_, err = conn.Write([]byte("alpha\n"))
	require.NoError(t, err)
	raw, err := io.ReadAll(conn)
	require.NoError(t, err)
	require.Equal(t, ResponseExists, string(raw))
}

func TestQueryLogRecord(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	prev := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)
	defer logrus.SetLevel(prev)

	store, err := dataset.NewStaticStore(writeDataset(t, "alpha\n"), search.AlgorithmSet)
	require.NoError(t, err)
	addr := startServer(t, WithStore(store), WithQueryLogger(querylog.New(nil)))

	require.Equal(t, ResponseExists, sendQuery(t, addr, "alpha"))

	require.Eventually(t, func() bool {
		for _, e := range hook.AllEntries() {
			if e.Data["query"] == "alpha" {
				_, hasIP := e.Data["ip"]
				_, hasTime := e.Data["time"]
				_, hasExec := e.Data["exec_ms"]
				return hasIP && hasTime && hasExec
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNewServerRequiresStore(t *testing.T) {
	_, err := NewServer(WithAddr("127.0.0.1:0"))
	require.ErrorIs(t, err, ErrNoStore)
}

func TestServeBeforeListen(t *testing.T) {
	store, err := dataset.NewStaticStore(writeDataset(t, "alpha\n"), search.AlgorithmSet)
	require.NoError(t, err)
	srv, err := NewServer(WithAddr("127.0.0.1:0"), WithStore(store))
	require.NoError(t, err)
	require.ErrorIs(t, srv.Serve(context.Background()), ErrNotListening)
}
