//go:build unix

package cmd

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcdevkit/internal/config"
	"mcdevkit/internal/software"
)

func TestRunUntilInterrupt_KillsServerOnSIGINT(t *testing.T) {
	srv := provisioningServer(t)

	// Stand-in for java: marks that it started, then blocks.
	bin := t.TempDir()
	started := filepath.Join(bin, "started")
	java := filepath.Join(bin, "java")
	require.NoError(t, os.WriteFile(java, []byte("#!/bin/sh\ntouch "+started+"\nexec sleep 30\n"), 0o755))

	cfg := &config.ServerConfig{
		Software: software.Paper,
		Version:  "1.20.1",
		WorkDir:  config.Explicit(filepath.Join(t.TempDir(), "server")),
		MemoryMB: 1024,
		Port:     25565,
		Debug:    true,
		Endpoints: config.Endpoints{
			Manifest: srv.URL + "/manifest",
			Paper:    srv.URL + "/papermc",
			Java:     java,
		},
	}

	errc := make(chan error, 1)
	go func() { errc <- runUntilInterrupt(context.Background(), cfg) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(started)
		return err == nil
	}, 10*time.Second, 20*time.Millisecond)
	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server was not stopped after SIGINT")
	}
}
