package app

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateServer_ShutdownCancelsRequestContexts(t *testing.T) {
	started := make(chan struct{})
	finished := make(chan struct{})

	r := chi.NewRouter()
	r.Get("/stream", func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
		close(finished)
	})

	server := createServer("127.0.0.1:0", r)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = server.Serve(ln) }()

	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/stream")
		if err == nil {
			resp.Body.Close()
		}
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("request did not start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go func() { _ = server.Shutdown(ctx) }()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("request context was not cancelled on shutdown")
	}
	assert.Equal(t, 15*time.Second, server.WriteTimeout)
}
