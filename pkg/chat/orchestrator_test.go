package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrchestratorClient_Ask(t *testing.T) {
	history := []Message{
		{Id: "1", Text: "hi", Sender: SenderUser, Timestamp: time.Date(2025, time.January, 13, 9, 0, 0, 0, time.UTC)},
	}

	t.Run("sends message and history", func(t *testing.T) {
		var received orchestrateRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			_, _ = w.Write([]byte(`{"responses":"All good"}`))
		}))
		defer server.Close()

		reply, err := NewOrchestratorClient(server.URL, server.Client()).Ask(context.Background(), "hi", history)

		require.NoError(t, err)
		assert.Equal(t, "All good", reply)
		assert.Equal(t, "hi", received.Message)
		require.Len(t, received.Context.History, 1)
		assert.Equal(t, SenderUser, received.Context.History[0].Sender)
	})

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"missing responses", `{}`, ""},
		{"null responses", `{"responses":null}`, ""},
		{"structured responses", `{"responses":["a","b"]}`, `["a","b"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			reply, err := NewOrchestratorClient(server.URL, server.Client()).Ask(context.Background(), "hi", nil)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, reply)
		})
	}

	t.Run("non 2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := NewOrchestratorClient(server.URL, server.Client()).Ask(context.Background(), "hi", nil)

		assert.ErrorContains(t, err, "503")
	})

	t.Run("invalid json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}))
		defer server.Close()

		_, err := NewOrchestratorClient(server.URL, server.Client()).Ask(context.Background(), "hi", nil)

		assert.Error(t, err)
	})

	t.Run("gives up when the request context ends", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := NewOrchestratorClient(server.URL, &http.Client{}).Ask(ctx, "hi", nil)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
