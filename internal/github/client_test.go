package github

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("rejects an empty token", func(t *testing.T) {
		_, err := NewClient(context.Background(), "  ")
		require.Error(t, err)
	})

	t.Run("defaults to github.com", func(t *testing.T) {
		client, err := NewClient(context.Background(), "tok")
		require.NoError(t, err)
		require.Equal(t, "https://api.github.com/", client.BaseURL())
		require.Equal(t, DefaultTimeout, client.gh.Client().Timeout)
	})

	t.Run("enterprise host uses api v3", func(t *testing.T) {
		client, err := NewClient(context.Background(), "tok",
			WithHost("github.example.com"),
			WithTimeout(5*time.Second),
		)
		require.NoError(t, err)
		require.Equal(t, "https://github.example.com/api/v3/", client.BaseURL())
		require.Equal(t, "https://github.example.com/api/uploads/", client.gh.UploadURL.String())
		require.Equal(t, 5*time.Second, client.gh.Client().Timeout)
	})

	t.Run("base url gets a trailing slash", func(t *testing.T) {
		client, err := NewClient(context.Background(), "tok", WithBaseURL("http://127.0.0.1:9999"))
		require.NoError(t, err)
		require.Equal(t, "http://127.0.0.1:9999/", client.BaseURL())
	})
}
