package output

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog_Append(t *testing.T) {
	var mirror bytes.Buffer
	log := NewLog(slog.New(slog.NewTextHandler(&mirror, nil)))

	log.Append("Repository: /tmp/repo")
	log.AppendOp("op-1", "> git fetch\n")

	require.Equal(t, 2, log.Len())
	require.Equal(t, []string{"Repository: /tmp/repo", "> git fetch\n"}, log.Texts(0))
	require.Equal(t, []string{"> git fetch\n"}, log.Texts(1))
	require.Nil(t, log.Texts(2))
	require.Equal(t, "op-1", log.entries[1].Op)
	require.Equal(t, "Repository: /tmp/repo\n> git fetch\n", log.String())

	require.Contains(t, mirror.String(), "op=op-1")
	require.Contains(t, mirror.String(), "Repository: /tmp/repo")
}

func TestLog_ConcurrentAppend(t *testing.T) {
	log := NewLog(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Append("line")
		}()
	}
	wg.Wait()

	require.Equal(t, 20, log.Len())
}

func TestLog_TextsIsACopy(t *testing.T) {
	log := NewLog(nil)
	log.Append("a")

	texts := log.Texts(0)
	texts[0] = "changed"

	require.Equal(t, "a", log.entries[0].Text)
}
