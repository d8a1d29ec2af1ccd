package output

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/require"
)

func TestSimpleProgress(t *testing.T) {
	t.Setenv("DEBUG", "1")
	var buf bytes.Buffer
	splog, err := NewSplogWithConfig(&buf, "")
	require.NoError(t, err)

	p := NewSimpleProgress(splog)
	p.Show("git fetch")
	p.Hide()

	require.Contains(t, buf.String(), "git fetch...")
}

func TestProgressModel(t *testing.T) {
	m := newProgressModel("git pull")
	require.NotNil(t, m.Init())
	require.Contains(t, m.View(), "git pull...")

	next, cmd := m.Update(m.spinner.Tick())
	require.NotNil(t, cmd)
	m = next.(progressModel)

	next, cmd = m.Update(progressDoneMsg{})
	require.NotNil(t, cmd)
	require.Empty(t, next.View())

	_, cmd = m.Update(spinner.TickMsg{})
	require.NotNil(t, cmd)
}

func TestTTYProgress_HideWithoutShow(t *testing.T) {
	p := NewTTYProgress(&bytes.Buffer{})
	p.Hide()
}
