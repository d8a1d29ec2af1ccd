package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenBrowser_RejectsNonWebAddresses(t *testing.T) {
	for _, url := range []string{"", "file:///etc/passwd", "git@github.com:acme/widgets.git"} {
		require.Error(t, OpenBrowser(url), url)
	}
}
