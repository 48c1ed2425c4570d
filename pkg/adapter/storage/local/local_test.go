package local_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/motorent/rentweb/pkg/adapter/storage/local"
	"github.com/stretchr/testify/require"
)

func TestUploadAndDelete(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s, err := local.New(base, "http://files.example.com/images/")
	require.NoError(t, err)

	u, err := s.Upload(
		ctx, strings.NewReader("png-bytes"), "license.png", "image/png",
	)
	require.NoError(t, err)
	require.True(
		t, strings.HasPrefix(u, "http://files.example.com/images/"),
	)
	require.True(t, strings.HasSuffix(u, "-license.png"))

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	content, err := os.ReadFile(filepath.Join(base, entries[0].Name()))
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(content))

	require.NoError(t, s.Delete(ctx, u))
	entries, err = os.ReadDir(base)
	require.NoError(t, err)
	require.Empty(t, entries)

	// deleting a missing blob stays successful
	require.NoError(t, s.Delete(ctx, u))
}

func TestUploadsWithEqualNamesDoNotCollide(t *testing.T) {
	ctx := context.Background()
	s, err := local.New(t.TempDir(), "http://files.example.com")
	require.NoError(t, err)

	u1, err := s.Upload(
		ctx, strings.NewReader("first"), "license.bmp", "image/bmp",
	)
	require.NoError(t, err)
	u2, err := s.Upload(
		ctx, strings.NewReader("second"), "license.bmp", "image/bmp",
	)
	require.NoError(t, err)
	require.NotEqual(t, u1, u2)
}

func TestDeleteRejectsForeignURLs(t *testing.T) {
	ctx := context.Background()
	s, err := local.New(t.TempDir(), "http://files.example.com")
	require.NoError(t, err)

	require.Error(t, s.Delete(ctx, "http://files.example.com/%zz"))
}
