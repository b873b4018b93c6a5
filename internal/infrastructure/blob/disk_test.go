package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mds-registry-api/internal/domain/errs"
)

func TestDisk_PutLocateDelete(t *testing.T) {
	ctx := context.Background()
	d, err := NewDisk(filepath.Join(t.TempDir(), "uploads"), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, d.Put(ctx, "pdf-1-000000001.pdf", strings.NewReader("%PDF-1.4"), 8, "application/pdf"))

	loc, err := d.Locate(ctx, "pdf-1-000000001.pdf")
	require.NoError(t, err)
	assert.Empty(t, loc.URL)
	b, err := os.ReadFile(loc.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(b))

	entries, err := os.ReadDir(d.dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")

	require.NoError(t, d.Delete(ctx, "pdf-1-000000001.pdf"))
	_, err = d.Locate(ctx, "pdf-1-000000001.pdf")
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.NoError(t, d.Delete(ctx, "pdf-1-000000001.pdf"), "deleting twice is fine")
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"", ".", "..", "../etc/passwd", "a/b.pdf", `a\b.pdf`, "a..pdf"} {
		assert.ErrorIs(t, ValidName(name), errs.ErrValidation, name)
	}
	assert.NoError(t, ValidName("pdf-1700000000000-123456789.pdf"))
}
