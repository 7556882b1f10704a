package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestSuccessFailure(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	Success(&buf, "Inserted %d entries", 3)
	is.Equal(buf.String(), "✓ Inserted 3 entries\n")

	buf.Reset()
	Failure(&buf, errors.New("boom"))
	is.Equal(buf.String(), "✗ boom\n")
}

func TestCleanupEmptyContext(t *testing.T) {
	is := is.New(t)
	is.NoErr(Cleanup(context.TODO()))
	is.NoErr(CloseDBContext(context.TODO()))
}
