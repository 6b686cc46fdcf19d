package fserr

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"invalid path", InvalidPath("bad path %q", "//2"), KindInvalidPath},
		{"not found", NotFound("no row 42"), KindNotFound},
		{"is directory", IsDirectory("root"), KindIsDirectory},
		{"not directory", NotDirectory("record"), KindNotDirectory},
		{"read only", ReadOnly("write rejected"), KindReadOnly},
		{"storage", Storage("ping: %w", io.ErrUnexpectedEOF), KindStorageUnavailable},
		{"config", Config("table name missing"), KindConfig},
		{"out of resources", OutOfResources("fd limit"), KindOutOfResources},
		{"foreign error", errors.New("plain"), KindUnknown},
		{"nil", nil, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("opening store: %w", Storage("dial tcp: refused"))
	require.Equal(t, KindStorageUnavailable, KindOf(err))
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := io.ErrClosedPipe
	err := Storage("reading row 7: %w", cause)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "reading row 7: io: read/write on closed pipe", err.Error())
}

func TestAbsenceIsNotUnavailability(t *testing.T) {
	absent := NotFound("no row named 9")
	down := Storage("connection lost")
	require.NotEqual(t, KindOf(absent), KindOf(down))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "storage unavailable", KindStorageUnavailable.String())
	require.Equal(t, "Kind(250)", Kind(250).String())
}
