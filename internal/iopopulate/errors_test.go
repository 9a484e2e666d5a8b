package iopopulate

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntol/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	base := errors.New("boom")
	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
	}{
		{"not connected", NotConnectedError(), errcode.DBNotConnectedError},
		{"not found", AuxNotFoundError("/tmp/data.db", base), errcode.PopulateOpenAuxError},
		{"open", OpenAuxError("/tmp/data.db", base), errcode.PopulateOpenAuxError},
		{"read", ReadAuxError("names", base), errcode.PopulateReadAuxError},
		{"write", WriteError("names", base), errcode.PopulateWriteError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gnErr *gn.Error
			require.True(t, errors.As(tt.err, &gnErr))
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			if tt.name != "not connected" {
				assert.ErrorIs(t, gnErr.Err, base)
			}
		})
	}
}
