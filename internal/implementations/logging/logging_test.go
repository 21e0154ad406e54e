package logging

import (
	"errors"
	"testing"

	"ums/internal/core/domain/logging"

	"github.com/stretchr/testify/require"
)

func TestPrepareArgs(t *testing.T) {
	args := prepareArgs(
		logging.Entry("userId", "42"),
		logging.Entry("err", errors.New("boom")),
	)
	require.Equal(t, []interface{}{"userId", "42", "err", "boom"}, args)
}
