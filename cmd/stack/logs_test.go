package stack

import (
	"testing"

	"simpleclaw-keeper/services"

	"github.com/stretchr/testify/assert"
)

func TestLogsRejectsNonPositiveLines(t *testing.T) {
	saved := logLines
	defer func() { logLines = saved }()

	for _, n := range []int{0, -5} {
		logLines = n
		err := logsCmd.RunE(logsCmd, nil)
		assert.ErrorIs(t, err, services.ErrInvalidLines)
	}
}
