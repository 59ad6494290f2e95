package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	l := NewLogger("verbose")
	assert.NotNil(t, l)
	assert.False(t, l.logger.Desugar().Core().Enabled(-1))
	assert.True(t, l.logger.Desugar().Core().Enabled(0))
}

func TestWith_KeepsImplementation(t *testing.T) {
	var l Logger = NewNopLogger()
	child := l.With("requestId", "abc")
	_, ok := child.(*ZapLogger)
	assert.True(t, ok)
	child.Info("discarded", "key", "value")
}
