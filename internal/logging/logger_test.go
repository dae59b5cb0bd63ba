package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	log := New("debug", "json")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = New("nonsense", "text")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "user-1a2b***", MaskKey("user-1a2b3c4d5e6f"))
	assert.Equal(t, "***", MaskKey("short"))
	assert.Equal(t, "***", MaskKey(""))
}
