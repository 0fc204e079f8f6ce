package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewParsesLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewWithOutput("debug", &bytes.Buffer{}).GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewWithOutput("nonsense", &bytes.Buffer{}).GetLevel())
}

func TestComponentField(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput("info", &buf)
	Component(l, "store").Info("opened")
	assert.Contains(t, buf.String(), "component=store")
	assert.Contains(t, buf.String(), "msg=opened")
}
