package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestCombinedWriter(t *testing.T) {
	var a, b bytes.Buffer
	cw := NewCombinedWriter(&a, &b)
	n, err := cw.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", a.String())
	assert.Equal(t, "hello", b.String())
}

func TestCombinedWriterCollectsErrors(t *testing.T) {
	var ok bytes.Buffer
	e1, e2 := errors.New("disk full"), errors.New("closed")
	cw := NewCombinedWriter(failWriter{e1}, &ok, failWriter{e2})

	n, err := cw.Write([]byte("x"))
	assert.Equal(t, 1, n)
	assert.Equal(t, "x", ok.String())
	assert.Len(t, multierr.Errors(err), 2)
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)
}

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warn"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("nonsense"))
}

func TestSetupWritesToFile(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)

	path := filepath.Join(t.TempDir(), "logs", "liftlog")
	closer := Setup(SetupParams{FileName: path, Level: "info", FormatJSON: true})
	logrus.WithField("component", "test").Info("hello file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path + ".log")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"component":"test"`))
}

func TestSetupDiscardsWithoutFile(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)
	closer := Setup(SetupParams{Level: "debug"})
	assert.NoError(t, closer.Close())
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}
