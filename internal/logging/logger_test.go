package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, logrus.DebugLevel, ParseLevel("DEBUG"))
	require.Equal(t, logrus.WarnLevel, ParseLevel("warn"))
	require.Equal(t, logrus.ErrorLevel, ParseLevel("error"))
	require.Equal(t, logrus.InfoLevel, ParseLevel(""))
	require.Equal(t, logrus.InfoLevel, ParseLevel("verbose"))
}

func TestSetupWriter(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, "warn")
	t.Cleanup(func() { Setup("info") })

	logrus.Info("hidden")
	logrus.WithField("platform", "linkedin").Warn("shown")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "platform=linkedin")
}
