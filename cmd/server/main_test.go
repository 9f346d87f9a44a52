package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}

func TestRunRejectsInvalidConfiguration(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	var stderr bytes.Buffer

	code := run(context.Background(), &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "invalid configuration")
}

func TestRunRejectsUnknownProvider(t *testing.T) {
	t.Setenv("PROVIDER", "kifudb")
	var stderr bytes.Buffer

	assert.Equal(t, 1, run(context.Background(), &stderr))
	assert.Contains(t, stderr.String(), "Provider")
}
