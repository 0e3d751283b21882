package main

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_MissingMongoURL(t *testing.T) {
	t.Setenv("MONGODB_URL", "")
	os.Unsetenv("MONGODB_URL")

	err := run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestRun_DatabaseUnreachable(t *testing.T) {
	t.Setenv("MONGODB_URL", "not-a-uri")
	t.Setenv("VALKEY_URL", "")

	err := run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to database")
}
