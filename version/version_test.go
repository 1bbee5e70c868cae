package version_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/perfwrap/version"
)

func TestString(t *testing.T) {
	t.Parallel()

	s := version.String()

	assert.Contains(t, s, runtime.Version())
	assert.Contains(t, s, runtime.GOOS+"/"+runtime.GOARCH)
	assert.NotEmpty(t, version.Revision)
}
