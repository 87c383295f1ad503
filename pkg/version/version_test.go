package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/termicon/pkg/version"
)

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, version.GetVersion())
	assert.Contains(t, version.String(), "termicon ")
	assert.Contains(t, version.String(), version.GoOS+"/"+version.GoArch)
}
