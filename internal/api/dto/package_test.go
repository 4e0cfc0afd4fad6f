package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackageRequestValidate(t *testing.T) {
	days := -1
	ok := PackageRequest{RegionID: "R1", MaxDays: &days}
	assert.NoError(t, ok.Validate(), "negative caps are valid")

	missing := PackageRequest{}
	assert.Error(t, missing.Validate())

	long := PackageRequest{RegionID: strings.Repeat("x", 65)}
	assert.Error(t, long.Validate())
}
