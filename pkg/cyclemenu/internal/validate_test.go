package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Corner string  `toml:"corner" validate:"oneof=top-left top-right"`
	Scale  float64 `toml:"scale_factor" validate:"gte=1"`
	Inner  struct {
		Size int `toml:"size" validate:"gte=0"`
	} `toml:"inner"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	ok := sample{Corner: "top-left", Scale: 1.3}
	assert.NoError(t, ValidateStruct(ok))

	bad := sample{Corner: "middle", Scale: 0.5}
	bad.Inner.Size = -1
	err := ValidateStruct(bad)
	assert.Error(t, err)
	assert.ElementsMatch(t, []string{"corner", "scale_factor", "inner.size"}, InvalidFields(err))
}

func TestValidateVar(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateVar("fixed", "oneof=auto fixed"))
	assert.Error(t, ValidateVar("both", "oneof=auto fixed"))
	assert.Nil(t, InvalidFields(nil))
}
