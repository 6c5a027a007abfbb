package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_KnownKeyWithArgs(t *testing.T) {
	got := Generate("error.account.already_exists", "a@x.com")
	assert.Equal(t, "account with email a@x.com already exists", got)
}

func TestGenerate_KnownKeyNoArgs(t *testing.T) {
	got := Generate("account.activation.success")
	assert.Equal(t, "account activated successfully", got)
}

func TestGenerate_UnknownKeyFallsBack(t *testing.T) {
	got := Generate("error.does.not.exist")
	assert.Equal(t, "error.does.not.exist", got)
}
