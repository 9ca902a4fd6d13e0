package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvitable(t *testing.T) {
	assert := assert.New(t)
	assert.True(Invitable(Staff))
	assert.True(Invitable(GeneralManager))
	assert.False(Invitable(Owner))
	assert.False(Invitable(SuperAdmin))
	assert.False(Invitable("chef"))
}

func TestCanInvite(t *testing.T) {
	assert := assert.New(t)
	assert.True(CanInvite(SuperAdmin))
	assert.True(CanInvite(Owner))
	assert.True(CanInvite(GeneralManager))
	assert.False(CanInvite(Staff))
	assert.False(CanInvite(""))
}

func TestKnown(t *testing.T) {
	assert := assert.New(t)
	for _, r := range []string{SuperAdmin, Owner, GeneralManager, Staff} {
		assert.True(Known(r))
	}
	assert.False(Known("admin"))
}
