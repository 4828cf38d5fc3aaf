package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationType_Valid(t *testing.T) {
	assert.True(t, NotificationLike.Valid())
	assert.True(t, NotificationComment.Valid())
	assert.True(t, NotificationFollow.Valid())
	assert.True(t, NotificationMessage.Valid())
	assert.False(t, NotificationType("poke").Valid())
	assert.False(t, NotificationType("").Valid())
}
