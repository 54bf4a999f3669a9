package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetReminderQueues(t *testing.T) {
	queues := GetReminderQueues()

	assert.Len(t, queues, 1)
	assert.Equal(t, ReminderQueue, queues[0].QueueName)
	assert.Equal(t, ReminderRoutingKey, queues[0].RoutingKey)
}
