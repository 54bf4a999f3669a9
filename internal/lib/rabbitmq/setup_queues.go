package rabbitmq

// Имена обменника, очереди и ключа маршрутизации напоминаний.
const (
	Exchange           = "licenses"
	ReminderQueue      = "reminder.upcoming"
	ReminderRoutingKey = "upcoming"
)

// QueueConfig связка очереди и ключа маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetReminderQueues возвращает очереди, которые объявляют планировщик
// и рассыльщик напоминаний.
func GetReminderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: ReminderQueue, RoutingKey: ReminderRoutingKey},
	}
}
