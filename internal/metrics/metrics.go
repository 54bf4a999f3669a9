// Package metrics объявляет счетчики Prometheus, общие для сервисов.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommandsTotal обработанные slash-команды по имени и исходу.
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "license_gateway_commands_total",
		Help: "Processed slash commands by name and outcome.",
	}, []string{"command", "outcome"})

	// LicensesCreated созданные записи лицензий.
	LicensesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "license_gateway_licenses_created_total",
		Help: "Licenses created by the validate command.",
	})

	// LicensesRenewed продленные записи лицензий.
	LicensesRenewed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "license_gateway_licenses_renewed_total",
		Help: "Licenses renewed by the renew command.",
	})

	// RemindersPublished напоминания, поставленные планировщиком в очередь.
	RemindersPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "license_reminders_published_total",
		Help: "Expiry reminders published to the queue.",
	})

	// RemindersSent напоминания, доставленные в личные сообщения.
	RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "license_reminders_sent_total",
		Help: "Expiry reminders delivered via direct message.",
	})

	// RemindersFailed напоминания, которые не удалось доставить.
	RemindersFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "license_reminders_failed_total",
		Help: "Expiry reminders that could not be delivered.",
	})
)
