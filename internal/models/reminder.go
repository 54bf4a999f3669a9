package models

// ReminderMessage сообщение очереди напоминаний: кому и о каком сроке
// напомнить. ID нужен для сквозной корреляции логов планировщика
// и рассыльщика.
type ReminderMessage struct {
	ID            string `json:"id"`
	HolderID      string `json:"holder_id"`
	ClientID      string `json:"client_id"`
	ExpiryDate    string `json:"expiry_date"`
	DaysRemaining int    `json:"days_remaining"`
}
