package models

import (
	"errors"
	"time"
)

const MaxReminderLeadDays = 30

// NotificationPreferences fica em users/{uid}/settings/notifications.
// Apenas armazenamos as preferências; o envio dos lembretes é feito fora deste serviço.
type NotificationPreferences struct {
	EmailReminders   bool      `json:"emailReminders" firestore:"emailReminders"`
	SMSReminders     bool      `json:"smsReminders" firestore:"smsReminders"`
	WeeklyDigest     bool      `json:"weeklyDigest" firestore:"weeklyDigest"`
	ReminderLeadDays int       `json:"reminderLeadDays" firestore:"reminderLeadDays"`
	UpdatedAt        time.Time `json:"updatedAt" firestore:"updatedAt"`
}

var ErrReminderLeadDays = errors.New("reminderLeadDays must be between 0 and 30")

// DefaultNotificationPreferences é retornado quando o usuário ainda não salvou nada
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		EmailReminders:   true,
		ReminderLeadDays: 7,
	}
}

func (p NotificationPreferences) Validate() error {
	if p.ReminderLeadDays < 0 || p.ReminderLeadDays > MaxReminderLeadDays {
		return ErrReminderLeadDays
	}
	return nil
}
