// Package response описывает конверты ответов на Discord-интеракции.
// Каждый запрос завершается ровно одним конвертом: Pong на проверочный
// пинг, ChannelMessage с текстом на команду.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/license-gateway/internal/models"
)

// Типы входящих интеракций Discord.
const (
	InteractionPing               = 1
	InteractionApplicationCommand = 2
)

// Типы ответов на интеракции.
const (
	ResponsePong           = 1
	ResponseChannelMessage = 4
)

// InteractionResponse конверт ответа на интеракцию.
type InteractionResponse struct {
	Type int          `json:"type"`
	Data *MessageData `json:"data,omitempty"`
}

// MessageData текст, который увидит пользователь в канале.
type MessageData struct {
	Content string `json:"content"`
}

// Pong ответ на проверочный пинг Discord.
func Pong() InteractionResponse {
	return InteractionResponse{Type: ResponsePong}
}

// Message текстовый ответ на команду.
func Message(content string) InteractionResponse {
	return InteractionResponse{
		Type: ResponseChannelMessage,
		Data: &MessageData{Content: content},
	}
}

// ValidationSuccess сообщение об успешной первичной валидации платежа.
func ValidationSuccess(rec models.LicenseRecord) InteractionResponse {
	return Message(fmt.Sprintf(
		"✅ Validation réussie pour <@%s>.\n• ID client : %s\n• Début de licence : %s\n• Expiration : %s\n\n🎉 Le rôle client a été attribué automatiquement !",
		rec.HolderID,
		rec.ClientID,
		rec.StartDate.Format(models.DateLayout),
		rec.ExpiryDate.Format(models.DateLayout)))
}

// RenewalSuccess сообщение об успешном продлении лицензии.
func RenewalSuccess(rec models.LicenseRecord) InteractionResponse {
	return Message(fmt.Sprintf(
		"✅ Renouvellement réussi pour l'ID client %s.\n• Nouvelle expiration : %s\n• Nombre de renouvellements : %d",
		rec.ClientID,
		rec.ExpiryDate.Format(models.DateLayout),
		rec.RenewalCount))
}

// UnknownClient сообщение о том, что ID клиента не найден в реестре.
func UnknownClient(clientID string) InteractionResponse {
	return Message(fmt.Sprintf("❌ ID client %s introuvable. Vérifie l'identifiant et réessaie.", clientID))
}

// GenericError сообщение о внутренней ошибке без технических деталей.
func GenericError() InteractionResponse {
	return Message("❌ Erreur lors de la validation. Merci de réessayer.")
}

// ValidationError сообщение о некорректных опциях команды.
func ValidationError(errs validator.ValidationErrors) InteractionResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("l'option %s est obligatoire", strings.ToLower(err.Field())))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("l'option %s est invalide", strings.ToLower(err.Field())))
		}
	}
	return Message("❌ " + strings.Join(errsMsgs, ", ") + ".")
}
