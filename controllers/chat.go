package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stnicholas-parish/parish-app/models"
	"github.com/stnicholas-parish/parish-app/utils"
	"gorm.io/gorm"
)

// ChatController serves the communal message stream and private messages.
// Messages are append-only; clients poll for new ones.
type ChatController struct {
	DB *gorm.DB
}

func NewChatController(conn *gorm.DB) *ChatController {
	return &ChatController{DB: conn}
}

// chatHistoryLimit caps how many communal messages a poll returns.
const chatHistoryLimit = 50

// GetCommunal returns the latest communal messages, oldest first, with the
// sender populated.
func (cc *ChatController) GetCommunal(c *fiber.Ctx) error {
	var messages []models.Message
	err := cc.DB.Preload("Sender").
		Where("type = ?", models.MessageCommunal).
		Order("created_at desc").
		Limit(chatHistoryLimit).
		Find(&messages).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error fetching chat",
			Error:   err.Error(),
		})
	}

	// Reverse so the client renders oldest first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return c.JSON(messages)
}

// GetPrivate returns the conversation between the caller and another member,
// oldest first.
func (cc *ChatController) GetPrivate(c *fiber.Ctx) error {
	memberID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "No authentication token, access denied",
		})
	}
	otherID, err := c.ParamsInt("memberId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid member id",
		})
	}

	var messages []models.Message
	err = cc.DB.Preload("Sender").
		Where("type = ?", models.MessagePrivate).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			memberID, otherID, otherID, memberID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error fetching chat",
			Error:   err.Error(),
		})
	}
	return c.JSON(messages)
}

// Send appends a message. Without a recipient it lands in the communal
// stream.
func (cc *ChatController) Send(c *fiber.Ctx) error {
	type sendInput struct {
		Content     string             `json:"content"`
		RecipientID *uint              `json:"recipientId"`
		Type        models.MessageType `json:"type"`
	}

	memberID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "No authentication token, access denied",
		})
	}

	input := new(sendInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot parse JSON",
		})
	}
	if input.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Message content is required",
		})
	}

	messageType := input.Type
	if messageType == "" {
		messageType = models.MessageCommunal
	}
	if !messageType.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid message type",
		})
	}

	message := models.Message{
		SenderID:    memberID,
		RecipientID: input.RecipientID,
		Content:     input.Content,
		Type:        messageType,
	}
	if err := cc.DB.Create(&message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error sending message",
			Error:   err.Error(),
		})
	}

	if err := cc.DB.Preload("Sender").First(&message, message.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Server error sending message",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}
