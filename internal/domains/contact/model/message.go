package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// Message is a contact form submission
type Message struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Subject      string     `json:"subject"`
	Message      string     `json:"message"`
	IsRead       bool       `json:"is_read"`
	ReplyMessage *string    `json:"reply_message"`
	RepliedAt    *time.Time `json:"replied_at"`
	RepliedBy    *uuid.UUID `json:"replied_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (m *Message) IsReplied() bool {
	return m.RepliedAt != nil
}

// =====================================================
// REQUESTS
// =====================================================

type CreateMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (r CreateMessageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("الاسم مطلوب"),
			validation.RuneLength(2, 100).Error("الاسم يجب أن يكون بين 2 و 100 حرف"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("البريد الإلكتروني مطلوب"),
			is.EmailFormat.Error("البريد الإلكتروني غير صالح"),
		),
		validation.Field(&r.Phone, validation.RuneLength(0, 30)),
		validation.Field(&r.Subject, validation.RuneLength(0, 200)),
		validation.Field(&r.Message,
			validation.Required.Error("الرسالة مطلوبة"),
			validation.RuneLength(5, 5000).Error("الرسالة يجب أن تكون بين 5 و 5000 حرف"),
		),
	)
}

func (r CreateMessageRequest) ToEntity() *Message {
	return &Message{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:   strings.TrimSpace(r.Phone),
		Subject: strings.TrimSpace(r.Subject),
		Message: strings.TrimSpace(r.Message),
	}
}

type ReplyRequest struct {
	Reply string `json:"reply"`
}

func (r ReplyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Reply,
			validation.Required.Error("نص الرد مطلوب"),
			validation.RuneLength(2, 5000),
		),
	)
}

type ListFilter struct {
	UnreadOnly bool
	Page       int
	Limit      int
}
