package model

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"alupro-backend/internal/shared"
)

var (
	hasLetter = regexp.MustCompile(`\pL`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("البريد الإلكتروني مطلوب"),
			is.EmailFormat.Error("البريد الإلكتروني غير صالح"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("كلمة المرور مطلوبة"),
			validation.Length(8, 72).Error("كلمة المرور يجب أن تكون بين 8 و 72 حرف"),
			validation.Match(hasLetter).Error("كلمة المرور يجب أن تحتوي على حرف واحد على الأقل"),
			validation.Match(hasDigit).Error("كلمة المرور يجب أن تحتوي على رقم واحد على الأقل"),
		),
		validation.Field(&r.FullName,
			validation.Required.Error("الاسم مطلوب"),
			validation.RuneLength(2, 100),
		),
		validation.Field(&r.Phone, validation.RuneLength(0, 30)),
	)
}

// NormalizeEmail returns the lookup form of an address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("البريد الإلكتروني مطلوب"), is.EmailFormat),
		validation.Field(&r.Password, validation.Required.Error("كلمة المرور مطلوبة")),
	)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // seconds
	User         *User  `json:"user"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

func (r UpdateRoleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role,
			validation.Required.Error("الدور مطلوب"),
			validation.By(func(value interface{}) error {
				if !shared.IsValidRole(value.(string)) {
					return ErrInvalidRole
				}
				return nil
			}),
		),
	)
}

type ListFilter struct {
	Role   string
	Search string
	Page   int
	Limit  int
}
