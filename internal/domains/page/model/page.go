package model

import (
	"errors"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"alupro-backend/internal/shared/apperror"
)

// Page is an editable CMS page made of named sections
type Page struct {
	Key       string                 `json:"key"`
	Name      string                 `json:"name"`
	Sections  map[string]interface{} `json:"sections"`
	UpdatedBy *uuid.UUID             `json:"updated_by,omitempty"`
	UpdatedAt *time.Time             `json:"updated_at,omitempty"`
}

const (
	KeyHome    = "home"
	KeyAbout   = "about"
	KeyContact = "contact"
	KeyFAQ     = "faq"
)

type section = map[string]interface{}

// Compiled pages served until an editor saves a version
var defaults = map[string]Page{
	KeyHome: {
		Key:  KeyHome,
		Name: "الصفحة الرئيسية",
		Sections: section{
			"hero": section{
				"title":      "أفضل منتجات الألوميتال في مصر",
				"subtitle":   "مطابخ وأبواب وشبابيك ألوميتال عصرية بجودة عالية",
				"buttonText": "تصفح المنتجات",
			},
			"stats": section{"experience": "15", "projects": "5000", "clients": "3500", "employees": "45"},
		},
	},
	KeyAbout: {
		Key:  KeyAbout,
		Name: "من نحن",
		Sections: section{
			"hero": section{"title": "من نحن", "subtitle": "شركة رائدة في مجال تصنيع وتركيب منتجات الألوميتال"},
		},
	},
	KeyContact: {
		Key:  KeyContact,
		Name: "اتصل بنا",
		Sections: section{
			"hero": section{"title": "اتصل بنا", "subtitle": "نحن هنا للإجابة على جميع استفساراتك"},
		},
	},
	KeyFAQ: {
		Key:  KeyFAQ,
		Name: "الأسئلة الشائعة",
		Sections: section{
			"hero": section{"title": "الأسئلة الشائعة", "subtitle": "إجابات على أكثر الأسئلة شيوعاً"},
		},
	},
}

func IsValidKey(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Default returns a copy of the compiled page for key
func Default(key string) (Page, bool) {
	p, ok := defaults[key]
	if !ok {
		return Page{}, false
	}
	sections := make(map[string]interface{}, len(p.Sections))
	for k, v := range p.Sections {
		sections[k] = v
	}
	p.Sections = sections
	return p, true
}

type UpdatePageRequest struct {
	Name     string                 `json:"name"`
	Sections map[string]interface{} `json:"sections"`
}

func (r UpdatePageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.RuneLength(0, 100)),
		validation.Field(&r.Sections, validation.Required.Error("محتوى الصفحة مطلوب")),
	)
}

const ErrCodePageNotFound = "PAGE_NOT_FOUND"

var (
	ErrPageNotFound = apperror.New(ErrCodePageNotFound, "الصفحة غير موجودة", http.StatusNotFound)

	// ErrNoContent is returned by the repository when nothing was saved for a key yet
	ErrNoContent = errors.New("page content not saved")
)
