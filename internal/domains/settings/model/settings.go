package model

// SiteSettings is the resolved storefront configuration served to clients
type SiteSettings struct {
	SiteName        string `json:"site_name"`
	SiteTagline     string `json:"site_tagline"`
	SiteLogo        string `json:"site_logo"`
	ContactPhone    string `json:"contact_phone"`
	ContactEmail    string `json:"contact_email"`
	ContactAddress  string `json:"contact_address"`
	ContactWhatsapp string `json:"contact_whatsapp"`
	FacebookURL     string `json:"facebook_url"`
	InstagramURL    string `json:"instagram_url"`
	TwitterURL      string `json:"twitter_url"`
	YoutubeURL      string `json:"youtube_url"`
	TiktokURL       string `json:"tiktok_url"`
	WhatsappURL     string `json:"whatsapp_url"`
	PrimaryColor    string `json:"primary_color"`
	SecondaryColor  string `json:"secondary_color"`
	FooterText      string `json:"footer_text"`

	// Intro video
	IntroVideoEnabled   bool   `json:"intro_video_enabled"`
	IntroVideoURL       string `json:"intro_video_url"`
	IntroVideoCanSkip   bool   `json:"intro_video_can_skip"`
	IntroVideoAutoplay  bool   `json:"intro_video_autoplay"`
	IntroVideoShowOnce  bool   `json:"intro_video_show_once"`
	IntroVideoSkipDelay int    `json:"intro_video_skip_delay"`

	// Backgrounds
	HeroBackground   string `json:"hero_background"`
	ImagesBackground string `json:"images_background"`
}

// Defaults returns the compiled-in settings
func Defaults() SiteSettings {
	return SiteSettings{
		SiteName:        "ألوميتال برو",
		SiteTagline:     "الجودة والأناقة في منتجات الألوميتال",
		SiteLogo:        "/logo.svg",
		ContactPhone:    "+20 100 123 4567",
		ContactEmail:    "info@alupro.com",
		ContactAddress:  "القاهرة، مصر",
		ContactWhatsapp: "+20 100 123 4567",
		FacebookURL:     "https://facebook.com/alupro",
		InstagramURL:    "https://instagram.com/alupro",
		TwitterURL:      "https://twitter.com/alupro",
		YoutubeURL:      "https://youtube.com/alupro",
		TiktokURL:       "https://tiktok.com/@alupro",
		WhatsappURL:     "https://wa.me/201001234567",
		PrimaryColor:    "#2563eb",
		SecondaryColor:  "#1e40af",
		FooterText:      "© 2024 ألوميتال برو. جميع الحقوق محفوظة.",

		IntroVideoEnabled:   false,
		IntroVideoURL:       "",
		IntroVideoCanSkip:   true,
		IntroVideoAutoplay:  true,
		IntroVideoShowOnce:  true,
		IntroVideoSkipDelay: 3,
	}
}

// Setting keys
const (
	KeySiteName            = "site_name"
	KeySiteTagline         = "site_tagline"
	KeySiteLogo            = "site_logo"
	KeyContactPhone        = "contact_phone"
	KeyContactEmail        = "contact_email"
	KeyContactAddress      = "contact_address"
	KeyContactWhatsapp     = "contact_whatsapp"
	KeyFacebookURL         = "facebook_url"
	KeyInstagramURL        = "instagram_url"
	KeyTwitterURL          = "twitter_url"
	KeyYoutubeURL          = "youtube_url"
	KeyTiktokURL           = "tiktok_url"
	KeyWhatsappURL         = "whatsapp_url"
	KeyPrimaryColor        = "primary_color"
	KeySecondaryColor      = "secondary_color"
	KeyFooterText          = "footer_text"
	KeyIntroVideoEnabled   = "intro_video_enabled"
	KeyIntroVideoURL       = "intro_video_url"
	KeyIntroVideoCanSkip   = "intro_video_can_skip"
	KeyIntroVideoAutoplay  = "intro_video_autoplay"
	KeyIntroVideoShowOnce  = "intro_video_show_once"
	KeyIntroVideoSkipDelay = "intro_video_skip_delay"
	KeyHeroBackground      = "hero_background"
	KeyImagesBackground    = "images_background"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindURL
	kindColor
	kindBool
	kindInt
)

type field struct {
	kind fieldKind
	text func(*SiteSettings) *string
	flag func(*SiteSettings) *bool
	num  func(*SiteSettings) *int
}

func textField(kind fieldKind, f func(*SiteSettings) *string) field {
	return field{kind: kind, text: f}
}

var fields = map[string]field{
	KeySiteName:         textField(kindText, func(s *SiteSettings) *string { return &s.SiteName }),
	KeySiteTagline:      textField(kindText, func(s *SiteSettings) *string { return &s.SiteTagline }),
	KeySiteLogo:         textField(kindURL, func(s *SiteSettings) *string { return &s.SiteLogo }),
	KeyContactPhone:     textField(kindText, func(s *SiteSettings) *string { return &s.ContactPhone }),
	KeyContactEmail:     textField(kindText, func(s *SiteSettings) *string { return &s.ContactEmail }),
	KeyContactAddress:   textField(kindText, func(s *SiteSettings) *string { return &s.ContactAddress }),
	KeyContactWhatsapp:  textField(kindText, func(s *SiteSettings) *string { return &s.ContactWhatsapp }),
	KeyFacebookURL:      textField(kindText, func(s *SiteSettings) *string { return &s.FacebookURL }),
	KeyInstagramURL:     textField(kindText, func(s *SiteSettings) *string { return &s.InstagramURL }),
	KeyTwitterURL:       textField(kindText, func(s *SiteSettings) *string { return &s.TwitterURL }),
	KeyYoutubeURL:       textField(kindText, func(s *SiteSettings) *string { return &s.YoutubeURL }),
	KeyTiktokURL:        textField(kindText, func(s *SiteSettings) *string { return &s.TiktokURL }),
	KeyWhatsappURL:      textField(kindText, func(s *SiteSettings) *string { return &s.WhatsappURL }),
	KeyPrimaryColor:     textField(kindColor, func(s *SiteSettings) *string { return &s.PrimaryColor }),
	KeySecondaryColor:   textField(kindColor, func(s *SiteSettings) *string { return &s.SecondaryColor }),
	KeyFooterText:       textField(kindText, func(s *SiteSettings) *string { return &s.FooterText }),
	KeyIntroVideoURL:    textField(kindText, func(s *SiteSettings) *string { return &s.IntroVideoURL }),
	KeyHeroBackground:   textField(kindURL, func(s *SiteSettings) *string { return &s.HeroBackground }),
	KeyImagesBackground: textField(kindURL, func(s *SiteSettings) *string { return &s.ImagesBackground }),

	KeyIntroVideoEnabled:   {kind: kindBool, flag: func(s *SiteSettings) *bool { return &s.IntroVideoEnabled }},
	KeyIntroVideoCanSkip:   {kind: kindBool, flag: func(s *SiteSettings) *bool { return &s.IntroVideoCanSkip }},
	KeyIntroVideoAutoplay:  {kind: kindBool, flag: func(s *SiteSettings) *bool { return &s.IntroVideoAutoplay }},
	KeyIntroVideoShowOnce:  {kind: kindBool, flag: func(s *SiteSettings) *bool { return &s.IntroVideoShowOnce }},
	KeyIntroVideoSkipDelay: {kind: kindInt, num: func(s *SiteSettings) *int { return &s.IntroVideoSkipDelay }},
}
