package email

type EmailRequest struct {
	To      []string // Recipients
	ReplyTo string   // optional
	Subject string
	Body    string // HTML or plain text
	IsHTML  bool
}
