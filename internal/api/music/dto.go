package musicapi

type ShareRequest struct {
	Platform string `json:"platform" binding:"required,oneof=FACEBOOK TWITTER WHATSAPP COPY"`
}
