package whatsapp

// Config is injected at construction; the client never reads ambient state.
type Config struct {
	AccessToken string
	PhoneID     string
	BaseURL     string
}

// SendResult is the tagged outcome of one send attempt. Delivery failures of
// any kind (network, non-2xx status, API-level error object) land in Error
// with Success false; callers never receive a Go error for them.
type SendResult struct {
	Success bool
	Data    *SendMessageResponse
	Error   string
}

type SendMessageResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Contacts []struct {
		Input string `json:"input"`
		WaID  string `json:"wa_id"`
	} `json:"contacts"`
	Error *ErrorResponse `json:"error"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}
