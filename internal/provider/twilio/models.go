package twilio

const statusApproved = "approved"

type verificationResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	To      string `json:"to"`
	Channel string `json:"channel"`
}

type verificationCheckResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
	To     string `json:"to"`
}

type errorResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}
