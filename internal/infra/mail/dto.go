package mail

type OutreachMessage struct {
	To      string
	From    string
	Subject string
	HTML    string
}

type SendResult struct {
	Sent     bool   `json:"sent"`
	Provider string `json:"provider"`
}

// OutreachData feeds the cold-outreach body template.
type OutreachData struct {
	Name     string
	Location string
	AppURL   string
	PixelURL string
}
