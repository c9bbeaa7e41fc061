package apollo

type EnrichmentResult struct {
	Enriched bool        `json:"enriched"`
	Provider string      `json:"provider"`
	Data     *PersonData `json:"data,omitempty"`
}

type PersonData struct {
	Name          string `json:"name,omitempty"`
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	Title         string `json:"title,omitempty"`
	Company       string `json:"company,omitempty"`
	CompanyDomain string `json:"companyDomain,omitempty"`
	Location      string `json:"location,omitempty"`
	LinkedIn      string `json:"linkedin,omitempty"`
	Phone         string `json:"phone,omitempty"`
	EmailStatus   string `json:"emailStatus,omitempty"`
}

type Candidate struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Title    string `json:"title,omitempty"`
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

type person struct {
	Name         string   `json:"name"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Title        string   `json:"title"`
	Email        string   `json:"email"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	LinkedinURL  string   `json:"linkedin_url"`
	EmailStatus  string   `json:"email_status"`
	PhoneNumbers []string `json:"phone_numbers"`
	Organization *struct {
		Name       string `json:"name"`
		WebsiteURL string `json:"website_url"`
	} `json:"organization"`
}

func (p *person) location() string {
	if p.City == "" {
		return ""
	}
	return p.City + ", " + p.State
}

type matchRequest struct {
	Email string `json:"email"`
}

type matchResponse struct {
	Person *person `json:"person"`
}

type searchRequest struct {
	OrganizationDomains []string `json:"organization_domains"`
	Page                int      `json:"page"`
	PerPage             int      `json:"per_page"`
}

type searchResponse struct {
	People []person `json:"people"`
}
