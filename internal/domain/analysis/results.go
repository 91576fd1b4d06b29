package analysis

// DNSRecord is one answer returned by the resolver.
type DNSRecord struct {
	Name string `json:"name"`
	Type string `json:"type"`
	TTL  int    `json:"TTL"`
	Data string `json:"data"`
}

// DNSResult is the payload of /api/dns.
type DNSResult struct {
	Domain     string      `json:"domain"`
	RecordType string      `json:"recordType"`
	Records    []DNSRecord `json:"records"`
	Timestamp  string      `json:"timestamp"`
}

// WhoisResult is the payload of /api/whois.
type WhoisResult struct {
	Domain                 string   `json:"domain"`
	Registrar              string   `json:"registrar,omitempty"`
	RegistrantOrganization string   `json:"registrantOrganization,omitempty"`
	RegistrationDate       string   `json:"registrationDate,omitempty"`
	ExpirationDate         string   `json:"expirationDate,omitempty"`
	UpdatedDate            string   `json:"updatedDate,omitempty"`
	NameServers            []string `json:"nameServers,omitempty"`
	Status                 []string `json:"status,omitempty"`
	RawData                string   `json:"rawData"`
	Timestamp              string   `json:"timestamp"`
}

// SSLResult is the payload of /api/ssl.
type SSLResult struct {
	Domain           string   `json:"domain"`
	Valid            bool     `json:"valid"`
	Issuer           string   `json:"issuer,omitempty"`
	Subject          string   `json:"subject,omitempty"`
	ValidFrom        string   `json:"validFrom,omitempty"`
	ValidTo          string   `json:"validTo,omitempty"`
	DaysRemaining    *int     `json:"daysRemaining,omitempty"`
	Protocol         string   `json:"protocol,omitempty"`
	Cipher           string   `json:"cipher,omitempty"`
	CertificateChain []string `json:"certificateChain,omitempty"`
	Timestamp        string   `json:"timestamp"`
}

// SecurityHeader reports one tracked response header.
type SecurityHeader struct {
	Name           string `json:"name"`
	Present        bool   `json:"present"`
	Value          string `json:"value,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
}

// HeadersResult is the payload of /api/headers.
type HeadersResult struct {
	URL             string            `json:"url"`
	Headers         map[string]string `json:"headers"`
	SecurityHeaders []SecurityHeader  `json:"securityHeaders"`
	SecurityScore   int               `json:"securityScore"`
	Timestamp       string            `json:"timestamp"`
}

// SafeBrowsing is a placeholder verdict; no threat feed is consulted.
type SafeBrowsing struct {
	Safe    bool     `json:"safe"`
	Threats []string `json:"threats"`
}

// SecurityResult is the payload of /api/security.
type SecurityResult struct {
	URL           string       `json:"url"`
	SafeBrowsing  SafeBrowsing `json:"safeBrowsing"`
	HTTPS         bool         `json:"https"`
	MixedContent  bool         `json:"mixedContent"`
	SecurityScore int          `json:"securityScore"`
	Timestamp     string       `json:"timestamp"`
}

// PerformanceMetrics holds derived timings.
type PerformanceMetrics struct {
	TTFB int64 `json:"ttfb"`
}

// PerformanceResult is the payload of /api/performance.
type PerformanceResult struct {
	URL          string             `json:"url"`
	LoadTime     int64              `json:"loadTime"`
	ResponseTime int64              `json:"responseTime"`
	ContentSize  int64              `json:"contentSize"`
	StatusCode   int                `json:"statusCode"`
	Redirects    int                `json:"redirects"`
	Metrics      PerformanceMetrics `json:"metrics"`
	Timestamp    string             `json:"timestamp"`
}
