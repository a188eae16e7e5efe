package notify

// CrawlNotification is sent by a worker once it finishes a crawl job.
// Pointers distinguish an absent field from an empty one.
type CrawlNotification struct {
	Status      *string `json:"status"`
	MachineName *string `json:"machine_name"`
}

type GetCrawlTargetsResponse struct {
	URLs    []string `json:"urls"`
	Message string   `json:"message"`
}
