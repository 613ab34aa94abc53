package domain

// Job delivery types.
const (
	JobTypeSingle = "single"
	JobTypeMulti  = "multi"
)

// JobCustomer is the customer who posted a job.
type JobCustomer struct {
	Name string `json:"name"`
}

// Job is a delivery job posting. Detail-only fields stay zero in list
// results.
type Job struct {
	ID             string      `json:"id"`
	Type           string      `json:"type"`
	Title          string      `json:"title"`
	Note           string      `json:"note"`
	Service        string      `json:"service"`
	PickupLocation string      `json:"pickup_location"`
	Destination    string      `json:"destination"`
	Status         string      `json:"status,omitempty"`
	CreatedAt      string      `json:"created_at"`
	UpdatedAt      string      `json:"updated_at"`
	Customer       JobCustomer `json:"customer"`
}

// JobList is one page of jobs. HasNext tells the caller whether requesting
// page+1 would return more results; no page content is retained here.
type JobList struct {
	Jobs    []Job `json:"jobs"`
	HasNext bool  `json:"has_next"`
}
