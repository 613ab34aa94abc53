package domain

// OfferFreelancer is the freelancer behind an offer posting.
type OfferFreelancer struct {
	Name string `json:"name"`
}

// Offer is a freelance delivery offer. ApplicantsCount and HasApplied are
// only reported by the detail endpoint.
type Offer struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Price           float64         `json:"price"`
	Type            string          `json:"type"`
	PickupArea      string          `json:"pickup_area"`
	DeliveryArea    string          `json:"delivery_area"`
	AvailableUntil  string          `json:"available_until"`
	OfferStatus     string          `json:"offer_status"`
	MaxParticipants int             `json:"max_participants"`
	CreatedAt       string          `json:"created_at,omitempty"`
	UpdatedAt       string          `json:"updated_at,omitempty"`
	ApplicantsCount int             `json:"applicants_count,omitempty"`
	HasApplied      bool            `json:"has_applied,omitempty"`
	Freelancer      OfferFreelancer `json:"freelancer"`
}

// OfferList is one page of offers plus the derived pagination flag.
type OfferList struct {
	Offers  []Offer `json:"offers"`
	HasNext bool    `json:"has_next"`
}

// OfferApplication captures the fields a customer submits when applying to
// an offer.
type OfferApplication struct {
	Note                 string  `json:"note"`
	PickupLocation       string  `json:"pickup_location"`
	DestinationLocation  string  `json:"destination_location"`
	PickupLatitude       float64 `json:"pickup_latitude"`
	PickupLongitude      float64 `json:"pickup_longitude"`
	DestinationLatitude  float64 `json:"destination_latitude"`
	DestinationLongitude float64 `json:"destination_longitude"`
}
