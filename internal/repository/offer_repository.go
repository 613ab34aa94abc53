package repository

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"unitip-client/internal/api"
	"unitip-client/internal/domain"
)

// OfferRepository exposes the freelance offer operations of the Unitip API.
type OfferRepository struct {
	client *api.Client
}

// NewOfferRepository creates an offer repository backed by the given API
// client.
func NewOfferRepository(client *api.Client) *OfferRepository {
	return &OfferRepository{client: client}
}

type createOfferPayload struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	Type           string  `json:"type"`
	PickupArea     string  `json:"pickupArea"`
	DeliveryArea   string  `json:"deliveryArea"`
	AvailableUntil string  `json:"availableUntil"`
}

type createOfferResponse struct {
	ID string `json:"id"`
}

type offerFreelancerDTO struct {
	Name string `json:"name"`
}

// The backend reports the drop-off side as destinationArea on reads even
// though creation sends deliveryArea. The mapping below preserves that
// asymmetry.
type offerDTO struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Price           float64            `json:"price"`
	Type            string             `json:"type"`
	PickupArea      string             `json:"pickupArea"`
	DestinationArea string             `json:"destinationArea"`
	AvailableUntil  string             `json:"availableUntil"`
	OfferStatus     string             `json:"offerStatus"`
	MaxParticipants int                `json:"maxParticipants"`
	CreatedAt       string             `json:"createdAt"`
	UpdatedAt       string             `json:"updatedAt"`
	ApplicantsCount int                `json:"applicantsCount"`
	HasApplied      bool               `json:"hasApplied"`
	Freelancer      offerFreelancerDTO `json:"freelancer"`
}

type getAllOffersResponse struct {
	Offers   []offerDTO  `json:"offers"`
	PageInfo pageInfoDTO `json:"pageInfo"`
}

type getOfferResponse struct {
	Offer offerDTO `json:"offer"`
}

type applyOfferPayload struct {
	Note                 string  `json:"note"`
	DestinationLocation  string  `json:"destinationLocation"`
	PickupLocation       string  `json:"pickupLocation"`
	PickupLatitude       float64 `json:"pickupLatitude"`
	PickupLongitude      float64 `json:"pickupLongitude"`
	DestinationLatitude  float64 `json:"destinationLatitude"`
	DestinationLongitude float64 `json:"destinationLongitude"`
}

type applyOfferResponse struct {
	ID string `json:"id"`
}

func mapOffer(dto offerDTO) domain.Offer {
	return domain.Offer{
		ID:              dto.ID,
		Title:           dto.Title,
		Description:     dto.Description,
		Price:           dto.Price,
		Type:            dto.Type,
		PickupArea:      dto.PickupArea,
		DeliveryArea:    dto.DestinationArea,
		AvailableUntil:  dto.AvailableUntil,
		OfferStatus:     dto.OfferStatus,
		MaxParticipants: dto.MaxParticipants,
		CreatedAt:       dto.CreatedAt,
		UpdatedAt:       dto.UpdatedAt,
		ApplicantsCount: dto.ApplicantsCount,
		HasApplied:      dto.HasApplied,
		Freelancer:      domain.OfferFreelancer{Name: dto.Freelancer.Name},
	}
}

// Create posts a new offer and returns its id.
func (r *OfferRepository) Create(
	ctx context.Context,
	title string,
	description string,
	price float64,
	offerType string,
	pickupArea string,
	deliveryArea string,
	availableUntil string,
) (string, *domain.Failure) {
	return roundTrip(ctx, r.client, api.Request{
		Method: http.MethodPost,
		Path:   "/offers",
		Payload: createOfferPayload{
			Title:          title,
			Description:    description,
			Price:          price,
			Type:           offerType,
			PickupArea:     pickupArea,
			DeliveryArea:   deliveryArea,
			AvailableUntil: availableUntil,
		},
		Operation: "offer.create",
	}, rejectedEmptyBody, func(body *createOfferResponse) string {
		return body.ID
	})
}

// GetOffers lists one page of offers, optionally filtered by offer type.
func (r *OfferRepository) GetOffers(ctx context.Context, page int, offerType string) (domain.OfferList, *domain.Failure) {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	if offerType != "" {
		query.Set("type", offerType)
	}

	return roundTrip(ctx, r.client, api.Request{
		Method:    http.MethodGet,
		Path:      "/offers",
		Query:     query,
		Operation: "offer.get_offers",
	}, rejectedEmptyBody, func(body *getAllOffersResponse) domain.OfferList {
		offers := make([]domain.Offer, 0, len(body.Offers))
		for _, offer := range body.Offers {
			offers = append(offers, mapOffer(offer))
		}
		return domain.OfferList{
			Offers:  offers,
			HasNext: body.PageInfo.Page < body.PageInfo.TotalPages,
		}
	})
}

// GetOfferDetail fetches one offer including applicant state for the caller.
func (r *OfferRepository) GetOfferDetail(ctx context.Context, offerID string) (domain.Offer, *domain.Failure) {
	return roundTrip(ctx, r.client, api.Request{
		Method:    http.MethodGet,
		Path:      "/offers/" + url.PathEscape(offerID),
		Operation: "offer.get_offer_detail",
	}, rejectedEmptyBody, func(body *getOfferResponse) domain.Offer {
		return mapOffer(body.Offer)
	})
}

// ApplyOffer applies the caller to an offer and returns the application id.
func (r *OfferRepository) ApplyOffer(ctx context.Context, offerID string, application domain.OfferApplication) (string, *domain.Failure) {
	return roundTrip(ctx, r.client, api.Request{
		Method: http.MethodPost,
		Path:   "/offers/" + url.PathEscape(offerID) + "/applications",
		Payload: applyOfferPayload{
			Note:                 application.Note,
			DestinationLocation:  application.DestinationLocation,
			PickupLocation:       application.PickupLocation,
			PickupLatitude:       application.PickupLatitude,
			PickupLongitude:      application.PickupLongitude,
			DestinationLatitude:  application.DestinationLatitude,
			DestinationLongitude: application.DestinationLongitude,
		},
		Operation: "offer.apply_offer",
	}, rejectedEmptyBody, func(body *applyOfferResponse) string {
		return body.ID
	})
}
