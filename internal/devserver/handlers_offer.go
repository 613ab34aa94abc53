package devserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type wireOffer struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	Type            string  `json:"type"`
	PickupArea      string  `json:"pickupArea"`
	DestinationArea string  `json:"destinationArea"`
	AvailableUntil  string  `json:"availableUntil"`
	OfferStatus     string  `json:"offerStatus"`
	MaxParticipants int     `json:"maxParticipants"`
	CreatedAt       string  `json:"createdAt,omitempty"`
	UpdatedAt       string  `json:"updatedAt,omitempty"`
	ApplicantsCount int     `json:"applicantsCount,omitempty"`
	HasApplied      bool    `json:"hasApplied,omitempty"`
	Freelancer      struct {
		Name string `json:"name"`
	} `json:"freelancer"`
}

func toWireOffer(o *offer, callerID string, detail bool) wireOffer {
	out := wireOffer{
		ID:              o.ID,
		Title:           o.Title,
		Description:     o.Description,
		Price:           o.Price,
		Type:            o.Type,
		PickupArea:      o.PickupArea,
		DestinationArea: o.DestinationArea,
		AvailableUntil:  o.AvailableUntil,
		OfferStatus:     o.OfferStatus,
		MaxParticipants: o.MaxParticipants,
	}
	out.Freelancer.Name = o.FreelancerName
	if detail {
		out.CreatedAt = o.CreatedAt
		out.UpdatedAt = o.UpdatedAt
		out.ApplicantsCount = len(o.ApplicantIDs)
		_, out.HasApplied = o.ApplicantIDs[callerID]
	}
	return out
}

type createOfferRequest struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	Type           string  `json:"type"`
	PickupArea     string  `json:"pickupArea"`
	DeliveryArea   string  `json:"deliveryArea"`
	AvailableUntil string  `json:"availableUntil"`
}

func (s *Server) handleCreateOffer(w http.ResponseWriter, r *http.Request) {
	u, _ := requestUser(r.Context())

	var req createOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title must not be empty")
		return
	}
	if req.Price <= 0 {
		writeError(w, http.StatusBadRequest, "price too low")
		return
	}
	if req.AvailableUntil != "" {
		if _, err := time.Parse(time.RFC3339, req.AvailableUntil); err != nil {
			writeError(w, http.StatusBadRequest, "availableUntil must be an RFC 3339 timestamp")
			return
		}
	}

	id := s.store.AddOffer(&offer{
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		Type:            req.Type,
		PickupArea:      req.PickupArea,
		DestinationArea: req.DeliveryArea,
		AvailableUntil:  req.AvailableUntil,
		MaxParticipants: 1,
		FreelancerName:  u.Name,
	})

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleGetAllOffers(w http.ResponseWriter, r *http.Request) {
	u, _ := requestUser(r.Context())
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	offers, page, totalPages := s.store.ListOffers(page, r.URL.Query().Get("type"))
	out := make([]wireOffer, 0, len(offers))
	for _, o := range offers {
		out = append(out, toWireOffer(o, u.ID, false))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"offers":   out,
		"pageInfo": wirePageInfo{Page: page, TotalPages: totalPages},
	})
}

func (s *Server) handleGetOffer(w http.ResponseWriter, r *http.Request) {
	u, _ := requestUser(r.Context())

	o, ok := s.store.Offer(chi.URLParam(r, "offerID"))
	if !ok {
		writeError(w, http.StatusNotFound, "offer not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"offer": toWireOffer(o, u.ID, true)})
}

type applyOfferRequest struct {
	Note                 string  `json:"note"`
	DestinationLocation  string  `json:"destinationLocation"`
	PickupLocation       string  `json:"pickupLocation"`
	PickupLatitude       float64 `json:"pickupLatitude"`
	PickupLongitude      float64 `json:"pickupLongitude"`
	DestinationLatitude  float64 `json:"destinationLatitude"`
	DestinationLongitude float64 `json:"destinationLongitude"`
}

func (s *Server) handleApplyOffer(w http.ResponseWriter, r *http.Request) {
	u, _ := requestUser(r.Context())
	offerID := chi.URLParam(r, "offerID")

	var req applyOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.store.Apply(offerID, u.ID)
	if err != nil {
		switch {
		case errors.Is(err, errAlreadyApplied):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusNotFound, "offer not found")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}
