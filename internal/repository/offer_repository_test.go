package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unitip-client/internal/domain"
)

func TestOfferRepository_Create(t *testing.T) {
	t.Run("sends_delivery_area_and_returns_id", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "Fakultas Teknik", payload["deliveryArea"])
			assert.Equal(t, float64(15000), payload["price"])

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"o1"}`))
		})

		id, failure := NewOfferRepository(client).Create(context.Background(),
			"Campus delivery", "backpack size", 15000, "single",
			"Gerbang utama", "Fakultas Teknik", "2026-09-01T00:00:00Z")

		require.Nil(t, failure)
		assert.Equal(t, "o1", id)
	})

	t.Run("rejected_offer_surfaces_server_message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"price too low"}`))
		})

		_, failure := NewOfferRepository(client).Create(context.Background(),
			"Campus delivery", "backpack size", 1, "single",
			"Gerbang utama", "Fakultas Teknik", "2026-09-01T00:00:00Z")

		require.NotNil(t, failure)
		assert.Equal(t, "price too low", failure.Message)
	})

	t.Run("null_body_on_success_is_a_failure", func(t *testing.T) {
		// Unlike check-room's null roomId, offer creation with no body is
		// an error.
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})

		_, failure := NewOfferRepository(client).Create(context.Background(),
			"Campus delivery", "backpack size", 15000, "single",
			"Gerbang utama", "Fakultas Teknik", "2026-09-01T00:00:00Z")

		require.NotNil(t, failure)
		assert.Equal(t, domain.MsgNullBody, failure.Message)
	})
}

func TestOfferRepository_GetOffers(t *testing.T) {
	t.Run("maps_destination_area_to_delivery_area", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("page"))
			assert.Equal(t, "single", r.URL.Query().Get("type"))
			w.Write([]byte(`{
				"offers":[{
					"id":"o1","title":"Campus delivery","description":"d","price":15000,
					"type":"single","pickupArea":"Gerbang utama","destinationArea":"Fakultas Teknik",
					"availableUntil":"t1","offerStatus":"available","maxParticipants":3,
					"freelancer":{"name":"Bagas"}
				}],
				"pageInfo":{"page":1,"totalPages":2}
			}`))
		})

		list, failure := NewOfferRepository(client).GetOffers(context.Background(), 1, "single")

		require.Nil(t, failure)
		assert.True(t, list.HasNext)
		require.Len(t, list.Offers, 1)
		assert.Equal(t, "Fakultas Teknik", list.Offers[0].DeliveryArea)
		assert.Equal(t, "Bagas", list.Offers[0].Freelancer.Name)
	})

	t.Run("omits_type_filter_when_empty", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("type"))
			w.Write([]byte(`{"offers":[],"pageInfo":{"page":1,"totalPages":1}}`))
		})

		list, failure := NewOfferRepository(client).GetOffers(context.Background(), 1, "")

		require.Nil(t, failure)
		assert.False(t, list.HasNext)
	})
}

func TestOfferRepository_GetOfferDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/offers/o1", r.URL.Path)
		w.Write([]byte(`{"offer":{
			"id":"o1","title":"Campus delivery","price":15000,
			"pickupArea":"Gerbang utama","destinationArea":"Fakultas Teknik",
			"createdAt":"t1","updatedAt":"t2","applicantsCount":2,"hasApplied":true,
			"maxParticipants":3,"freelancer":{"name":"Bagas"}
		}}`))
	})

	offer, failure := NewOfferRepository(client).GetOfferDetail(context.Background(), "o1")

	require.Nil(t, failure)
	assert.Equal(t, 2, offer.ApplicantsCount)
	assert.True(t, offer.HasApplied)
	assert.Equal(t, "Fakultas Teknik", offer.DeliveryArea)
}

func TestOfferRepository_ApplyOffer(t *testing.T) {
	t.Run("returns_application_id", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/offers/o1/applications", r.URL.Path)

			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "handle with care", payload["note"])

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"app1"}`))
		})

		id, failure := NewOfferRepository(client).ApplyOffer(context.Background(), "o1", domain.OfferApplication{
			Note:                "handle with care",
			PickupLocation:      "Gerbang utama",
			DestinationLocation: "Fakultas Teknik",
		})

		require.Nil(t, failure)
		assert.Equal(t, "app1", id)
	})

	t.Run("network_failure_yields_generic_message", func(t *testing.T) {
		_, failure := NewOfferRepository(unreachableClient()).ApplyOffer(
			context.Background(), "o1", domain.OfferApplication{})

		require.NotNil(t, failure)
		assert.Equal(t, domain.MsgUnexpectedError, failure.Message)
	})
}
