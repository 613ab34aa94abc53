package devserver

import (
	"fmt"
	"time"
)

// Seed credentials for local development.
const (
	SeedCustomerEmail = "customer@unitip.test"
	SeedDriverEmail   = "driver@unitip.test"
	SeedPassword      = "password"
)

// Seed fills the store with two accounts, a shared chat room, and enough
// jobs and offers to exercise pagination (more than one page of each).
func Seed(s *Store) error {
	customerID, err := s.CreateUser("Rani", SeedCustomerEmail, "customer", SeedPassword)
	if err != nil {
		return err
	}
	driverID, err := s.CreateUser("Bagas", SeedDriverEmail, "driver", SeedPassword)
	if err != nil {
		return err
	}

	roomID := s.CreateRoom([]string{customerID, driverID})
	if _, err := s.AddMessage(roomID, "seed-msg-1", driverID, "On my way to the pickup point", customerID, 1); err != nil {
		return err
	}

	for i := 1; i <= pageSize+5; i++ {
		jobType := "single"
		if i%3 == 0 {
			jobType = "multi"
		}
		s.AddJob(&job{
			Type:           jobType,
			Title:          fmt.Sprintf("Grocery run #%d", i),
			Note:           "Leave the bag at the front desk",
			Service:        jobType,
			PickupLocation: "Pasar Kranggan",
			Destination:    fmt.Sprintf("Dorm block %d", i),
			Status:         "open",
			CustomerName:   "Rani",
		})
	}

	availableUntil := time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	for i := 1; i <= pageSize+2; i++ {
		offerType := "single"
		if i%2 == 0 {
			offerType = "multi"
		}
		s.AddOffer(&offer{
			Title:           fmt.Sprintf("Campus delivery slot #%d", i),
			Description:     "Anything that fits in a backpack",
			Price:           5000 * float64(i),
			Type:            offerType,
			PickupArea:      "Gerbang utama",
			DestinationArea: "Fakultas Teknik",
			AvailableUntil:  availableUntil,
			MaxParticipants: 3,
			FreelancerName:  "Bagas",
		})
	}

	return nil
}
