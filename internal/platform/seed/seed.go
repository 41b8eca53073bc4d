package seed

import "github.com/nokras/hotel-booking/internal/core/domain"

// Listings is the default catalog: one entry per bookable room type in
// the group's hotels. Prices are nightly rates in KES.
func Listings() []domain.Listing {
	return []domain.Listing{
		{
			ID:            "riverine-standard",
			Title:         "Standard Garden Room",
			HotelName:     "Nokras Riverine Hotel & Spa",
			HotelStars:    4,
			City:          "Sagana",
			RoomType:      domain.RoomStandard,
			PricePerNight: 12500,
			Beds:          1,
			MaxGuests:     2,
		},
		{
			ID:            "riverine-deluxe",
			Title:         "Deluxe River View",
			HotelName:     "Nokras Riverine Hotel & Spa",
			HotelStars:    4,
			City:          "Sagana",
			RoomType:      domain.RoomDeluxe,
			PricePerNight: 18000,
			Beds:          2,
			MaxGuests:     3,
		},
		{
			ID:            "riverine-suite",
			Title:         "Executive Riverside Suite",
			HotelName:     "Nokras Riverine Hotel & Spa",
			HotelStars:    4,
			City:          "Sagana",
			RoomType:      domain.RoomSuite,
			PricePerNight: 25000,
			Beds:          2,
			MaxGuests:     4,
		},
		{
			ID:            "silveroak-standard",
			Title:         "Standard Twin Room",
			HotelName:     "Nokras SilverOak Hotel",
			HotelStars:    3,
			City:          "Embu",
			RoomType:      domain.RoomStandard,
			PricePerNight: 9500,
			Beds:          2,
			MaxGuests:     2,
		},
		{
			ID:            "silveroak-executive",
			Title:         "Executive Business Room",
			HotelName:     "Nokras SilverOak Hotel",
			HotelStars:    3,
			City:          "Embu",
			RoomType:      domain.RoomExecutive,
			PricePerNight: 15500,
			Beds:          1,
			MaxGuests:     2,
		},
		{
			ID:            "enkare-deluxe",
			Title:         "Deluxe Double Room",
			HotelName:     "Nokras Enkare Hotel",
			HotelStars:    3,
			City:          "Sagana",
			RoomType:      domain.RoomDeluxe,
			PricePerNight: 14000,
			Beds:          1,
			MaxGuests:     3,
		},
		{
			ID:            "muranga-presidential",
			Title:         "Presidential Suite",
			HotelName:     "Nokras Murang'a Town Hotel",
			HotelStars:    4,
			City:          "Murang'a",
			RoomType:      domain.RoomPresidential,
			PricePerNight: 45000,
			Beds:          3,
			MaxGuests:     6,
		},
	}
}
