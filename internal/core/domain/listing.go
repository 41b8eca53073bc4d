package domain

type RoomType string

const (
	RoomStandard     RoomType = "standard"
	RoomDeluxe       RoomType = "deluxe"
	RoomSuite        RoomType = "suite"
	RoomExecutive    RoomType = "executive"
	RoomPresidential RoomType = "presidential"
)

// Listing is a single bookable room/unit belonging to a hotel.
// The catalog is loaded at startup and treated as immutable while
// the service runs; bookings snapshot the fields they depend on.
type Listing struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	HotelName     string   `json:"hotel_name"`
	HotelStars    int      `json:"hotel_stars"`
	City          string   `json:"city"`
	RoomType      RoomType `json:"room_type"`
	PricePerNight int64    `json:"price_per_night"`
	Beds          int      `json:"beds"`
	MaxGuests     int      `json:"max_guests"`
}
