package domain

// Search limits
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
	DefaultLatestLimit = 5
	MaxLatestLimit     = 50
)

// Business validation constants
const (
	MaxNotesLength       = 500
	MaxNameLength        = 200
	MaxDescriptionLength = 5000
	MaxImagesPerProperty = 10
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Facilities каталог удобств, используемый формами и фильтрами
var Facilities = []string{
	"Wifi",
	"Gym",
	"Car Parking",
	"Swimming pool",
	"Laundry",
	"Pet Center",
	"Sports Center",
	"Cutlery",
}
