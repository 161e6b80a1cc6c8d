// Package schema declares the itinerary and suggestion entities and the
// registry of structured-extraction targets the model is constrained to.
package schema

// Accommodation is a booked stay at one destination.
type Accommodation struct {
	Name         string `json:"name" description:"Name of the hotel"`
	Address      string `json:"address" description:"Address of the hotel"`
	CheckIn      string `json:"check_in" description:"Check-in date in ISO 8601 format"`
	CheckOut     string `json:"check_out" description:"Check-out date in ISO 8601 format"`
	HotelID      string `json:"hotel_id" description:"Hotel ID"`
	HotelOfferID string `json:"hotel_offer_id" description:"Hotel offer ID"`
	PriceTotal   string `json:"price_total" description:"Total price for the stay"`
	Currency     string `json:"currency" description:"Currency of the price"`
}

// Activity is one scheduled outing within a destination. Ordering is the
// travel sequence and must be preserved.
type Activity struct {
	ActivityID  string `json:"activity_id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	PurchaseURL string `json:"purchase_url"`
	Notes       string `json:"notes"`
}

// Transportation is one leg between or within destinations.
type Transportation struct {
	Type            string `json:"type"`
	Provider        string `json:"provider"`
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
	PickupTime      string `json:"pickup_time"`
}

// Destination is one stop on the trip, with its stay, activities and legs.
type Destination struct {
	Location       string           `json:"location"`
	Latitude       float64          `json:"latitude" description:"Latitude of the destination"`
	Longitude      float64          `json:"longitude" description:"Longitude of the destination"`
	ArrivalDate    string           `json:"arrival_date"`
	DepartureDate  string           `json:"departure_date"`
	Accommodation  Accommodation    `json:"accommodation"`
	Activities     []Activity       `json:"activities"`
	Transportation []Transportation `json:"transportation"`
}

// Itinerary is the final artifact assembled at the terminal step. Every
// field is required; destination ordering is the travel sequence.
type Itinerary struct {
	TripID           string        `json:"trip_id"`
	UserID           string        `json:"user_id"`
	TripName         string        `json:"trip_name"`
	StartDate        string        `json:"start_date"`
	EndDate          string        `json:"end_date"`
	Destinations     []Destination `json:"destinations"`
	Notes            string        `json:"notes"`
	NumberOfAdults   int           `json:"number_of_adults"`
	NumberOfChildren int           `json:"number_of_children"`
}

// Prompt is one short trip idea.
type Prompt struct {
	Text string `json:"text" description:"A single trip idea of 150 characters or less"`
}

// PromptsList is a bounded ordered list of trip ideas. Generation-time
// only; never persisted.
type PromptsList struct {
	Prompts   []Prompt `json:"prompts"`
	CreatedAt string   `json:"created_at" description:"Creation date in YYYY-MM-DD format"`
}

// RequestActivity is an activity name extracted from a free-text idea.
type RequestActivity struct {
	Name string `json:"name"`
}

// RequestDestination pairs a location with its extracted activities.
type RequestDestination struct {
	Location   string            `json:"location"`
	Activities []RequestActivity `json:"activities"`
}

// ItineraryRequest is the intermediate extraction target produced from a
// selected idea, consumed to seed conversation state.
type ItineraryRequest struct {
	StartDate        string               `json:"start_date"`
	EndDate          string               `json:"end_date"`
	Destinations     []RequestDestination `json:"destinations"`
	NumberOfAdults   int                  `json:"number_of_adults"`
	NumberOfChildren int                  `json:"number_of_children"`
}

// Per-step extraction targets. Each conversation step constrains the model
// to exactly the fields it owns.

type ActivitiesAnswer struct {
	Activities string `json:"activities" description:"Requested activities, as free text"`
}

type DestinationAnswer struct {
	Destination string `json:"destination" description:"Requested destination or destinations"`
}

type DatesAnswer struct {
	Dates string `json:"dates" description:"Requested travel dates"`
}

type PartyAnswer struct {
	Adults   int `json:"adults" description:"Number of adults travelling"`
	Children int `json:"children" description:"Number of children travelling"`
}
