package itinerary

import (
	"crypto/rand"
	"math/big"

	"github.com/FACorreiaa/go-ai-trip-planner/internal/types"
)

// CreateItineraryRequest is the POST /itineraries body. The embedded
// generation request carries the trip parameters; Title is optional.
type CreateItineraryRequest struct {
	types.GenerationRequest
	Title string `json:"title,omitempty"`
}

// UpdateItineraryRequest is the PUT /itineraries/{id} body. Nil fields are
// left unchanged.
type UpdateItineraryRequest struct {
	Title  *string                `json:"title,omitempty"`
	Status *types.ItineraryStatus `json:"status,omitempty"`
}

// UpdateActivityRequest is the PUT /activities/{id} body. Nil fields are left
// unchanged.
type UpdateActivityRequest struct {
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	StartTime     *string  `json:"startTime,omitempty"`
	EndTime       *string  `json:"endTime,omitempty"`
	EstimatedCost *float64 `json:"estimatedCost,omitempty"`
	UserNotes     *string  `json:"userNotes,omitempty"`
	IsCompleted   *bool    `json:"isCompleted,omitempty"`
}

// ListItinerariesResponse is one page of the user's itineraries.
type ListItinerariesResponse struct {
	Itineraries []types.Itinerary `json:"itineraries"`
	Pagination  types.Pagination  `json:"pagination"`
}

// ShareResponse carries the minted share link.
type ShareResponse struct {
	ShareToken string `json:"shareToken"`
	ShareURL   string `json:"shareUrl"`
}

const shareTokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const shareTokenLength = 12

// newShareToken mints a 12-character URL-safe token.
func newShareToken() (string, error) {
	token := make([]byte, shareTokenLength)
	max := big.NewInt(int64(len(shareTokenAlphabet)))
	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		token[i] = shareTokenAlphabet[n.Int64()]
	}
	return string(token), nil
}
