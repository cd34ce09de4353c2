package entity

import (
	"encoding/json"
	"fmt"
)

// hiddenCardToken - the wire sentinel the server sends instead of a concealed card.
const hiddenCardToken = "HIDDEN"

// Card - a single playing card as the server reveals it to this client.
// A concealed card has Hidden set and carries no rank or suit.
type Card struct {
	Rank   string `json:"rank"`
	Suit   string `json:"suit"`
	Hidden bool   `json:"-"`
}

// HiddenCard - returns the concealed-card sentinel.
func HiddenCard() Card {
	return Card{Hidden: true}
}

func (that Card) String() string {
	if that.Hidden {
		return "??"
	}
	return that.Rank + that.Suit
}

// MarshalJSON - hidden cards go back out as the "HIDDEN" token, real cards as an object.
func (that Card) MarshalJSON() ([]byte, error) {
	if that.Hidden {
		return json.Marshal(hiddenCardToken)
	}

	type wireCard struct {
		Rank string `json:"rank"`
		Suit string `json:"suit"`
	}

	return json.Marshal(wireCard{Rank: that.Rank, Suit: that.Suit})
}

// UnmarshalJSON - accepts either the "HIDDEN" token or a {rank, suit} object.
func (that *Card) UnmarshalJSON(data []byte) error {
	var token string
	if err := json.Unmarshal(data, &token); err == nil {
		if token != hiddenCardToken {
			return fmt.Errorf("unexpected card token %q", token)
		}
		*that = HiddenCard()
		return nil
	}

	var wire struct {
		Rank string `json:"rank"`
		Suit string `json:"suit"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("failed to unmarshal card: %w", err)
	}

	*that = Card{Rank: wire.Rank, Suit: wire.Suit}

	return nil
}
