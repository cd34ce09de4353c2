package entity

// WinnerData - one winner's share of the pot at the end of a round.
type WinnerData struct {
	PlayerID  string `json:"player_id"`
	AmountWon int    `json:"amount_won"`
	HandName  string `json:"hand_name,omitempty"`
	BestCards []Card `json:"best_cards,omitempty"`
}

// HandResult - a shown hand at showdown, keyed by player id in RoundResult.
type HandResult struct {
	HandName  string `json:"hand_name"`
	BestCards []Card `json:"best_cards,omitempty"`
}

// RoundResult - end-of-round summary. FinalSnapshot is the authoritative
// state after pot distribution and replaces the store like any other push.
type RoundResult struct {
	WinnersData   []WinnerData          `json:"winners_data"`
	HandResults   map[string]HandResult `json:"hand_results,omitempty"`
	FinalSnapshot GameSnapshot          `json:"game_state_after_win"`
}
