package chat

import (
	"time"

	domainchat "friendbot/companion-api/internal/domain/chat"
	"friendbot/companion-api/internal/utils/functional"
)

// SendMessageResponse is the outcome of one exchange.
type SendMessageResponse struct {
	TurnID    string    `json:"turn_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// TurnResponse is one stored exchange in a history listing.
type TurnResponse struct {
	TurnID    string            `json:"turn_id"`
	Message   string            `json:"message"`
	Response  *string           `json:"response,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// HistoryResponse is a paginated history listing.
type HistoryResponse struct {
	Turns []TurnResponse `json:"turns"`
	Total int64          `json:"total"`
}

// ClearHistoryResponse reports how many turns a purge removed.
type ClearHistoryResponse struct {
	Deleted int64 `json:"deleted"`
}

// PreferenceResponse is the persona currently in effect.
type PreferenceResponse struct {
	PersonaPreference string `json:"persona_preference"`
}

func NewSendMessageResponse(result *domainchat.SendResult) SendMessageResponse {
	return SendMessageResponse{
		TurnID:    result.Turn.PublicID,
		Message:   result.Turn.Message,
		Response:  result.ResponseText,
		CreatedAt: result.Turn.CreatedAt,
	}
}

func NewTurnResponse(turn *domainchat.Turn) TurnResponse {
	return TurnResponse{
		TurnID:    turn.PublicID,
		Message:   turn.Message,
		Response:  turn.Response,
		Metadata:  turn.Metadata,
		CreatedAt: turn.CreatedAt,
	}
}

func NewHistoryResponse(turns []*domainchat.Turn, total int64) HistoryResponse {
	return HistoryResponse{
		Turns: functional.Map(turns, NewTurnResponse),
		Total: total,
	}
}
