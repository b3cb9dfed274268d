package chat

// SendMessageRequest is the payload for one conversational exchange.
type SendMessageRequest struct {
	Message string `json:"message" binding:"required,max=4096"`
}

// UpdatePreferenceRequest selects the persona used for future exchanges.
type UpdatePreferenceRequest struct {
	PersonaPreference string `json:"persona_preference" binding:"required,oneof=male female neutral"`
}
