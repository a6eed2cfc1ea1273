package dto

type QuestionRequest struct {
	Domain  string           `json:"domain" validate:"required"`
	Context []ContextPairDTO `json:"context" validate:"dive"`
}

// QuestionResponse carries the next context-gathering question. Done is set
// when the question flow returned its literal "DONE" terminal, meaning the
// session may start.
type QuestionResponse struct {
	Question string `json:"question"`
	Done     bool   `json:"done"`
}
