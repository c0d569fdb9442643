package openai

// responsesPath is the Responses API endpoint, relative to the base URL.
const responsesPath = "responses"

// responsesRequest is the body posted to the Responses API.
type responsesRequest struct {
	Model  string `json:"model"`
	Input  string `json:"input"`
	Stream bool   `json:"stream,omitempty"`
}

// responsesResponse is a Responses API answer. Streams carry the same object
// in response.* events.
type responsesResponse struct {
	ID                string            `json:"id"`
	Model             string            `json:"model"`
	Status            string            `json:"status"`
	Output            []responsesOutput `json:"output"`
	Usage             *responsesUsage   `json:"usage,omitempty"`
	Error             *responsesError   `json:"error,omitempty"`
	IncompleteDetails *struct {
		Reason string `json:"reason"`
	} `json:"incomplete_details,omitempty"`
}

// responsesOutput is one output item: a message, a reasoning summary or a
// tool call. Only messages carry content.
type responsesOutput struct {
	Type    string             `json:"type"`
	ID      string             `json:"id,omitempty"`
	Role    string             `json:"role,omitempty"`
	Content []responsesContent `json:"content,omitempty"`
}

type responsesContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type responsesUsage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	TotalTokens  int64 `json:"total_tokens"`
}

type responsesError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// streamEvent is one server-sent Responses API event.
//
//	response.created          response
//	response.output_text.delta delta
//	response.completed        response (with usage)
//	response.failed           response (with error)
//	error                     code, message
type streamEvent struct {
	Type     string             `json:"type"`
	Delta    string             `json:"delta,omitempty"`
	Response *responsesResponse `json:"response,omitempty"`
	Code     string             `json:"code,omitempty"`
	Message  string             `json:"message,omitempty"`
}
