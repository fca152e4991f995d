package dto

// Response is the success envelope returned by every JSON endpoint.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the uniform failure envelope. Only a message string is exposed.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func OK(data any) Response {
	return Response{Success: true, Data: data}
}

func OKWithMessage(data any, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

func Fail(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}
