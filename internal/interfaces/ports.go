package interfaces

type AIClient interface {
	GenerateResponse(prompt string) (string, error)
}

type Messenger interface {
	SendMessage(to, content string) error
}
