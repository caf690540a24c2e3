package services

// ChatBot echoes its input. There is no model behind it.
type ChatBot struct{}

// Reply returns the bot's answer and false when input is empty.
func (ChatBot) Reply(input string) (string, bool) {
	if input == "" {
		return "", false
	}
	return "Chatbot: " + input, true
}
