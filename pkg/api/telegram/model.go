package telegram

type Member struct {
	ID     string
	Status string
}
