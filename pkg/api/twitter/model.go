package twitter

type User struct {
	ID     string
	Handle string
}
