package atm

// Client is a bank client.
type Client struct {
	ID      int64
	Title   string
	Name    string
	Surname string
}

// IsValidClientID reports whether id can identify a client.
func IsValidClientID(id int64) bool {
	return id > 0
}
