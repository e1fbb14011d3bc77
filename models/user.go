package models

// User is a player profile as fetched from the statistics service.
// A refetch replaces the whole value instead of mutating it.
type User struct {
	UserID        string
	Stats         []Stat
	DetailWinrate map[string]float64 // race name -> winrate against that race, nil when unavailable
}

// HasDetailWinrate reports whether the race-versus-race breakdown was fetched
func (u *User) HasDetailWinrate() bool {
	return u != nil && u.DetailWinrate != nil
}

// Data is the snapshot the dashboard draws
type Data struct {
	SelfID   string // identifier given on the command line
	User     *User  // nil when the self profile could not be fetched
	Opponent *User  // nil when there is no ongoing match or it could not be resolved
}

// OpponentID returns the current opponent's tag, or an empty string
func (d *Data) OpponentID() string {
	if d.Opponent == nil {
		return ""
	}
	return d.Opponent.UserID
}
