package domain

// CanMutateAdvertisement reports whether actor may update or delete ad.
// Only the author and admins qualify.
func CanMutateAdvertisement(actor *User, ad *Advertisement) bool {
	if actor == nil || ad == nil {
		return false
	}
	return actor.IsAdmin() || actor.ID == ad.AuthorID
}

// CanMutateUser reports whether actor may update or delete the user with
// the given id. Only the user themself and admins qualify.
func CanMutateUser(actor *User, targetID int64) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.ID == targetID
}
