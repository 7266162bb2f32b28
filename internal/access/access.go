// Package access holds the cross-user list permission rules.
package access

import (
	"errors"

	"github.com/mbeaulieu/courses/internal/model"
)

// ErrForbidden is returned when a mutation targets a list the acting
// user may not modify.
var ErrForbidden = errors.New("access: forbidden")

// peerUsers are the two non-admin household members who may edit each
// other's lists. The pairing is fixed alongside the seeded roster.
var peerUsers = [2]string{"lulu", "lolo"}

// CanModify reports whether actor may mutate the list owned by
// ownerID: admins may touch everything, everyone may touch their own
// list, and the two peers may touch each other's. Read access is
// never gated by this predicate.
func CanModify(actor model.User, ownerID string) bool {
	if actor.IsAdmin {
		return true
	}
	if actor.ID == ownerID {
		return true
	}
	return isPeer(actor.ID) && isPeer(ownerID)
}

func isPeer(id string) bool {
	return id == peerUsers[0] || id == peerUsers[1]
}

// ViewableOwners filters users down to the list owners any
// authenticated user may browse. Admin accounts do not keep a
// browsable list of their own.
func ViewableOwners(users []model.User) []model.User {
	var owners []model.User
	for _, u := range users {
		if !u.IsAdmin {
			owners = append(owners, u)
		}
	}
	return owners
}

// IsViewableOwner reports whether ownerID belongs to a non-admin user
// in the given roster.
func IsViewableOwner(users []model.User, ownerID string) bool {
	for _, u := range users {
		if u.ID == ownerID && !u.IsAdmin {
			return true
		}
	}
	return false
}
