package access

import (
	"testing"

	"github.com/mbeaulieu/courses/internal/model"
)

var (
	lulu  = model.User{ID: "lulu", Username: "Lulu"}
	lolo  = model.User{ID: "lolo", Username: "Lolo"}
	admin = model.User{ID: "admin", Username: "Admin", IsAdmin: true}
)

func TestCanModify(t *testing.T) {
	tests := []struct {
		name    string
		actor   model.User
		ownerID string
		want    bool
	}{
		{"own list", lulu, "lulu", true},
		{"peer edits peer", lulu, "lolo", true},
		{"peer edits peer reversed", lolo, "lulu", true},
		{"admin edits anyone", admin, "lulu", true},
		{"admin edits own", admin, "admin", true},
		{"peer cannot edit admin list", lulu, "admin", false},
		{"peer cannot edit unknown owner", lolo, "ghost", false},
		{"unknown actor denied", model.User{ID: "ghost"}, "lulu", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModify(tt.actor, tt.ownerID); got != tt.want {
				t.Errorf("CanModify(%s, %s) = %v, want %v", tt.actor.ID, tt.ownerID, got, tt.want)
			}
		})
	}
}

func TestPeerSymmetry(t *testing.T) {
	if CanModify(lulu, lolo.ID) != CanModify(lolo, lulu.ID) {
		t.Error("peer permission must be symmetric")
	}
}

func TestViewableOwners(t *testing.T) {
	owners := ViewableOwners([]model.User{admin, lolo, lulu})
	if len(owners) != 2 {
		t.Fatalf("expected 2 viewable owners, got %d", len(owners))
	}
	for _, o := range owners {
		if o.IsAdmin {
			t.Errorf("admin %s should not be a viewable owner", o.ID)
		}
	}
}

func TestIsViewableOwner(t *testing.T) {
	users := []model.User{admin, lolo, lulu}
	if !IsViewableOwner(users, "lulu") {
		t.Error("lulu should be viewable")
	}
	if IsViewableOwner(users, "admin") {
		t.Error("admin should not be viewable")
	}
	if IsViewableOwner(users, "missing") {
		t.Error("unknown user should not be viewable")
	}
}
