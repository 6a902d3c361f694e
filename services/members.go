package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-tracker-api/models"
)

// addMember appends a team entry for the user unless one already exists.
// Returns the resulting slice and whether it changed.
func addMember(members []models.TeamMember, userID primitive.ObjectID, role models.MemberRole) ([]models.TeamMember, bool) {
	for _, m := range members {
		if m.User == userID {
			return members, false
		}
	}
	return append(members, models.TeamMember{User: userID, Role: role}), true
}

// removeMember drops every team entry for the user. Returns the resulting
// slice and whether it changed.
func removeMember(members []models.TeamMember, userID primitive.ObjectID) ([]models.TeamMember, bool) {
	kept := make([]models.TeamMember, 0, len(members))
	for _, m := range members {
		if m.User != userID {
			kept = append(kept, m)
		}
	}
	return kept, len(kept) != len(members)
}
