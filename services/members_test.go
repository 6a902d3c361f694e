package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-tracker-api/models"
)

func TestAddMemberAppendsNewUser(t *testing.T) {
	userID := primitive.NewObjectID()

	members, changed := addMember(nil, userID, models.MemberTester)

	assert.True(t, changed)
	assert.Equal(t, []models.TeamMember{{User: userID, Role: models.MemberTester}}, members)
}

func TestAddMemberTwiceKeepsOneEntry(t *testing.T) {
	userID := primitive.NewObjectID()

	members, changed := addMember(nil, userID, models.MemberDeveloper)
	assert.True(t, changed)

	members, changed = addMember(members, userID, models.MemberManager)
	assert.False(t, changed)
	assert.Len(t, members, 1)
	// the existing entry wins, including its role
	assert.Equal(t, models.MemberDeveloper, members[0].Role)
}

func TestAddMemberLeavesOtherEntriesAlone(t *testing.T) {
	existing := models.TeamMember{User: primitive.NewObjectID(), Role: models.MemberDesigner}
	userID := primitive.NewObjectID()

	members, changed := addMember([]models.TeamMember{existing}, userID, models.MemberDeveloper)

	assert.True(t, changed)
	assert.Equal(t, existing, members[0])
	assert.Equal(t, userID, members[1].User)
}

func TestRemoveMemberDropsEveryEntryForUser(t *testing.T) {
	userID := primitive.NewObjectID()
	other := models.TeamMember{User: primitive.NewObjectID(), Role: models.MemberManager}
	members := []models.TeamMember{
		{User: userID, Role: models.MemberDeveloper},
		other,
		{User: userID, Role: models.MemberTester},
	}

	kept, changed := removeMember(members, userID)

	assert.True(t, changed)
	assert.Equal(t, []models.TeamMember{other}, kept)
}

func TestRemoveMemberNonMemberIsNoOp(t *testing.T) {
	members := []models.TeamMember{{User: primitive.NewObjectID(), Role: models.MemberDeveloper}}

	kept, changed := removeMember(members, primitive.NewObjectID())

	assert.False(t, changed)
	assert.Equal(t, members, kept)
}

func TestRemoveMemberEmptyTeam(t *testing.T) {
	kept, changed := removeMember(nil, primitive.NewObjectID())

	assert.False(t, changed)
	assert.Empty(t, kept)
}
