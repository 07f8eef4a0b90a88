package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/authz"
	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/models"
)

func TestOrganizationService_CreateOrganization(t *testing.T) {
	env := setupTestEnv(t)
	service := NewOrganizationService(env.orgRepo)
	alice := env.createUser(t, "alice")

	org, err := service.CreateOrganization(CreateOrganizationInput{
		Name:        "  Acme  ",
		Description: "Rockets",
		CreatorID:   alice.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme", org.Name)
	assert.Len(t, org.JoinCode, constants.JoinCodeLength)
	for _, r := range org.JoinCode {
		assert.True(t, strings.ContainsRune(constants.JoinCodeAlphabet, r), "unexpected rune %q", r)
	}

	members, err := env.orgRepo.ListMembers(org.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, alice.ID, members[0].UserID)
	assert.Equal(t, models.RoleAdmin, members[0].Role)
}

func TestOrganizationService_CreateOrganization_Validation(t *testing.T) {
	env := setupTestEnv(t)
	service := NewOrganizationService(env.orgRepo)
	alice := env.createUser(t, "alice")

	_, err := service.CreateOrganization(CreateOrganizationInput{Name: "   ", CreatorID: alice.ID})
	assert.ErrorIs(t, err, ErrInvalidOrganizationName)

	_, err = service.CreateOrganization(CreateOrganizationInput{Name: "Acme", CreatorID: alice.ID})
	require.NoError(t, err)

	_, err = service.CreateOrganization(CreateOrganizationInput{Name: "Acme", CreatorID: alice.ID})
	assert.ErrorIs(t, err, ErrOrganizationNameTaken)
}

func TestOrganizationService_CreateOrganization_RetriesJoinCodeCollision(t *testing.T) {
	env := setupTestEnv(t)
	service := NewOrganizationService(env.orgRepo)
	alice := env.createUser(t, "alice")

	codes := []string{"AAAAAA", "AAAAAA", "BBBBBB"}
	calls := 0
	service.newJoinCode = func() (string, error) {
		code := codes[calls]
		calls++
		return code, nil
	}

	first, err := service.CreateOrganization(CreateOrganizationInput{Name: "First", CreatorID: alice.ID})
	require.NoError(t, err)
	assert.Equal(t, "AAAAAA", first.JoinCode)

	second, err := service.CreateOrganization(CreateOrganizationInput{Name: "Second", CreatorID: alice.ID})
	require.NoError(t, err)
	assert.Equal(t, "BBBBBB", second.JoinCode)
	assert.Equal(t, 3, calls)
}

func TestOrganizationService_CreateOrganization_GivesUpAfterMaxAttempts(t *testing.T) {
	env := setupTestEnv(t)
	service := NewOrganizationService(env.orgRepo)
	alice := env.createUser(t, "alice")
	env.createOrganization(t, "Taken", alice)

	existing, err := env.orgRepo.FindByJoinCode("TAKENX")
	require.NoError(t, err)

	calls := 0
	service.newJoinCode = func() (string, error) {
		calls++
		return existing.JoinCode, nil
	}

	_, err = service.CreateOrganization(CreateOrganizationInput{Name: "Other", CreatorID: alice.ID})
	assert.ErrorIs(t, err, ErrJoinCodeGenerationFailed)
	assert.Equal(t, constants.MaxJoinCodeAttempts, calls)
}

func TestOrganizationService_JoinOrganization(t *testing.T) {
	env := setupTestEnv(t)
	service := NewOrganizationService(env.orgRepo)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	org, err := service.CreateOrganization(CreateOrganizationInput{Name: "Acme", CreatorID: alice.ID})
	require.NoError(t, err)

	joined, err := service.JoinOrganization(bob.ID, strings.ToLower(org.JoinCode))
	require.NoError(t, err)
	assert.Equal(t, org.ID, joined.ID)

	member, err := env.orgRepo.FindMember(org.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, member.Role)

	_, err = service.JoinOrganization(bob.ID, org.JoinCode)
	assert.ErrorIs(t, err, ErrAlreadyOrganizationMember)

	members, err := env.orgRepo.ListMembers(org.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	_, err = service.JoinOrganization(bob.ID, "NOPE00")
	assert.ErrorIs(t, err, ErrInvalidJoinCode)
}

func TestOrganizationService_GetOrganization(t *testing.T) {
	env := setupTestEnv(t)
	service := NewOrganizationService(env.orgRepo)
	alice := env.createUser(t, "alice")
	mallory := env.createUser(t, "mallory")
	org := env.createOrganization(t, "Acme", alice)

	got, err := service.GetOrganization(org.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, got.Members, 1)
	assert.Equal(t, "alice", got.Members[0].User.Name)
	assert.Equal(t, "alice", got.CreatedBy.Name)

	_, err = service.GetOrganization(org.ID, mallory.ID)
	assert.True(t, errors.Is(err, authz.ErrForbidden))
	assert.Equal(t, "Not authorized to access this organization", authz.Message(err))

	_, err = service.GetOrganization(org.ID+100, alice.ID)
	assert.ErrorIs(t, err, ErrOrganizationNotFound)
}

func TestOrganizationService_ListOrganizationsForUser(t *testing.T) {
	env := setupTestEnv(t)
	service := NewOrganizationService(env.orgRepo)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	acme := env.createOrganization(t, "Acme", alice)
	env.createOrganization(t, "Globex", bob)
	env.addMember(t, acme, bob, models.RoleMember)

	memberships, err := service.ListOrganizationsForUser(bob.ID)
	require.NoError(t, err)
	require.Len(t, memberships, 2)

	roles := map[string]models.OrganizationRole{}
	for _, m := range memberships {
		roles[m.Organization.Name] = m.Role
	}
	assert.Equal(t, models.RoleMember, roles["Acme"])
	assert.Equal(t, models.RoleAdmin, roles["Globex"])
}
