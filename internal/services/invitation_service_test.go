package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/authz"
	"github.com/yukikurage/project-management-api/internal/models"
)

func TestInvitationService_InviteUsers_PartialFailure(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	org := env.createOrganization(t, "Acme", alice)

	mailer := &fakeMailer{}
	service := newTestInvitationService(env, mailer)

	result, err := service.InviteUsers(context.Background(), org.ID, alice.ID, []string{
		bob.Email,
		"ghost@example.com",
	})
	require.NoError(t, err)

	require.Len(t, result.Successful, 1)
	assert.Equal(t, bob.Email, result.Successful[0].Email)
	assert.Equal(t, InviteStatusSent, result.Successful[0].Status)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, "ghost@example.com", result.Failed[0].Email)
	assert.Equal(t, ReasonUserNotFound, result.Failed[0].Reason)

	assert.Equal(t, org.JoinCode, result.JoinCode)
	assert.Equal(t, 1, mailer.opens)
	assert.Equal(t, 1, mailer.closes)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "Invitation to join Acme", mailer.sent[0].Subject)
	assert.Contains(t, mailer.sent[0].HTMLBody, org.JoinCode)
	assert.Contains(t, mailer.sent[0].HTMLBody, "alice")
}

func TestInvitationService_InviteUsers_OpensTransportOnce(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createUser(t, "alice")
	org := env.createOrganization(t, "Acme", alice)

	emails := make([]string, 0, 3)
	for _, name := range []string{"bob", "carol", "dave"} {
		emails = append(emails, env.createUser(t, name).Email)
	}

	mailer := &fakeMailer{}
	result, err := newTestInvitationService(env, mailer).InviteUsers(context.Background(), org.ID, alice.ID, emails)
	require.NoError(t, err)

	assert.Len(t, result.Successful, 3)
	assert.Empty(t, result.Failed)
	assert.Equal(t, 1, mailer.opens)
	assert.Len(t, mailer.sent, 3)
}

func TestInvitationService_InviteUsers_RecipientReasons(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	org := env.createOrganization(t, "Acme", alice)
	env.addMember(t, org, bob, models.RoleMember)

	mailer := &fakeMailer{failFor: map[string]error{carol.Email: errSMTPDown}}
	result, err := newTestInvitationService(env, mailer).InviteUsers(context.Background(), org.ID, alice.ID, []string{
		"not-an-email",
		bob.Email,
		carol.Email,
	})
	require.NoError(t, err)

	assert.Empty(t, result.Successful)
	require.Len(t, result.Failed, 3)
	assert.Equal(t, ReasonInvalidEmail, result.Failed[0].Reason)
	assert.Equal(t, ReasonAlreadyMember, result.Failed[1].Reason)
	assert.Equal(t, "Failed to send invitation email: connection refused", result.Failed[2].Reason)
}

func TestInvitationService_InviteUsers_NoEligibleRecipientNeverOpens(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createUser(t, "alice")
	org := env.createOrganization(t, "Acme", alice)

	mailer := &fakeMailer{}
	result, err := newTestInvitationService(env, mailer).InviteUsers(context.Background(), org.ID, alice.ID, []string{"ghost@example.com"})
	require.NoError(t, err)

	assert.Empty(t, result.Successful)
	assert.Len(t, result.Failed, 1)
	assert.Equal(t, 0, mailer.opens)
}

func TestInvitationService_InviteUsers_OpenFailureRecordedPerRecipient(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	org := env.createOrganization(t, "Acme", alice)

	mailer := &fakeMailer{openErr: errSMTPDown}
	result, err := newTestInvitationService(env, mailer).InviteUsers(context.Background(), org.ID, alice.ID, []string{bob.Email, carol.Email})
	require.NoError(t, err)

	assert.Empty(t, result.Successful)
	assert.Len(t, result.Failed, 2)
	assert.Equal(t, 1, mailer.opens)
}

func TestInvitationService_InviteUsers_RequiresAdmin(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	org := env.createOrganization(t, "Acme", alice)
	env.addMember(t, org, bob, models.RoleMember)

	mailer := &fakeMailer{}
	_, err := newTestInvitationService(env, mailer).InviteUsers(context.Background(), org.ID, bob.ID, []string{alice.Email})
	require.ErrorIs(t, err, authz.ErrForbidden)
	assert.Equal(t, "Only admins can invite users to this organization.", authz.Message(err))
	assert.Equal(t, 0, mailer.opens)
}

func TestInvitationService_InviteUsers_Errors(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.createUser(t, "alice")
	service := newTestInvitationService(env, &fakeMailer{})

	_, err := service.InviteUsers(context.Background(), 1, alice.ID, nil)
	assert.ErrorIs(t, err, ErrNoInviteEmails)

	_, err = service.InviteUsers(context.Background(), 42, alice.ID, []string{"bob@example.com"})
	assert.ErrorIs(t, err, ErrOrganizationNotFound)
}
