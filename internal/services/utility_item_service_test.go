package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtilityItemService_Lifecycle(t *testing.T) {
	env := setupTestEnv(t)
	service := NewUtilityItemService(env.itemRepo, env.projectRepo)
	alice := env.createUser(t, "alice")
	outsider := env.createUser(t, "mallory")
	org := env.createOrganization(t, "Acme", alice)
	project := env.createProject(t, org, alice)

	wifi, err := service.CreateUtilityItem(CreateUtilityItemInput{ProjectID: project.ID, CallerID: alice.ID, Name: " wifi ", Value: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "wifi", wifi.Name)

	// Items are not scoped by organization membership.
	_, err = service.CreateUtilityItem(CreateUtilityItemInput{ProjectID: project.ID, CallerID: outsider.ID, Name: "door", Value: "1234"})
	require.NoError(t, err)

	items, err := service.ListUtilityItems(project.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "door", items[0].Name)
	assert.Equal(t, "wifi", items[1].Name)

	value := "correct horse"
	updated, err := service.UpdateUtilityItem(wifi.ID, alice.ID, nil, &value)
	require.NoError(t, err)
	assert.Equal(t, "wifi", updated.Name)
	assert.Equal(t, "correct horse", updated.Value)

	require.NoError(t, service.DeleteUtilityItem(wifi.ID, alice.ID))
	assert.ErrorIs(t, service.DeleteUtilityItem(wifi.ID, alice.ID), ErrUtilityItemNotFound)

	items, err = service.ListUtilityItems(project.ID, alice.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestUtilityItemService_Validation(t *testing.T) {
	env := setupTestEnv(t)
	service := NewUtilityItemService(env.itemRepo, env.projectRepo)
	alice := env.createUser(t, "alice")
	org := env.createOrganization(t, "Acme", alice)
	project := env.createProject(t, org, alice)

	tests := []struct {
		name  string
		input CreateUtilityItemInput
		want  error
	}{
		{"empty name", CreateUtilityItemInput{ProjectID: project.ID, Name: "", Value: "v"}, ErrInvalidUtilityItemName},
		{"long name", CreateUtilityItemInput{ProjectID: project.ID, Name: strings.Repeat("n", MaxUtilityItemNameLength+1), Value: "v"}, ErrInvalidUtilityItemName},
		{"blank value", CreateUtilityItemInput{ProjectID: project.ID, Name: "n", Value: "  "}, ErrUtilityItemValueEmpty},
		{"missing project", CreateUtilityItemInput{ProjectID: 999, Name: "n", Value: "v"}, ErrProjectNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.CallerID = alice.ID
			_, err := service.CreateUtilityItem(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := service.ListUtilityItems(999, alice.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	name := "n"
	_, err = service.UpdateUtilityItem(999, alice.ID, &name, nil)
	assert.ErrorIs(t, err, ErrUtilityItemNotFound)
}
