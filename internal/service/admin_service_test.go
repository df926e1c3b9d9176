package service

import (
	"testing"

	"cna-archives/internal/dto"
	"cna-archives/internal/models"
	"cna-archives/internal/repository"
	"cna-archives/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFondsDuplicateAndVisibility(t *testing.T) {
	h := newHarness(t)

	_, err := h.refs.CreateFonds(&dto.CreateReferenceRequest{Nom: "TECHNIQUE"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = h.refs.CreateFonds(&dto.CreateReferenceRequest{Nom: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)

	created, err := h.refs.CreateFonds(&dto.CreateReferenceRequest{Nom: "  PATRIMOINE ", Description: "Biens immobiliers"})
	require.NoError(t, err)
	assert.Equal(t, "PATRIMOINE", created.Nom)

	items, err := h.refs.ListFonds()
	require.NoError(t, err)
	var names []string
	for _, f := range items {
		names = append(names, f.Nom)
	}
	assert.Contains(t, names, "PATRIMOINE")
	assert.Len(t, items, len(models.DefaultFonds)+1)
}

func TestCreateObjetDuplicate(t *testing.T) {
	h := newHarness(t)

	_, err := h.refs.CreateObjet(&dto.CreateReferenceRequest{Nom: "Facture"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = h.refs.CreateObjet(&dto.CreateReferenceRequest{Nom: "Plan"})
	require.NoError(t, err)
	items, err := h.refs.ListObjets()
	require.NoError(t, err)
	assert.Len(t, items, len(models.DefaultObjets)+1)
}

func TestCreateUser(t *testing.T) {
	h := newHarness(t)

	_, err := h.users.Create(&dto.CreateUserRequest{Username: "marie", Password: "x", Role: models.RoleArchiviste})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = h.users.Create(&dto.CreateUserRequest{Username: "luc", Password: "x", Role: "stagiaire"})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = h.users.Create(&dto.CreateUserRequest{Username: "luc", Role: models.RoleArchiviste})
	assert.ErrorIs(t, err, ErrPasswordRequired)

	info, err := h.users.Create(&dto.CreateUserRequest{Username: "luc", Password: "x", Role: models.RoleArchiviste})
	require.NoError(t, err)
	assert.Equal(t, "luc", info.Username)

	archivistes, err := h.users.ListArchivistes()
	require.NoError(t, err)
	assert.Len(t, archivistes, 3)
}

func TestDeleteUserRules(t *testing.T) {
	h := newHarness(t)
	other := testutil.CreateUser(t, h.db, "chef", "secret", models.RoleAdministrateur)

	assert.ErrorIs(t, h.users.Delete(h.admin, h.admin.ID), ErrForbidden)

	chef := h.admin
	chef.ID, chef.Username = other.ID, other.Username
	assert.ErrorIs(t, h.users.Delete(chef, h.admin.ID), ErrForbidden)

	h.dossier(t, h.marie, "TECHNIQUE", "2024-06-01T09:00:00Z", 5)
	assert.ErrorIs(t, h.users.Delete(h.admin, h.marie.ID), ErrUserHasDossiers)

	assert.ErrorIs(t, h.users.Delete(h.admin, 9999), ErrNotFound)

	require.NoError(t, h.users.Delete(h.admin, h.paul.ID))
	users, err := h.users.List()
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestDeleteUserProtectsConfiguredAdmin(t *testing.T) {
	h := newHarness(t)
	chef := testutil.CreateUser(t, h.db, "superviseur", "secret", models.RoleAdministrateur)
	users := NewUserService(repository.NewUserRepository(h.db, "superviseur"), h.dossierRepo)

	assert.ErrorIs(t, users.Delete(h.marie, chef.ID), ErrForbidden)
	// admin n'est plus le compte protégé
	require.NoError(t, users.Delete(h.marie, h.admin.ID))
}

func TestResetPassword(t *testing.T) {
	h := newHarness(t)

	err := h.users.ResetPassword(h.paul.ID, &dto.ResetPasswordRequest{NewPassword: "abcdef", ConfirmPassword: "abcdeg"})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	err = h.users.ResetPassword(9999, &dto.ResetPasswordRequest{NewPassword: "abcdef", ConfirmPassword: "abcdef"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, h.users.ResetPassword(h.paul.ID, &dto.ResetPasswordRequest{NewPassword: "abcdef", ConfirmPassword: "abcdef"}))
	_, err = h.auth.Authenticate("paul", "abcdef")
	assert.NoError(t, err)
}

func TestObjectifResolution(t *testing.T) {
	h := newHarness(t)

	goal, err := h.objectifs.CurrentGoal()
	require.NoError(t, err)
	assert.Equal(t, 10, goal)

	_, err = h.objectifs.SetGoal(0)
	assert.ErrorIs(t, err, ErrInvalidGoal)
	_, err = h.objectifs.SetGoal(101)
	assert.ErrorIs(t, err, ErrInvalidGoal)

	_, err = h.objectifs.SetGoal(25)
	require.NoError(t, err)
	goal, err = h.objectifs.CurrentGoal()
	require.NoError(t, err)
	assert.Equal(t, 25, goal)

	history, err := h.objectifs.History()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 25, history[0].ObjectifQuotidien)
}

func TestObjectifDefaultWhenEmpty(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.db.Exec("DELETE FROM objectifs").Error)

	info, err := h.objectifs.Current()
	require.NoError(t, err)
	assert.Equal(t, 10, info.ObjectifQuotidien)
	assert.True(t, info.UpdatedAt.IsZero())
}
