package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedCredentialsAreHashed(t *testing.T) {
	s := openTestStore(t)

	users := s.Users().List()
	require.Len(t, users, 2)

	byEmail := make(map[string]User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}

	admin, ok := byEmail[SeedAdminEmail]
	require.True(t, ok)
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(SeedAdminPassword)))

	cost, err := bcrypt.Cost([]byte(admin.Password))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cost, 12)

	hr, ok := byEmail[SeedHREmail]
	require.True(t, ok)
	assert.Equal(t, RoleHRManager, hr.Role)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hr.Password), []byte(SeedHRPassword)))
}

func TestSeedFileHoldsNoPlaintextPasswords(t *testing.T) {
	s := openTestStore(t)

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	content := string(raw)
	assert.False(t, strings.Contains(content, SeedAdminPassword))
	assert.False(t, strings.Contains(content, SeedHRPassword))
}

func TestSeedEmployeesLinkToManagers(t *testing.T) {
	s := openTestStore(t)

	employees := s.Employees().List()
	require.Len(t, employees, 5)

	byCode := make(map[string]Employee, len(employees))
	for _, e := range employees {
		byCode[e.EmployeeID] = e
	}

	admin := byCode["EMP001"]
	hr := byCode["EMP002"]
	assert.Empty(t, admin.ManagerID)
	assert.Equal(t, admin.ID, hr.ManagerID)

	for _, code := range []string{"EMP003", "EMP004", "EMP005"} {
		emp, ok := byCode[code]
		require.True(t, ok, code)
		assert.Equal(t, hr.ID, emp.ManagerID)
		assert.Equal(t, EmployeeActive, emp.Status)
	}
}

func TestSeedOnlyRunsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.json")

	first, err := Open(path)
	require.NoError(t, err)
	adminBefore, ok := first.Users().GetByID(first.Users().List()[0].ID)
	require.True(t, ok)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	require.Len(t, second.Users().List(), 2)
	adminAfter, ok := second.Users().GetByID(adminBefore.ID)
	require.True(t, ok)
	assert.Equal(t, adminBefore.Password, adminAfter.Password)
}
