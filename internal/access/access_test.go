package access

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

var (
	scopeA = common.HexToAddress("0x0000000000000000000000000000000000000a01")
	scopeB = common.HexToAddress("0x0000000000000000000000000000000000000a02")
	alice  = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob    = common.HexToAddress("0x00000000000000000000000000000000000000b1")
)

func TestGrantRevoke(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.HasCapability(scopeA, alice, RoleAdmin))

	r.Grant(scopeA, alice, RoleAdmin)
	assert.True(t, r.HasCapability(scopeA, alice, RoleAdmin))

	// 权限按scope隔离
	assert.False(t, r.HasCapability(scopeB, alice, RoleAdmin))
	// 权限按角色隔离
	assert.False(t, r.HasCapability(scopeA, alice, RoleMinter))
	// 权限按账户隔离
	assert.False(t, r.HasCapability(scopeA, bob, RoleAdmin))

	r.Revoke(scopeA, alice, RoleAdmin)
	assert.False(t, r.HasCapability(scopeA, alice, RoleAdmin))
}

func TestRenounce(t *testing.T) {
	r := NewRegistry()
	r.Grant(scopeA, bob, RoleDeployer)
	assert.True(t, r.HasCapability(scopeA, bob, RoleDeployer))

	r.Renounce(scopeA, bob, RoleDeployer)
	assert.False(t, r.HasCapability(scopeA, bob, RoleDeployer))
}

func TestRevokeUnknownIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Revoke(scopeA, alice, RoleMinter)
	assert.False(t, r.HasCapability(scopeA, alice, RoleMinter))
}

func TestRolesOf(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.RolesOf(scopeA, alice))

	r.Grant(scopeA, alice, RoleAdmin)
	r.Grant(scopeA, alice, RoleMinter)
	r.Grant(scopeB, alice, RoleDeployer)

	held := r.RolesOf(scopeA, alice)
	assert.ElementsMatch(t, []Role{RoleAdmin, RoleMinter}, held)
}
