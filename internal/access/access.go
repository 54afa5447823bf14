package access

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Role 权限角色
type Role string

const (
	RoleAdmin    Role = "admin"    // 管理集合（轮次管理、提现、base URI）
	RoleMinter   Role = "minter"   // 铸造权限
	RoleDeployer Role = "deployer" // 工厂部署权限
)

// Oracle 权限预言机接口
// scope为被管理对象的地址（集合地址或工厂地址）
type Oracle interface {
	HasCapability(scope common.Address, account common.Address, role Role) bool
	Grant(scope common.Address, account common.Address, role Role)
	Revoke(scope common.Address, account common.Address, role Role)
	Renounce(scope common.Address, account common.Address, role Role)
	RolesOf(scope common.Address, account common.Address) []Role
}

// Registry 内存实现的权限注册表
type Registry struct {
	mu    sync.RWMutex
	roles map[common.Address]map[Role]map[common.Address]bool
}

// NewRegistry 创建权限注册表
func NewRegistry() *Registry {
	return &Registry{
		roles: make(map[common.Address]map[Role]map[common.Address]bool),
	}
}

// HasCapability 检查account在scope下是否持有role
func (r *Registry) HasCapability(scope common.Address, account common.Address, role Role) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	holders, ok := r.roles[scope][role]
	if !ok {
		return false
	}
	return holders[account]
}

// Grant 授予权限
func (r *Registry) Grant(scope common.Address, account common.Address, role Role) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.roles[scope] == nil {
		r.roles[scope] = make(map[Role]map[common.Address]bool)
	}
	if r.roles[scope][role] == nil {
		r.roles[scope][role] = make(map[common.Address]bool)
	}
	r.roles[scope][role][account] = true
}

// Revoke 撤销权限
func (r *Registry) Revoke(scope common.Address, account common.Address, role Role) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if holders, ok := r.roles[scope][role]; ok {
		delete(holders, account)
	}
}

// Renounce 放弃自己持有的权限，语义同Revoke但由持有者自己发起
func (r *Registry) Renounce(scope common.Address, account common.Address, role Role) {
	r.Revoke(scope, account, role)
}

// RolesOf 列出account在scope下持有的全部角色
func (r *Registry) RolesOf(scope common.Address, account common.Address) []Role {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var held []Role
	for role, holders := range r.roles[scope] {
		if holders[account] {
			held = append(held, role)
		}
	}
	return held
}
