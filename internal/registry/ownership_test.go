package registry

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob   = common.HexToAddress("0x00000000000000000000000000000000000000b1")
)

func TestMintAndQuery(t *testing.T) {
	l := NewLedger()

	require.NoError(t, l.Mint(alice, 1))
	require.NoError(t, l.Mint(alice, 2))
	require.NoError(t, l.Mint(bob, 3))

	owner, err := l.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, alice, owner)

	assert.Equal(t, uint64(2), l.BalanceOf(alice))
	assert.Equal(t, uint64(1), l.BalanceOf(bob))

	_, err = l.OwnerOf(99)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestMintRejectsDuplicateAndZero(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Mint(alice, 1))

	assert.ErrorIs(t, l.Mint(bob, 1), ErrItemExists)
	assert.ErrorIs(t, l.Mint(common.Address{}, 2), ErrZeroAddress)
	assert.Equal(t, uint64(1), l.BalanceOf(alice))
}

func TestTransfer(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.Mint(alice, 7))

	require.NoError(t, l.Transfer(alice, bob, 7))

	owner, err := l.OwnerOf(7)
	require.NoError(t, err)
	assert.Equal(t, bob, owner)
	assert.Equal(t, uint64(0), l.BalanceOf(alice))
	assert.Equal(t, uint64(1), l.BalanceOf(bob))

	// from不是当前所有者
	assert.ErrorIs(t, l.Transfer(alice, bob, 7), ErrNotOwner)
	// 不存在的条目
	assert.ErrorIs(t, l.Transfer(bob, alice, 42), ErrItemNotFound)
	// 不允许转到零地址
	assert.ErrorIs(t, l.Transfer(bob, common.Address{}, 7), ErrZeroAddress)
}
