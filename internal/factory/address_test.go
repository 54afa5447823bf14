package factory

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var factoryAddr = common.HexToAddress("0x00000000000000000000000000000000000fac01")

func baseParams() Params {
	return Params{
		Name:          "Genesis Drop",
		Symbol:        "GEN",
		BaseURI:       "ipfs://genesis/",
		TotalCapacity: 1000,
		Owner:         common.HexToAddress("0x00000000000000000000000000000000000000ee"),
		Salt:          common.HexToHash("0x01"),
	}
}

func TestComputeAddressDeterministic(t *testing.T) {
	p := baseParams()

	a1, err := ComputeAddress(factoryAddr, p)
	require.NoError(t, err)
	a2, err := ComputeAddress(factoryAddr, p)
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.NotEqual(t, common.Address{}, a1)
}

func TestComputeAddressSensitivity(t *testing.T) {
	base := baseParams()
	baseAddr, err := ComputeAddress(factoryAddr, base)
	require.NoError(t, err)

	// 任一参数变化都导致不同地址
	variants := []Params{}

	p := baseParams()
	p.Name = "Genesis Drop 2"
	variants = append(variants, p)

	p = baseParams()
	p.Symbol = "GEN2"
	variants = append(variants, p)

	p = baseParams()
	p.BaseURI = "ipfs://other/"
	variants = append(variants, p)

	p = baseParams()
	p.TotalCapacity = 1001
	variants = append(variants, p)

	p = baseParams()
	p.Owner = common.HexToAddress("0x00000000000000000000000000000000000000ff")
	variants = append(variants, p)

	p = baseParams()
	p.Salt = common.HexToHash("0x02")
	variants = append(variants, p)

	seen := map[common.Address]bool{baseAddr: true}
	for i, v := range variants {
		addr, err := ComputeAddress(factoryAddr, v)
		require.NoError(t, err)
		assert.False(t, seen[addr], "variant %d collided", i)
		seen[addr] = true
	}

	// 工厂地址本身也参与派生
	otherFactory := common.HexToAddress("0x00000000000000000000000000000000000fac02")
	addr, err := ComputeAddress(otherFactory, base)
	require.NoError(t, err)
	assert.NotEqual(t, baseAddr, addr)
}
