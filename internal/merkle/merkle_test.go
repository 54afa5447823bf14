package merkle

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddrs(n int) []common.Address {
	addrs := make([]common.Address, n)
	for i := range addrs {
		addrs[i] = common.HexToAddress(fmt.Sprintf("0x%040x", i+1))
	}
	return addrs
}

func TestVerifyAllMembers(t *testing.T) {
	for _, size := range []int{2, 3, 5, 8, 13} {
		addrs := testAddrs(size)
		root := BuildRoot(addrs)

		for _, addr := range addrs {
			proof, ok := BuildProof(addrs, addr)
			require.True(t, ok, "size=%d addr=%s", size, addr.Hex())
			assert.True(t, Verify(proof, root, addr), "size=%d addr=%s", size, addr.Hex())
		}
	}
}

func TestVerifySingleMemberEmptyProof(t *testing.T) {
	addr := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	root := BuildRoot([]common.Address{addr})

	// 单成员白名单：叶子即根，空证明有效
	assert.Equal(t, Leaf(addr), root)
	assert.True(t, Verify(nil, root, addr))

	// 非成员的空证明无效
	other := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	assert.False(t, Verify(nil, root, other))
}

func TestVerifyRejectsNonMember(t *testing.T) {
	addrs := testAddrs(7)
	root := BuildRoot(addrs)
	outsider := common.HexToAddress("0x00000000000000000000000000000000000ff001")

	// 空证明
	assert.False(t, Verify(nil, root, outsider))

	// 挪用他人的证明
	proof, ok := BuildProof(addrs, addrs[3])
	require.True(t, ok)
	assert.False(t, Verify(proof, root, outsider))

	// 伪造的证明元素
	forged := []common.Hash{common.HexToHash("0xdead"), common.HexToHash("0xbeef")}
	assert.False(t, Verify(forged, root, addrs[0]))
}

func TestBuildRootDeterministic(t *testing.T) {
	addrs := testAddrs(9)
	root1 := BuildRoot(addrs)
	root2 := BuildRoot(addrs)
	assert.Equal(t, root1, root2)

	// 输入顺序不影响根：叶子构造时已排序
	reversed := make([]common.Address, len(addrs))
	for i, addr := range addrs {
		reversed[len(addrs)-1-i] = addr
	}
	assert.Equal(t, root1, BuildRoot(reversed))

	// 重复地址不影响根
	withDup := append(append([]common.Address{}, addrs...), addrs[0], addrs[4])
	assert.Equal(t, root1, BuildRoot(withDup))
}

func TestBuildProofUnknownAddress(t *testing.T) {
	addrs := testAddrs(4)
	outsider := common.HexToAddress("0x00000000000000000000000000000000000ff002")

	_, ok := BuildProof(addrs, outsider)
	assert.False(t, ok)

	_, ok = BuildProof(nil, outsider)
	assert.False(t, ok)
}

func TestBuildRootEmpty(t *testing.T) {
	assert.Equal(t, OpenRoot, BuildRoot(nil))
}
