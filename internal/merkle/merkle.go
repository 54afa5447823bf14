package merkle

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// OpenRoot 开放模式的哨兵值（未设置白名单根）
var OpenRoot = common.Hash{}

// Leaf 计算地址对应的叶子哈希
func Leaf(addr common.Address) common.Hash {
	return common.BytesToHash(crypto.Keccak256(addr.Bytes()))
}

// hashPair 对两个节点做无方向配对哈希：数值小的在前
// 验证方因此无需知道兄弟节点的左右方位
func hashPair(a, b common.Hash) common.Hash {
	if bytes.Compare(a.Bytes(), b.Bytes()) > 0 {
		a, b = b, a
	}
	return common.BytesToHash(crypto.Keccak256(a.Bytes(), b.Bytes()))
}

// Verify 验证claimant是否属于root所承诺的白名单
// 空proof仅在单成员白名单（叶子即根）时有效
func Verify(proof []common.Hash, root common.Hash, claimant common.Address) bool {
	node := Leaf(claimant)
	for _, sibling := range proof {
		node = hashPair(node, sibling)
	}
	return node == root
}

// BuildRoot 根据地址列表构造白名单根
// 叶子先去重并按数值排序，逐层两两配对，奇数节点直接晋级
func BuildRoot(addrs []common.Address) common.Hash {
	leaves := sortedLeaves(addrs)
	if len(leaves) == 0 {
		return OpenRoot
	}

	level := leaves
	for len(level) > 1 {
		next := make([]common.Hash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, hashPair(level[i], level[i+1]))
			} else {
				next = append(next, level[i])
			}
		}
		level = next
	}
	return level[0]
}

// BuildProof 为claimant生成成员证明
// 返回false表示claimant不在列表中
func BuildProof(addrs []common.Address, claimant common.Address) ([]common.Hash, bool) {
	leaves := sortedLeaves(addrs)
	if len(leaves) == 0 {
		return nil, false
	}

	target := Leaf(claimant)
	index := -1
	for i, leaf := range leaves {
		if leaf == target {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, false
	}

	proof := make([]common.Hash, 0)
	level := leaves
	for len(level) > 1 {
		next := make([]common.Hash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				if i == index || i+1 == index {
					if i == index {
						proof = append(proof, level[i+1])
					} else {
						proof = append(proof, level[i])
					}
					index = len(next)
				}
				next = append(next, hashPair(level[i], level[i+1]))
			} else {
				if i == index {
					index = len(next)
				}
				next = append(next, level[i])
			}
		}
		level = next
	}
	return proof, true
}

// sortedLeaves 去重并排序叶子
func sortedLeaves(addrs []common.Address) []common.Hash {
	seen := make(map[common.Hash]struct{}, len(addrs))
	leaves := make([]common.Hash, 0, len(addrs))
	for _, addr := range addrs {
		leaf := Leaf(addr)
		if _, ok := seen[leaf]; ok {
			continue
		}
		seen[leaf] = struct{}{}
		leaves = append(leaves, leaf)
	}
	sort.Slice(leaves, func(i, j int) bool {
		return bytes.Compare(leaves[i].Bytes(), leaves[j].Bytes()) < 0
	})
	return leaves
}
