package factory

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// collectionTemplate 集合部署模板的固定标识字节
// 参与初始化码哈希，保证模板版本变化会改变所有派生地址
var collectionTemplate = crypto.Keccak256([]byte("launchpad/collection/v1"))

// Params 集合构造参数
type Params struct {
	Name          string
	Symbol        string
	BaseURI       string
	TotalCapacity uint64
	Owner         common.Address
	Salt          common.Hash
}

// ComputeAddress 纯函数：由构造参数与salt推导集合的部署地址
// 采用CREATE2形式 keccak256(0xff ‖ factory ‖ salt ‖ keccak256(initCode))，
// initCode为模板标识拼上构造参数的ABI规范编码，链下工具可逐位复现
func ComputeAddress(factoryAddr common.Address, p Params) (common.Address, error) {
	encoded, err := encodeConstructor(p)
	if err != nil {
		return common.Address{}, fmt.Errorf("encode constructor args: %w", err)
	}

	initCode := make([]byte, 0, len(collectionTemplate)+len(encoded))
	initCode = append(initCode, collectionTemplate...)
	initCode = append(initCode, encoded...)
	initCodeHash := crypto.Keccak256(initCode)

	buf := make([]byte, 0, 1+common.AddressLength+common.HashLength+len(initCodeHash))
	buf = append(buf, 0xff)
	buf = append(buf, factoryAddr.Bytes()...)
	buf = append(buf, p.Salt.Bytes()...)
	buf = append(buf, initCodeHash...)

	return common.BytesToAddress(crypto.Keccak256(buf)[12:]), nil
}

// encodeConstructor 构造参数的ABI规范编码
// (string name, string symbol, string baseURI, uint64 totalCapacity, address owner)
func encodeConstructor(p Params) ([]byte, error) {
	stringTy, err := abi.NewType("string", "", nil)
	if err != nil {
		return nil, err
	}
	uint64Ty, err := abi.NewType("uint64", "", nil)
	if err != nil {
		return nil, err
	}
	addressTy, err := abi.NewType("address", "", nil)
	if err != nil {
		return nil, err
	}

	args := abi.Arguments{
		{Type: stringTy},
		{Type: stringTy},
		{Type: stringTy},
		{Type: uint64Ty},
		{Type: addressTy},
	}
	return args.Pack(p.Name, p.Symbol, p.BaseURI, p.TotalCapacity, p.Owner)
}
