package main

import (
	"encoding/binary"
	"log"

	"github.com/dilukangelosl/Nft-launchpad/internal/access"
	"github.com/dilukangelosl/Nft-launchpad/internal/config"
	"github.com/dilukangelosl/Nft-launchpad/internal/database"
	"github.com/dilukangelosl/Nft-launchpad/internal/event"
	"github.com/dilukangelosl/Nft-launchpad/internal/factory"
	"github.com/dilukangelosl/Nft-launchpad/internal/logger"
	"github.com/dilukangelosl/Nft-launchpad/internal/logic"
	"github.com/dilukangelosl/Nft-launchpad/internal/router"
	"github.com/dilukangelosl/Nft-launchpad/internal/task"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	initLogger(cfg.Log)

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化能力注册表并授予部署权限
	oracle := access.NewRegistry()
	factoryAddr := resolveFactoryAddress(cfg.Chain)
	for _, d := range cfg.Chain.Deployers {
		if !common.IsHexAddress(d) {
			log.Fatalf("Invalid deployer address in config: %s", d)
		}
		oracle.Grant(factoryAddr, common.HexToAddress(d), access.RoleDeployer)
	}

	// 初始化记录分发管道
	recordLogic := logic.NewRecordLogic(db)
	dispatcher, err := event.NewDispatcher(recordLogic, cfg.Task.PoolSize)
	if err != nil {
		log.Fatalf("Failed to create record dispatcher: %v", err)
	}
	defer dispatcher.Stop()

	// 初始化工厂
	f := factory.New(factoryAddr, oracle, factory.WithEmitter(dispatcher))
	logger.Info("Factory initialized at %s (chain %d)", factoryAddr.Hex(), cfg.Chain.ChainId)

	// 初始化业务逻辑层
	collectionLogic := logic.NewCollectionLogic(db, f, oracle)
	roundLogic := logic.NewRoundLogic(db, f)
	issueLogic := logic.NewIssueLogic(db, f)

	// 从镜像库恢复在线状态
	if err := collectionLogic.Rehydrate(); err != nil {
		log.Fatalf("Failed to rehydrate collections: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(collectionLogic, roundLogic, issueLogic)

	// 启动定时任务
	manager := task.Start(db, f, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initLogger 按配置初始化默认日志器
func initLogger(cfg config.LogConfig) {
	level := logger.ParseLogLevel(cfg.Level)

	var l *logger.Logger
	var err error
	if cfg.Output == "file" {
		l, err = logger.NewWithRotation(level, logger.RotationConfig{
			Filename: cfg.File,
		})
	} else {
		l, err = logger.New(level)
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.SetDefaultLogger(l)
}

// resolveFactoryAddress 解析工厂地址
// 配置显式指定时直接使用，否则按链ID派生一个稳定地址
func resolveFactoryAddress(cfg config.ChainConfig) common.Address {
	if cfg.FactoryAddress != "" {
		if !common.IsHexAddress(cfg.FactoryAddress) {
			log.Fatalf("Invalid factory address in config: %s", cfg.FactoryAddress)
		}
		return common.HexToAddress(cfg.FactoryAddress)
	}

	var chainId [8]byte
	binary.BigEndian.PutUint64(chainId[:], uint64(cfg.ChainId))
	hash := crypto.Keccak256([]byte("launchpad/factory/v1"), chainId[:])
	return common.BytesToAddress(hash[12:])
}
