package main

import (
	"github.com/furylabs/furycell/config"
	"github.com/furylabs/furycell/routes"
	"github.com/furylabs/furycell/storage"
	"github.com/furylabs/furycell/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	store := storage.NewStore(cfg.MissionsFile, cfg.HistoryFile, cfg.ProfileFile, utils.Sugar)

	r := routes.SetupRouter(store)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
