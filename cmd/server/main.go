package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/technobugproject/technobug/accounts"
	"github.com/technobugproject/technobug/server"
	"github.com/technobugproject/technobug/utils"
	"github.com/technobugproject/technobug/utils/dotenv"
	. "github.com/technobugproject/technobug/utils/log"
)

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to database: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	// Progress snapshots are a best-effort cache; run without it when Redis
	// is not reachable.
	snapshots, err := utils.GetRedisSnapshotStore()
	if err != nil {
		Log.Warn("redis unavailable, progress snapshots will not be cached: ", err)
		snapshots = nil
	}

	deps := &server.APIDeps{
		DB:        db,
		Snapshots: snapshots,
		Mail:      accounts.LogSender{},
	}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())
	server.RegisterRoutes(router, deps)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	Log.Info("api server initialized on port ", port)
	if err := router.Run(":" + port); err != nil {
		Log.Fatal("api server stopped: ", err)
	}
}
