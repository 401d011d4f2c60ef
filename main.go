package main

import (
	_ "github.com/go-sql-driver/mysql"

	"Meridian/CronJobs"
	"Meridian/FiberConfig"
	"Meridian/Models"
)

func main() {
	Models.Connect()

	sweeper := CronJobs.NewOverdueSweeper(Models.DB, true)
	if err := sweeper.Start(); err != nil {
		Models.Log.WithError(err).Error("failed to start overdue sweeper")
	}

	FiberConfig.FiberConfig()
}
