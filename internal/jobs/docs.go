// Package jobs provides scheduled background tasks for the shop.
//
// Jobs run on github.com/robfig/cron/v3. Schedules take the standard five
// fields ("*/5 * * * *"), an optional leading seconds field
// ("0 */5 * * * *") or a descriptor ("@every 5m").
//
// # Available Jobs
//
// LowStockReportJob queries products at or below the configured threshold,
// logs one warning per product and updates the shop_low_stock_products gauge.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(lowStockJob)
//	if err := jobManager.StartAll(); err != nil {
//		logger.WithError(err).Fatal("failed to start jobs")
//	}
//	defer jobManager.StopAll()
package jobs
