package jobs

import (
	"context"
	"fmt"
	"time"

	"onlineshop/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// scheduleParser accepts standard five field expressions, six field
// expressions with a leading seconds field, and descriptors like "@every 1m".
var scheduleParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateSchedule reports whether spec can drive a job.
func ValidateSchedule(spec string) error {
	if _, err := scheduleParser.Parse(spec); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

type lowStockQueryHandler interface {
	Handle(ctx context.Context, query queries.GetLowStockProductsQuery) (queries.GetLowStockProductsQueryResponse, error)
}

type lowStockGauge interface {
	SetLowStockProducts(count int)
}

// LowStockReportJob periodically logs the products whose stock fell to or
// below the threshold and publishes their count as a gauge.
type LowStockReportJob struct {
	handler   lowStockQueryHandler
	gauge     lowStockGauge
	threshold int
	schedule  string
	timeout   time.Duration
	cron      *cron.Cron
	logger    logrus.FieldLogger
}

func NewLowStockReportJob(
	handler lowStockQueryHandler,
	gauge lowStockGauge,
	threshold int,
	schedule string,
	logger logrus.FieldLogger,
) *LowStockReportJob {
	return &LowStockReportJob{
		handler:   handler,
		gauge:     gauge,
		threshold: threshold,
		schedule:  schedule,
		timeout:   10 * time.Second,
		cron:      cron.New(cron.WithParser(scheduleParser)),
		logger:    logger.WithField("component", "low_stock_report_job"),
	}
}

func (j *LowStockReportJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.WithField("schedule", j.schedule).Info("low stock report job started")
	return nil
}

// Stop waits for a running report to finish.
func (j *LowStockReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("low stock report job stopped")
}

// Run produces one report.
func (j *LowStockReportJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	query, err := queries.NewGetLowStockProductsQuery(j.threshold)
	if err != nil {
		j.logger.WithError(err).Error("low stock report job misconfigured")
		return
	}

	response, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.WithError(err).Error("low stock report job failed")
		return
	}

	j.gauge.SetLowStockProducts(len(response.Products))
	for _, p := range response.Products {
		j.logger.WithFields(logrus.Fields{
			"product_id": p.ID.String(),
			"name":       p.Name,
			"stock":      p.Stock,
		}).Warn("product stock is low")
	}
}
