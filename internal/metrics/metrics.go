// Package metrics 对数服务的 Prometheus 指标
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jij0517269/gongtan-duishu-tool/internal/model"
)

const namespace = "gongtan"

var (
	importsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "imports_total",
		Help:      "上传表格次数，按表格类型与结果区分",
	}, []string{"kind", "status"})

	importedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "imported_rows_total",
		Help:      "读取到的有效数据行数",
	}, []string{"kind"})

	compareRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "compare_rows_total",
		Help:      "对比结果行数，按结果区分",
	}, []string{"outcome"})

	compareDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "compare_duration_seconds",
		Help:      "一次对比的耗时",
		Buckets:   prometheus.DefBuckets,
	})
)

// ObserveImport 记录一次上传；err 非空时按失败计
func ObserveImport(kind model.TableKind, report *model.ImportReport, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	importsTotal.WithLabelValues(string(kind), status).Inc()
	if err == nil && report != nil {
		importedRows.WithLabelValues(string(kind)).Add(float64(report.LoadedRows))
	}
}

// ObserveComparison 记录一次对比的结果分布与耗时
func ObserveComparison(stats model.Stats, elapsed time.Duration) {
	compareRows.WithLabelValues(string(model.OutcomeConsistent)).Add(float64(stats.ConsistentCount))
	compareRows.WithLabelValues(string(model.OutcomeInconsistent)).Add(float64(stats.InconsistentCount))
	compareRows.WithLabelValues(string(model.OutcomeMissing)).Add(float64(stats.MissingCount))
	compareRows.WithLabelValues(string(model.OutcomeMalformed)).Add(float64(stats.MalformedCount))
	compareDuration.Observe(elapsed.Seconds())
}
