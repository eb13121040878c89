package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/expensetrending/expensetrend/internal/models"
	"github.com/expensetrending/expensetrend/internal/parser"
)

var (
	statementsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "expensetrend_statements_parsed_total",
		Help: "Statements parsed successfully, by bank.",
	}, []string{"bank"})

	recordsExtracted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "expensetrend_records_extracted_total",
		Help: "Expense records extracted from statements, by bank.",
	}, []string{"bank"})

	blocksRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "expensetrend_blocks_rejected_total",
		Help: "Candidate transaction blocks dropped during parsing, by reason.",
	}, []string{"reason"})
)

// observeParse records one successful statement parse.
func observeParse(bank models.Bank, res *parser.Result) {
	statementsParsed.WithLabelValues(string(bank)).Inc()
	recordsExtracted.WithLabelValues(string(bank)).Add(float64(len(res.Records)))
	for reason, n := range res.Diagnostics.Reasons {
		blocksRejected.WithLabelValues(string(reason)).Add(float64(n))
	}
}
