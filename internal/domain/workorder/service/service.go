// Package service orchestrates batch processing of service-order documents:
// text extraction, parsing, row mapping and per-document summaries.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/greenpark-export/internal/domain/catalog"
	"github.com/FACorreiaa/greenpark-export/internal/domain/mapper"
	"github.com/FACorreiaa/greenpark-export/internal/domain/workorder"
	"github.com/FACorreiaa/greenpark-export/internal/domain/workorder/parser"
	"github.com/FACorreiaa/greenpark-export/pkg/money"
)

var (
	documentsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "workorder_documents_processed_total",
		Help: "Documents parsed and mapped successfully.",
	})
	documentsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "workorder_documents_failed_total",
		Help: "Documents that failed extraction or parsing.",
	})
	catalogMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "workorder_catalog_misses_total",
		Help: "Item descriptions resolved to the default subrubro.",
	})
)

// ExtractorFunc turns raw document bytes into text lines.
type ExtractorFunc func(data []byte) (string, error)

// Document is one submitted file. When Text is already set the extractor is
// skipped; otherwise Data is run through it.
type Document struct {
	Name string
	Data []byte
	Text string
}

// Summary is the per-document report returned alongside the export rows.
type Summary struct {
	OrderNumber  string `json:"os"`
	Client       string `json:"cliente"`
	Complex      string `json:"complejo"`
	Building     string `json:"edificio"`
	Unit         string `json:"unidad"`
	Identifier   string `json:"identificador"`
	Date         string `json:"fecha"`
	Items        int    `json:"items"`
	Total        string `json:"total"`
	TotalDisplay string `json:"totalDisplay"`
	Currency     string `json:"moneda"`
}

// DocumentResult carries one document's outcome. Err is set instead of the
// other fields when the document failed; a failing document never voids its
// batch siblings.
type DocumentResult struct {
	Name           string
	Order          *workorder.WorkOrder
	Fields         workorder.FieldReport
	Expenses       []mapper.ExpenseRow
	Reimbursements []mapper.ReimbursementRow
	Misses         []catalog.Miss
	Summary        *Summary
	Err            error
}

// BatchResult aggregates a batch: per-document results plus the row
// collections concatenated in submission order.
type BatchResult struct {
	ID             uuid.UUID
	Documents      []DocumentResult
	Expenses       []mapper.ExpenseRow
	Reimbursements []mapper.ReimbursementRow
	Succeeded      int
	Failed         int
}

// Service processes batches of work-order documents.
type Service struct {
	catalog *catalog.Index
	extract ExtractorFunc
	logger  *slog.Logger
	tracer  trace.Tracer
}

// New creates a Service. The extractor may be nil when callers only ever
// submit pre-extracted text.
func New(idx *catalog.Index, extract ExtractorFunc, logger *slog.Logger) *Service {
	return &Service{
		catalog: idx,
		extract: extract,
		logger:  logger,
		tracer:  otel.Tracer("workorder"),
	}
}

// ProcessBatch runs every document through extraction, parsing and mapping.
// Documents are processed concurrently but results keep submission order, and
// one document's failure is reported in its slot without aborting the rest.
func (s *Service) ProcessBatch(ctx context.Context, docs []Document) (*BatchResult, error) {
	ctx, span := s.tracer.Start(ctx, "ProcessBatch",
		trace.WithAttributes(attribute.Int("batch.documents", len(docs))))
	defer span.End()

	batch := &BatchResult{
		ID:        uuid.New(),
		Documents: make([]DocumentResult, len(docs)),
	}

	workerCount := runtime.GOMAXPROCS(0)
	if workerCount > len(docs) {
		workerCount = len(docs)
	}
	if workerCount < 1 {
		workerCount = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				batch.Documents[i] = s.processDocument(ctx, docs[i])
			}
		}()
	}
	for i := range docs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	for _, res := range batch.Documents {
		if res.Err != nil {
			batch.Failed++
			continue
		}
		batch.Succeeded++
		batch.Expenses = append(batch.Expenses, res.Expenses...)
		batch.Reimbursements = append(batch.Reimbursements, res.Reimbursements...)
	}

	s.logger.Info("batch processed",
		"batchID", batch.ID,
		"documents", len(docs),
		"succeeded", batch.Succeeded,
		"failed", batch.Failed,
		"expenseRows", len(batch.Expenses),
		"reimbursementRows", len(batch.Reimbursements),
	)
	return batch, nil
}

func (s *Service) processDocument(ctx context.Context, doc Document) DocumentResult {
	_, span := s.tracer.Start(ctx, "processDocument",
		trace.WithAttributes(attribute.String("document.name", doc.Name)))
	defer span.End()

	result := DocumentResult{Name: doc.Name}

	text := doc.Text
	if text == "" {
		if s.extract == nil {
			result.Err = fmt.Errorf("document %s: no text and no extractor configured", doc.Name)
			documentsFailed.Inc()
			return result
		}
		var err error
		text, err = s.extract(doc.Data)
		if err != nil {
			s.logger.Warn("text extraction failed", "document", doc.Name, "error", err)
			result.Err = fmt.Errorf("extracting %s: %w", doc.Name, err)
			documentsFailed.Inc()
			return result
		}
	}

	parsed, err := parser.Parse(text)
	if err != nil {
		s.logger.Warn("parse failed", "document", doc.Name, "error", err)
		result.Err = fmt.Errorf("parsing %s: %w", doc.Name, err)
		documentsFailed.Inc()
		return result
	}

	result.Order = parsed.Order
	result.Fields = parsed.Fields
	if missing := parsed.Fields.Missing(); len(missing) > 0 {
		s.logger.Warn("document parsed with missing fields",
			"document", doc.Name, "missing", missing)
	}

	result.Expenses = mapper.ExpenseRows(parsed.Order)
	result.Reimbursements, result.Misses = mapper.ReimbursementRows(parsed.Order, s.catalog)
	for _, miss := range result.Misses {
		catalogMisses.Inc()
		s.logger.Warn("catalog miss",
			"document", doc.Name,
			"description", miss.Description,
			"suggestions", miss.Suggestions,
		)
	}

	result.Summary = s.summarize(parsed.Order)
	documentsProcessed.Inc()
	return result
}

func (s *Service) summarize(order *workorder.WorkOrder) *Summary {
	h := order.Header
	return &Summary{
		OrderNumber:  h.OrderNumber,
		Client:       h.Client,
		Complex:      h.Complex,
		Building:     mapper.BuildingCode(h.Complex, h.Identifier),
		Unit:         h.Unit,
		Identifier:   h.Identifier,
		Date:         h.Date,
		Items:        len(order.Items),
		Total:        order.Totals.Amount.StringFixed(2),
		TotalDisplay: money.Display(order.Totals.Amount, string(order.Totals.Currency)),
		Currency:     mapper.CurrencyLetter(order.Totals.Currency),
	}
}
