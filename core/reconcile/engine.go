package reconcile

import (
	"context"
	"fmt"
	"maps"

	"vend-sync/core/batch"
	"vend-sync/core/metrics"
	"vend-sync/core/utils"
	"vend-sync/core/vend"

	"go.uber.org/zap"
)

// Engine executes reconciliation plans against Vend.
type Engine struct {
	remote      Remote
	logger      *zap.Logger
	concurrency int
}

// NewEngine creates an engine. concurrency bounds each line-item batch; zero
// uses batch.DefaultConcurrency.
func NewEngine(remote Remote, logger *zap.Logger, concurrency int) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = batch.DefaultConcurrency
	}
	return &Engine{remote: remote, logger: logger, concurrency: concurrency}
}

// Reconcile applies order to Vend and returns the validated header response.
// CREATE and UPDATE responses carry the created line items under
// "line_items", in order position.
func (e *Engine) Reconcile(ctx context.Context, order *Order) (*vend.Response, error) {
	plan, err := BuildPlan(order)
	if err != nil {
		metrics.RecordReconciliation("rejected", err)
		e.logger.Warn("Consignment rejected", zap.Error(err))
		return nil, err
	}

	resp, err := e.Apply(ctx, plan)
	metrics.RecordReconciliation(string(plan.Operation), err)
	return resp, err
}

// Apply executes a plan built by BuildPlan.
func (e *Engine) Apply(ctx context.Context, plan *Plan) (*vend.Response, error) {
	e.logger.Info("Reconciling consignment",
		zap.String("operation", string(plan.Operation)),
		zap.String("consignment_id", plan.ConsignmentID),
		zap.Int("line_items", len(plan.LineItems)),
	)

	switch plan.Operation {
	case OperationCreate:
		return e.create(ctx, plan)
	case OperationUpdate:
		return e.update(ctx, plan)
	case OperationCancel:
		return checked(e.remote.CancelConsignment(ctx, plan.ConsignmentID, plan.Header))
	case OperationAutoReceive:
		return e.autoReceive(ctx, plan)
	default:
		return nil, &vend.PreconditionError{Reason: ErrNoApplicableOperation.Error(), Index: -1, Err: ErrNoApplicableOperation}
	}
}

func (e *Engine) create(ctx context.Context, plan *Plan) (*vend.Response, error) {
	resp, err := checked(e.remote.CreateConsignment(ctx, plan.Header))
	if err != nil {
		return nil, err
	}

	id := resp.String("id")
	if id == "" {
		return nil, &vend.EndpointError{Response: resp}
	}

	created, err := e.createLineItems(ctx, id, plan.LineItems)
	if err != nil {
		return nil, err
	}
	attach(resp, created)
	return resp, nil
}

// update replaces every remote line item. The header must be accepted before
// any item is touched, and all deletes finish before the first create.
func (e *Engine) update(ctx context.Context, plan *Plan) (*vend.Response, error) {
	existing, err := e.existingLineItems(ctx, plan.ConsignmentID)
	if err != nil {
		return nil, err
	}

	resp, err := checked(e.remote.UpdateConsignment(ctx, plan.ConsignmentID, plan.Header))
	if err != nil {
		return nil, err
	}

	e.logger.Debug("Removing line items", zap.String("consignment_id", plan.ConsignmentID), zap.Int("count", len(existing)))
	err = batch.ForEach(ctx, "remove line item", existing, e.concurrency, func(ctx context.Context, _ int, item map[string]any) error {
		_, err := checked(e.remote.DeleteConsignmentProduct(ctx, utils.ToString(item["id"])))
		return err
	})
	if err != nil {
		return nil, err
	}

	created, err := e.createLineItems(ctx, plan.ConsignmentID, plan.LineItems)
	if err != nil {
		return nil, err
	}
	attach(resp, created)
	return resp, nil
}

// autoReceive sets received to count on every remote line item, then
// finalizes the header.
func (e *Engine) autoReceive(ctx context.Context, plan *Plan) (*vend.Response, error) {
	existing, err := e.existingLineItems(ctx, plan.ConsignmentID)
	if err != nil {
		return nil, err
	}

	err = batch.ForEach(ctx, "update line item", existing, e.concurrency, func(ctx context.Context, _ int, item map[string]any) error {
		body := maps.Clone(item)
		body["received"] = item["count"]
		_, err := checked(e.remote.UpdateConsignmentProduct(ctx, utils.ToString(item["id"]), body))
		return err
	})
	if err != nil {
		return nil, err
	}

	return checked(e.remote.UpdateConsignment(ctx, plan.ConsignmentID, plan.Header))
}

func (e *Engine) createLineItems(ctx context.Context, consignmentID string, items []map[string]any) ([]any, error) {
	created := make([]any, len(items))
	err := batch.ForEach(ctx, "add line item", items, e.concurrency, func(ctx context.Context, i int, item map[string]any) error {
		body := maps.Clone(item)
		body["consignment_id"] = consignmentID
		resp, err := checked(e.remote.CreateConsignmentProduct(ctx, body))
		if err != nil {
			return err
		}
		created[i] = resp.Body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// existingLineItems lists a consignment's line items in one call.
func (e *Engine) existingLineItems(ctx context.Context, consignmentID string) ([]map[string]any, error) {
	resp, err := checked(e.remote.ListConsignmentProducts(ctx, consignmentID))
	if err != nil {
		return nil, fmt.Errorf("failed to list line items of consignment %s: %w", consignmentID, err)
	}
	return resp.Items("consignment_products"), nil
}

func checked(resp *vend.Response, err error) (*vend.Response, error) {
	if err != nil {
		return nil, err
	}
	if err := vend.Validate(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func attach(resp *vend.Response, lineItems []any) {
	if resp.Body == nil {
		resp.Body = map[string]any{}
	}
	resp.Body["line_items"] = lineItems
}
