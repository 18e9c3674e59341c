// Package reconcile applies an inbound purchase or transfer order to its Vend
// consignment.
//
// An order is turned into a Plan, which picks exactly one operation from the
// order's consignment id, status and txn_type:
//
//	no consignment id          -> CREATE
//	status CANCELLED           -> CANCEL
//	status SENT                -> UPDATE
//	txn_type AUTORECEIVE       -> AUTO_RECEIVE
//	anything else              -> ErrNoApplicableOperation
//
// Plans are checked before any remote call is issued: a SUPPLIER order without
// a supplier id, or a line item without a product id, is rejected with a
// *vend.PreconditionError and nothing is sent.
//
// The Engine then executes the plan against a Remote. Header calls are
// sequential; line-item deletes, creates and receipts fan out through
// core/batch. Vend has no transactions, so a failed batch may leave the other
// items applied. Nothing is retried.
//
// # Usage
//
//	engine := reconcile.NewEngine(client, logger, client.Concurrency())
//	resp, err := engine.Reconcile(ctx, order)
//	if vend.IsValidation(err) {
//	    // rejected by Vend or by the plan checks
//	}
package reconcile
