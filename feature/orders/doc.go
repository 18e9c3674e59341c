// Package orders implements the purchase order, transfer order and register
// sale endpoints.
//
// Purchase and transfer orders are applied with core/reconcile; reads go
// through the consignment read path of core/vend, which returns line items in
// sequence order.
//
// # HTTP Endpoints
//
//   - POST /add_purchase_order : create, update, cancel or auto-receive a purchase order.
//   - POST /add_transfer_order : same for transfer orders; receipts already RECEIVED are skipped.
//   - POST /get_purchase_order, /get_transfer_order : read a consignment with its line items.
//   - POST /get_inventory_counts : read an inventory count consignment.
//   - POST /add_order : record a register sale.
//
// Reconciled consignments are archived to object storage when an archive is
// configured, and cancelled transfer orders mark their external references
// cancelled when a reference store is configured.
package orders
