// Package order implements the Order aggregate and its lifecycle state machine.
//
// An order is placed Pending, then either delivered (and possibly returned
// later) or canceled by its owner. Transitions are driven by a table of
// allowed (action, status) pairs; every other pair is rejected with one of
// the business failures from package errs:
//
//	action   Pending                Delivered                 Canceled          Returned
//	deliver  -> Delivered           (unchanged)               OrderCanceled     (unchanged)
//	cancel   -> Canceled            OrderAlreadyDelivered     (unchanged)       OrderAlreadyDelivered
//	return   OrderNotDeliveredYet   -> Returned               OrderCanceled     OrderAlreadyReturned
//
// Unchanged pairs succeed without recording an event. Cancel additionally
// requires the requester to own the order.
//
// Items keep the quantity captured at placement so returns restore the exact
// amount that left stock.
package order
