// Package policy holds the access rules of the API as pure functions.
// Nothing here touches storage; callers load the resource first and ask.
package policy

import "github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"

type Decision bool

const (
	Allow Decision = true
	Deny  Decision = false
)

func (d Decision) Allowed() bool { return bool(d) }

// Actor is the authenticated caller as read from the bearer token.
type Actor struct {
	ID   int64
	Role model.Role
}

func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

// Owned is implemented by resources that belong to a single user.
type Owned interface {
	OwnerID() int64
}

// CanAccess lets admins through and otherwise requires ownership.
func CanAccess(actor Actor, res Owned) Decision {
	if res == nil {
		return Deny
	}
	return CanAccessUserScope(actor, res.OwnerID())
}

// CanAccessUserScope is CanAccess for routes addressed by user id,
// e.g. /users/:userId/orders, before any row is loaded.
func CanAccessUserScope(actor Actor, userID int64) Decision {
	if actor.ID <= 0 {
		return Deny
	}
	if actor.IsAdmin() {
		return Allow
	}
	if actor.Role == model.RoleClient && userID > 0 && userID == actor.ID {
		return Allow
	}
	return Deny
}

// ownership never grants status changes
func CanModifyOrderStatus(actor Actor) Decision {
	return adminOnly(actor)
}

func CanListAllOrders(actor Actor) Decision { return adminOnly(actor) }

func CanChangeRole(actor Actor) Decision { return adminOnly(actor) }

func CanDeleteUser(actor Actor) Decision { return adminOnly(actor) }

func CanListUsers(actor Actor) Decision { return adminOnly(actor) }

// CanManageCatalog covers category and item writes.
func CanManageCatalog(actor Actor) Decision { return adminOnly(actor) }

func CanReadAuditLogs(actor Actor) Decision { return adminOnly(actor) }

func adminOnly(actor Actor) Decision {
	if actor.ID > 0 && actor.IsAdmin() {
		return Allow
	}
	return Deny
}

var transitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:    {model.OrderStatusProcessing, model.OrderStatusDelivered, model.OrderStatusCancelled},
	model.OrderStatusProcessing: {model.OrderStatusDelivered, model.OrderStatusCancelled},
	model.OrderStatusDelivered:  nil,
	model.OrderStatusCancelled:  nil,
}

// CanTransition reports whether an order may move from one status to another.
// Staying in the same status is always allowed.
func CanTransition(from, to model.OrderStatus) Decision {
	if !from.Valid() || !to.Valid() {
		return Deny
	}
	if from == to {
		return Allow
	}
	for _, next := range transitions[from] {
		if next == to {
			return Allow
		}
	}
	return Deny
}

// IsTerminal reports statuses with no outgoing transitions.
func IsTerminal(s model.OrderStatus) bool {
	return s.Valid() && len(transitions[s]) == 0
}
