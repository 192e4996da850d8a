package server

import (
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/handler"
)

type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Address    *handler.AddressHandler
	Category   *handler.CategoryHandler
	Item       *handler.ItemHandler
	Order      *handler.OrderHandler
	AdminOrder *handler.AdminOrderHandler
	AuditLog   *handler.AuditLogHandler
}

func (s *Server) RegisterRoutes(h Handlers, g handler.Guards) {
	e := s.echo

	h.Health.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e, g)
	h.User.RegisterRoutes(e, g)
	h.Address.RegisterRoutes(e, g)
	h.Category.RegisterRoutes(e, g)
	h.Item.RegisterRoutes(e, g)
	h.Order.RegisterRoutes(e, g)
	h.AdminOrder.RegisterRoutes(e, g)
	h.AuditLog.RegisterRoutes(e, g)
}
