package storage

import "tableside/dining-svc/internal/service"

type backend interface {
	service.Store
	service.TableRepository
	service.OrderRepository
	service.ReservationRepository
	service.MenuRepository
	service.CategoryRepository
	service.UserRepository
}

// Repositories wires one backend into every repository slot.
func Repositories(b backend) service.Repositories {
	return service.Repositories{
		Store:        b,
		Tables:       b,
		Orders:       b,
		Reservations: b,
		Menu:         b,
		Categories:   b,
		Users:        b,
	}
}

var (
	_ backend = (*PostgresRepository)(nil)
	_ backend = (*MemoryStore)(nil)

	_ service.MenuCache      = (*RedisCache)(nil)
	_ service.MessageMarker  = (*RedisMarker)(nil)
	_ service.EventPublisher = (*KafkaPublisher)(nil)
	_ service.MediaStore     = (*GCSMediaStore)(nil)
	_ service.MediaStore     = (*LocalMediaStore)(nil)
)
